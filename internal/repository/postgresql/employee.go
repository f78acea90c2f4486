package postgresql

import (
	"context"
	"fmt"

	"github.com/cleandash/scheduler-backend-go/internal/domain/employee"
	"github.com/cleandash/scheduler-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `id, owner, name, status, wage, color, created_at, updated_at`

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string, owner string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1
		  AND owner = $2
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, owner))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, fmt.Errorf("employee %s not found: %w", id, err)
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepository) ListActive(ctx context.Context, owner string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE owner = $1
		  AND status = 'Active'
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

// ListByIDs implements employee.EmployeeRepository.
func (r *employeeRepository) ListByIDs(ctx context.Context, owner string, ids []string) ([]employee.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE owner = $1
		  AND id = ANY($2)
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, owner, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by ids: %w", err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.Owner, &emp.Name, &emp.Status, &emp.Wage, &emp.Color,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

func scanEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}
	return employees, nil
}
