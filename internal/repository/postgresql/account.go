package postgresql

import (
	"context"
	"fmt"

	"github.com/cleandash/scheduler-backend-go/internal/domain/account"
	"github.com/cleandash/scheduler-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const accountColumns = `id, owner, name, latitude, longitude, geofence_radius_m, alarm_code,
		   recurrence_active, recurrence_days, recurrence_start_time,
		   recurrence_end_time, recurrence_employee_ids, created_at, updated_at`

type accountRepository struct {
	db *database.DB
}

func NewAccountRepository(db *database.DB) account.AccountRepository {
	return &accountRepository{db: db}
}

// GetByID implements account.AccountRepository.
func (r *accountRepository) GetByID(ctx context.Context, id string, owner string) (account.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1
		  AND owner = $2
	`

	acct, err := scanAccount(q.QueryRow(ctx, query, id, owner))
	if err != nil {
		if err == pgx.ErrNoRows {
			return account.Account{}, fmt.Errorf("account %s not found: %w", id, err)
		}
		return account.Account{}, fmt.Errorf("failed to get account: %w", err)
	}

	return acct, nil
}

// List implements account.AccountRepository.
func (r *accountRepository) List(ctx context.Context, owner string) ([]account.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE owner = $1
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	return scanAccounts(rows)
}

// ListWithActivePattern implements account.AccountRepository.
func (r *accountRepository) ListWithActivePattern(ctx context.Context) ([]account.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE recurrence_active = TRUE
		ORDER BY owner, name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts with active patterns: %w", err)
	}
	defer rows.Close()

	return scanAccounts(rows)
}

func scanAccount(row pgx.Row) (account.Account, error) {
	var (
		acct        account.Account
		active      *bool
		days        []int
		startTime   *string
		endTime     *string
		employeeIDs []string
	)

	err := row.Scan(
		&acct.ID, &acct.Owner, &acct.Name, &acct.Latitude, &acct.Longitude,
		&acct.GeofenceRadiusM, &acct.AlarmCode,
		&active, &days, &startTime, &endTime, &employeeIDs,
		&acct.CreatedAt, &acct.UpdatedAt,
	)
	if err != nil {
		return account.Account{}, err
	}

	// A row without pattern columns has simply never been configured.
	if active != nil && startTime != nil && endTime != nil {
		acct.Recurrence = &account.RecurrencePattern{
			Active:      *active,
			Days:        days,
			StartTime:   *startTime,
			EndTime:     *endTime,
			EmployeeIDs: employeeIDs,
		}
	}

	return acct, nil
}

func scanAccounts(rows pgx.Rows) ([]account.Account, error) {
	var accounts []account.Account
	for rows.Next() {
		acct, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	return accounts, nil
}
