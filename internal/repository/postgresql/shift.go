package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cleandash/scheduler-backend-go/internal/domain/shift"
	"github.com/cleandash/scheduler-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const shiftColumns = `id, owner, account_id, account_name, employee_id, employee_name,
		   scheduled_start, scheduled_end, actual_start, actual_end, status,
		   created_at, updated_at`

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

// Create implements shift.ShiftRepository.
func (r *shiftRepository) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (
			id, owner, account_id, account_name, employee_id, employee_name,
			scheduled_start, scheduled_end, actual_start, actual_end, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.ID,
		s.Owner,
		s.AccountID,
		s.AccountName,
		s.EmployeeID,
		s.EmployeeName,
		s.ScheduledStart,
		s.ScheduledEnd,
		s.ActualStart,
		s.ActualEnd,
		s.Status,
	).Scan(&s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return s, nil
}

// InsertBatch implements shift.ShiftRepository.
func (r *shiftRepository) InsertBatch(ctx context.Context, shifts []shift.Shift) error {
	if len(shifts) == 0 {
		return nil
	}

	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		return insertShiftsTx(ctx, tx, shifts)
	})
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string, owner string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE id = $1
		  AND owner = $2
	`

	s, err := scanShift(q.QueryRow(ctx, query, id, owner))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, fmt.Errorf("shift %s not found: %w", id, err)
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return s, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepository) Update(ctx context.Context, s shift.Shift) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET account_id = $3,
			account_name = $4,
			employee_id = $5,
			employee_name = $6,
			scheduled_start = $7,
			scheduled_end = $8,
			actual_start = $9,
			actual_end = $10,
			status = $11,
			updated_at = NOW()
		WHERE id = $1
		  AND owner = $2
	`

	tag, err := q.Exec(ctx, query,
		s.ID,
		s.Owner,
		s.AccountID,
		s.AccountName,
		s.EmployeeID,
		s.EmployeeName,
		s.ScheduledStart,
		s.ScheduledEnd,
		s.ActualStart,
		s.ActualEnd,
		s.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("shift %s not found: %w", s.ID, pgx.ErrNoRows)
	}

	return nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepository) Delete(ctx context.Context, id string, owner string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1 AND owner = $2`, id, owner)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("shift %s not found: %w", id, pgx.ErrNoRows)
	}

	return nil
}

// ListByRange implements shift.ShiftRepository.
func (r *shiftRepository) ListByRange(ctx context.Context, owner string, start, end time.Time, filter shift.ListShiftsFilter) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE owner = $1
		  AND scheduled_start < $3
		  AND scheduled_end > $2
	`
	args := []interface{}{owner, start, end}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		query += fmt.Sprintf(" AND account_id = $%d", len(args))
	}
	query += " ORDER BY scheduled_start, account_name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts by range: %w", err)
	}
	defer rows.Close()

	return scanShifts(rows)
}

// ListForConflict implements shift.ShiftRepository.
func (r *shiftRepository) ListForConflict(ctx context.Context, owner string, employeeID string, after time.Time) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE owner = $1
		  AND employee_id = $2
		  AND status <> 'Completed'
		  AND scheduled_end > $3
		ORDER BY scheduled_start
	`

	rows, err := q.Query(ctx, query, owner, employeeID, after)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts for conflict check: %w", err)
	}
	defer rows.Close()

	return scanShifts(rows)
}

// ListOverlapping implements shift.ShiftRepository.
func (r *shiftRepository) ListOverlapping(ctx context.Context, owner string, start, end time.Time) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE owner = $1
		  AND status <> 'Completed'
		  AND scheduled_start < $3
		  AND scheduled_end > $2
		ORDER BY scheduled_start
	`

	rows, err := q.Query(ctx, query, owner, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list overlapping shifts: %w", err)
	}
	defer rows.Close()

	return scanShifts(rows)
}

// ReplaceSlot implements shift.ShiftRepository.
func (r *shiftRepository) ReplaceSlot(ctx context.Context, owner string, accountID string, start, end time.Time, shifts []shift.Shift) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			DELETE FROM shifts
			WHERE owner = $1
			  AND account_id = $2
			  AND scheduled_start = $3
			  AND scheduled_end = $4
			  AND status = 'Scheduled'
		`, owner, accountID, start, end)
		if err != nil {
			return fmt.Errorf("failed to clear slot: %w", err)
		}

		return insertShiftsTx(ctx, tx, shifts)
	})
}

// LatestStartByAccount implements shift.ShiftRepository.
func (r *shiftRepository) LatestStartByAccount(ctx context.Context, owner string, accountID string) (*time.Time, error) {
	q := GetQuerier(ctx, r.db)

	var latest *time.Time
	err := q.QueryRow(ctx, `
		SELECT MAX(scheduled_start)
		FROM shifts
		WHERE owner = $1
		  AND account_id = $2
	`, owner, accountID).Scan(&latest)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest shift start: %w", err)
	}

	return latest, nil
}

// ReplaceFuture implements shift.ShiftRepository.
func (r *shiftRepository) ReplaceFuture(ctx context.Context, owner string, accountID string, from time.Time, shifts []shift.Shift) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		// Completed shifts are history and survive every regeneration.
		_, err := tx.Exec(ctx, `
			DELETE FROM shifts
			WHERE owner = $1
			  AND account_id = $2
			  AND scheduled_start >= $3
			  AND status <> 'Completed'
		`, owner, accountID, from)
		if err != nil {
			return fmt.Errorf("failed to delete future shifts: %w", err)
		}

		return insertShiftsTx(ctx, tx, shifts)
	})
}

func insertShiftsTx(ctx context.Context, tx pgx.Tx, shifts []shift.Shift) error {
	query := `
		INSERT INTO shifts (
			id, owner, account_id, account_name, employee_id, employee_name,
			scheduled_start, scheduled_end, actual_start, actual_end, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`

	for _, s := range shifts {
		_, err := tx.Exec(ctx, query,
			s.ID,
			s.Owner,
			s.AccountID,
			s.AccountName,
			s.EmployeeID,
			s.EmployeeName,
			s.ScheduledStart,
			s.ScheduledEnd,
			s.ActualStart,
			s.ActualEnd,
			s.Status,
		)
		if err != nil {
			return fmt.Errorf("failed to insert shift: %w", err)
		}
	}

	return nil
}

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	err := row.Scan(
		&s.ID, &s.Owner, &s.AccountID, &s.AccountName, &s.EmployeeID, &s.EmployeeName,
		&s.ScheduledStart, &s.ScheduledEnd, &s.ActualStart, &s.ActualEnd, &s.Status,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func scanShifts(rows pgx.Rows) ([]shift.Shift, error) {
	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shifts: %w", err)
	}
	return shifts, nil
}
