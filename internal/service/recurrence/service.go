package recurrence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cleandash/scheduler-backend-go/internal/domain/account"
	"github.com/cleandash/scheduler-backend-go/internal/domain/employee"
	"github.com/cleandash/scheduler-backend-go/internal/domain/shift"
	"github.com/cleandash/scheduler-backend-go/internal/pkg/metrics"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UnassignedDisplayName is shown on shifts generated for an open slot.
const UnassignedDisplayName = "Unassigned"

type RecurrenceServiceImpl struct {
	shiftRepo    shift.ShiftRepository
	accountRepo  account.AccountRepository
	employeeRepo employee.EmployeeRepository
	horizonDays  int
}

func NewRecurrenceService(
	shiftRepo shift.ShiftRepository,
	accountRepo account.AccountRepository,
	employeeRepo employee.EmployeeRepository,
	horizonDays int,
) shift.RecurrenceService {
	return &RecurrenceServiceImpl{
		shiftRepo:    shiftRepo,
		accountRepo:  accountRepo,
		employeeRepo: employeeRepo,
		horizonDays:  horizonDays,
	}
}

// Generate implements shift.RecurrenceService.
func (s *RecurrenceServiceImpl) Generate(acct account.Account, employeeNames map[string]string, horizonDays int, now time.Time) ([]shift.Shift, error) {
	pattern := acct.Recurrence
	if pattern == nil || !pattern.Active {
		return nil, shift.ErrPatternInactive
	}
	if len(pattern.Days) == 0 {
		return nil, shift.ErrNoDaysSelected
	}

	today := midnight(now)

	var shifts []shift.Shift
	for i := 0; i < horizonDays; i++ {
		day := today.AddDate(0, 0, i)
		if !pattern.OnDay(day.Weekday()) {
			continue
		}

		start, end, err := shift.WindowOn(day, pattern.StartTime, pattern.EndTime)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern time for account %s: %w", acct.ID, err)
		}

		ids := pattern.EmployeeIDs
		if len(ids) == 0 {
			ids = []string{shift.UnassignedEmployeeID}
		}

		for _, employeeID := range ids {
			name := employeeNames[employeeID]
			if employeeID == shift.UnassignedEmployeeID {
				name = UnassignedDisplayName
			}
			shifts = append(shifts, shift.Shift{
				ID:             uuid.NewString(),
				Owner:          acct.Owner,
				AccountID:      acct.ID,
				AccountName:    acct.Name,
				EmployeeID:     employeeID,
				EmployeeName:   name,
				ScheduledStart: start,
				ScheduledEnd:   end,
				Status:         shift.StatusScheduled,
			})
		}
	}

	return shifts, nil
}

// Resync implements shift.RecurrenceService.
func (s *RecurrenceServiceImpl) Resync(ctx context.Context, owner string, accountID string, now time.Time) (int, error) {
	acct, err := s.accountRepo.GetByID(ctx, accountID, owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, account.ErrAccountNotFound) {
			return 0, shift.ErrAccountNotFound
		}
		return 0, fmt.Errorf("failed to get account: %w", err)
	}

	names, err := s.patternEmployeeNames(ctx, acct)
	if err != nil {
		return 0, err
	}

	generated, err := s.Generate(acct, names, s.horizonDays, now)
	if err != nil {
		return 0, err
	}

	// Generation starts at midnight, but shifts earlier today that already
	// ran must survive a resync. Only the window from now on is replaced.
	future := make([]shift.Shift, 0, len(generated))
	for _, sh := range generated {
		if !sh.ScheduledStart.Before(now) {
			future = append(future, sh)
		}
	}

	if err := s.shiftRepo.ReplaceFuture(ctx, owner, accountID, now, future); err != nil {
		return 0, fmt.Errorf("failed to replace future shifts: %w", err)
	}

	metrics.ShiftsGenerated.WithLabelValues("resync").Add(float64(len(future)))
	return len(future), nil
}

// Extend implements shift.RecurrenceService.
func (s *RecurrenceServiceImpl) Extend(ctx context.Context, owner string, accountID string, now time.Time) (int, error) {
	acct, err := s.accountRepo.GetByID(ctx, accountID, owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, account.ErrAccountNotFound) {
			return 0, shift.ErrAccountNotFound
		}
		return 0, fmt.Errorf("failed to get account: %w", err)
	}

	names, err := s.patternEmployeeNames(ctx, acct)
	if err != nil {
		return 0, err
	}

	generated, err := s.Generate(acct, names, s.horizonDays, now)
	if err != nil {
		return 0, err
	}

	latest, err := s.shiftRepo.LatestStartByAccount(ctx, owner, accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest shift start: %w", err)
	}

	// Append only the days past the last stored shift. Everything up to and
	// including that day is left untouched, edits included.
	var missing []shift.Shift
	if latest == nil {
		missing = generated
	} else {
		cutoff := midnight(*latest).AddDate(0, 0, 1)
		for _, sh := range generated {
			if !sh.ScheduledStart.Before(cutoff) {
				missing = append(missing, sh)
			}
		}
	}

	if len(missing) == 0 {
		return 0, nil
	}

	if err := s.shiftRepo.InsertBatch(ctx, missing); err != nil {
		return 0, fmt.Errorf("failed to insert extension shifts: %w", err)
	}

	metrics.ShiftsGenerated.WithLabelValues("extend").Add(float64(len(missing)))
	return len(missing), nil
}

// ExtendAll implements shift.RecurrenceService.
func (s *RecurrenceServiceImpl) ExtendAll(ctx context.Context, now time.Time) error {
	accounts, err := s.accountRepo.ListWithActivePattern(ctx)
	if err != nil {
		return fmt.Errorf("failed to list accounts with active patterns: %w", err)
	}

	for _, acct := range accounts {
		added, err := s.Extend(ctx, acct.Owner, acct.ID, now)
		if err != nil {
			// One broken account must not starve the rest of the sweep.
			slog.Error("horizon extension failed", "account_id", acct.ID, "error", err)
			continue
		}
		if added > 0 {
			slog.Info("horizon extended", "account_id", acct.ID, "shifts_added", added)
		}
	}

	return nil
}

func (s *RecurrenceServiceImpl) patternEmployeeNames(ctx context.Context, acct account.Account) (map[string]string, error) {
	names := make(map[string]string)
	if acct.Recurrence == nil || len(acct.Recurrence.EmployeeIDs) == 0 {
		return names, nil
	}

	employees, err := s.employeeRepo.ListByIDs(ctx, acct.Owner, acct.Recurrence.EmployeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list pattern employees: %w", err)
	}
	for _, emp := range employees {
		names[emp.ID] = emp.Name
	}
	return names, nil
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
