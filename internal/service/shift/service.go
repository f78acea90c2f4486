package shift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cleandash/scheduler-backend-go/internal/domain/account"
	"github.com/cleandash/scheduler-backend-go/internal/domain/employee"
	"github.com/cleandash/scheduler-backend-go/internal/domain/shift"
	"github.com/cleandash/scheduler-backend-go/internal/pkg/metrics"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ShiftServiceImpl struct {
	shiftRepo     shift.ShiftRepository
	accountRepo   account.AccountRepository
	employeeRepo  employee.EmployeeRepository
	lateThreshold time.Duration
	clock         func() time.Time
}

func NewShiftService(
	shiftRepo shift.ShiftRepository,
	accountRepo account.AccountRepository,
	employeeRepo employee.EmployeeRepository,
	lateThreshold time.Duration,
) shift.ShiftService {
	return &ShiftServiceImpl{
		shiftRepo:     shiftRepo,
		accountRepo:   accountRepo,
		employeeRepo:  employeeRepo,
		lateThreshold: lateThreshold,
		clock:         time.Now,
	}
}

// Create implements shift.ShiftService.
func (s *ShiftServiceImpl) Create(ctx context.Context, owner string, req shift.CreateShiftRequest) ([]shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	acct, err := s.accountRepo.GetByID(ctx, req.AccountID, owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, account.ErrAccountNotFound) {
			return nil, shift.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	day, _ := time.Parse("2006-01-02", req.Date)
	start, end, err := shift.WindowOn(day, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	employeeIDs := req.EmployeeIDs
	if len(employeeIDs) == 0 {
		employeeIDs = []string{shift.UnassignedEmployeeID}
	}

	names, err := s.employeeNames(ctx, owner, employeeIDs)
	if err != nil {
		return nil, err
	}

	// Shared slots are legitimate when the owner books a crew, so only a
	// single-employee save runs the double-booking check.
	if len(employeeIDs) == 1 && employeeIDs[0] != shift.UnassignedEmployeeID {
		conflicting, err := s.CheckConflict(ctx, owner, employeeIDs[0], start, end, "")
		if err != nil {
			return nil, err
		}
		if conflicting != nil {
			metrics.ConflictsRejected.Inc()
			return nil, &shift.ConflictError{
				EmployeeName: names[employeeIDs[0]],
				AccountName:  conflicting.AccountName,
				Start:        conflicting.ScheduledStart,
				End:          conflicting.ScheduledEnd,
			}
		}
	}

	shifts := make([]shift.Shift, 0, len(employeeIDs))
	for _, employeeID := range employeeIDs {
		name := names[employeeID]
		if employeeID == shift.UnassignedEmployeeID {
			name = "Unassigned"
		}
		shifts = append(shifts, shift.Shift{
			ID:             uuid.NewString(),
			Owner:          owner,
			AccountID:      acct.ID,
			AccountName:    acct.Name,
			EmployeeID:     employeeID,
			EmployeeName:   name,
			ScheduledStart: start,
			ScheduledEnd:   end,
			Status:         shift.StatusScheduled,
		})
	}

	if err := s.shiftRepo.ReplaceSlot(ctx, owner, acct.ID, start, end, shifts); err != nil {
		return nil, fmt.Errorf("failed to save shift roster: %w", err)
	}

	now := s.clock()
	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, shift.NewShiftResponse(sh, now, s.lateThreshold))
	}
	return responses, nil
}

// Update implements shift.ShiftService.
func (s *ShiftServiceImpl) Update(ctx context.Context, owner string, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	sh, err := s.shiftRepo.GetByID(ctx, req.ID, owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftResponse{}, shift.ErrShiftNotFound
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}

	if req.EmployeeID != nil {
		sh.EmployeeID = *req.EmployeeID
		if sh.EmployeeID == shift.UnassignedEmployeeID {
			sh.EmployeeName = "Unassigned"
		} else {
			emp, err := s.employeeRepo.GetByID(ctx, sh.EmployeeID, owner)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, employee.ErrEmployeeNotFound) {
					return shift.ShiftResponse{}, employee.ErrEmployeeNotFound
				}
				return shift.ShiftResponse{}, fmt.Errorf("failed to get employee: %w", err)
			}
			sh.EmployeeName = emp.Name
		}
	}

	if req.Date != nil || req.StartTime != nil || req.EndTime != nil {
		day := midnight(sh.ScheduledStart)
		if req.Date != nil {
			day, _ = time.Parse("2006-01-02", *req.Date)
		}
		startTime := sh.ScheduledStart.Format("15:04")
		if req.StartTime != nil {
			startTime = *req.StartTime
		}
		endTime := sh.ScheduledEnd.Format("15:04")
		if req.EndTime != nil {
			endTime = *req.EndTime
		}

		start, end, err := shift.WindowOn(day, startTime, endTime)
		if err != nil {
			return shift.ShiftResponse{}, err
		}
		sh.ScheduledStart = start
		sh.ScheduledEnd = end
	}

	if sh.EmployeeID != shift.UnassignedEmployeeID {
		conflicting, err := s.CheckConflict(ctx, owner, sh.EmployeeID, sh.ScheduledStart, sh.ScheduledEnd, sh.ID)
		if err != nil {
			return shift.ShiftResponse{}, err
		}
		if conflicting != nil {
			metrics.ConflictsRejected.Inc()
			return shift.ShiftResponse{}, &shift.ConflictError{
				EmployeeName: sh.EmployeeName,
				AccountName:  conflicting.AccountName,
				Start:        conflicting.ScheduledStart,
				End:          conflicting.ScheduledEnd,
			}
		}
	}

	if err := s.shiftRepo.Update(ctx, sh); err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to update shift: %w", err)
	}

	return shift.NewShiftResponse(sh, s.clock(), s.lateThreshold), nil
}

// Delete implements shift.ShiftService.
func (s *ShiftServiceImpl) Delete(ctx context.Context, owner string, id string) error {
	if err := s.shiftRepo.Delete(ctx, id, owner); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ErrShiftNotFound
		}
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	return nil
}

// List implements shift.ShiftService.
func (s *ShiftServiceImpl) List(ctx context.Context, owner string, filter shift.ListShiftsFilter) ([]shift.ShiftResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	startDay, _ := time.Parse("2006-01-02", filter.StartDate)
	endDay, _ := time.Parse("2006-01-02", filter.EndDate)
	rangeEnd := endDay.AddDate(0, 0, 1)

	shifts, err := s.shiftRepo.ListByRange(ctx, owner, startDay, rangeEnd, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	now := s.clock()
	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, shift.NewShiftResponse(sh, now, s.lateThreshold))
	}
	return responses, nil
}

// CheckConflict implements shift.ShiftService.
func (s *ShiftServiceImpl) CheckConflict(ctx context.Context, owner string, employeeID string, start, end time.Time, excludeShiftID string) (*shift.Shift, error) {
	if employeeID == shift.UnassignedEmployeeID {
		return nil, nil
	}

	existing, err := s.shiftRepo.ListForConflict(ctx, owner, employeeID, start)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts for conflict check: %w", err)
	}

	var earliest *shift.Shift
	for i := range existing {
		sh := &existing[i]
		if sh.ID == excludeShiftID {
			continue
		}
		if !sh.Overlaps(start, end) {
			continue
		}
		if earliest == nil || sh.ScheduledStart.Before(earliest.ScheduledStart) {
			earliest = sh
		}
	}
	return earliest, nil
}

// Availability implements shift.ShiftService.
func (s *ShiftServiceImpl) Availability(ctx context.Context, owner string, req shift.AvailabilityRequest) ([]shift.EmployeeAvailability, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	day, _ := time.Parse("2006-01-02", req.Date)
	start, end, err := shift.WindowOn(day, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	actives, err := s.employeeRepo.ListActive(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	overlapping, err := s.shiftRepo.ListOverlapping(ctx, owner, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list overlapping shifts: %w", err)
	}

	// First booking by start time wins the label when someone is
	// double-booked already.
	busyAt := make(map[string]shift.Shift)
	for _, sh := range overlapping {
		if req.ExcludeShiftID != nil && sh.ID == *req.ExcludeShiftID {
			continue
		}
		if prev, ok := busyAt[sh.EmployeeID]; !ok || sh.ScheduledStart.Before(prev.ScheduledStart) {
			busyAt[sh.EmployeeID] = sh
		}
	}

	roster := make([]shift.EmployeeAvailability, 0, len(actives))
	for _, emp := range actives {
		entry := shift.EmployeeAvailability{
			EmployeeID: emp.ID,
			Name:       emp.Name,
			Color:      emp.Color,
		}
		if booked, ok := busyAt[emp.ID]; ok {
			entry.Busy = true
			name := booked.AccountName
			entry.BusyAt = &name
		}
		roster = append(roster, entry)
	}
	return roster, nil
}

func (s *ShiftServiceImpl) employeeNames(ctx context.Context, owner string, ids []string) (map[string]string, error) {
	real := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != shift.UnassignedEmployeeID {
			real = append(real, id)
		}
	}

	names := make(map[string]string)
	if len(real) == 0 {
		return names, nil
	}

	employees, err := s.employeeRepo.ListByIDs(ctx, owner, real)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	for _, emp := range employees {
		names[emp.ID] = emp.Name
	}

	for _, id := range real {
		if _, ok := names[id]; !ok {
			return nil, employee.ErrEmployeeNotFound
		}
	}
	return names, nil
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
