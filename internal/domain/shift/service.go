package shift

import (
	"context"
	"time"

	"github.com/cleandash/scheduler-backend-go/internal/domain/account"
)

// ShiftService defines business logic for manual shift management.
type ShiftService interface {
	// Create saves one shift per selected employee for the slot. A
	// single-employee save runs the double-booking check first; a roster
	// save replaces the account's existing Scheduled shifts in the slot.
	Create(ctx context.Context, owner string, req CreateShiftRequest) ([]ShiftResponse, error)

	// Update edits a shift's assignment or window, re-running the
	// double-booking check against every shift but the edited one
	Update(ctx context.Context, owner string, req UpdateShiftRequest) (ShiftResponse, error)

	// Delete removes a shift
	Delete(ctx context.Context, owner string, id string) error

	// List retrieves shifts overlapping the filter's date range
	List(ctx context.Context, owner string, filter ListShiftsFilter) ([]ShiftResponse, error)

	// CheckConflict returns the earliest non-Completed shift that
	// double-books the employee over [start, end), or nil when free
	CheckConflict(ctx context.Context, owner string, employeeID string, start, end time.Time, excludeShiftID string) (*Shift, error)

	// Availability returns the active roster annotated with who is already
	// booked somewhere else during the window
	Availability(ctx context.Context, owner string, req AvailabilityRequest) ([]EmployeeAvailability, error)
}

// RecurrenceService maintains the rolling window of generated shifts.
type RecurrenceService interface {
	// Generate expands an active recurrence pattern into concrete shifts
	// over [today, today+horizonDays). Pure: nothing is persisted.
	Generate(acct account.Account, employeeNames map[string]string, horizonDays int, now time.Time) ([]Shift, error)

	// Resync regenerates the account's future schedule from its current
	// pattern, atomically replacing every non-Completed shift from now on.
	// Returns the number of shifts written.
	Resync(ctx context.Context, owner string, accountID string, now time.Time) (int, error)

	// Extend appends shifts for the days between the account's last stored
	// shift and the horizon edge. Never deletes. Returns the number added.
	Extend(ctx context.Context, owner string, accountID string, now time.Time) (int, error)

	// ExtendAll runs Extend for every account with an active pattern,
	// across owners. Used by the periodic horizon job.
	ExtendAll(ctx context.Context, now time.Time) error
}

// AttendanceService drives the shift status state machine.
type AttendanceService interface {
	// ClockIn moves Scheduled to Started after the geofence check
	ClockIn(ctx context.Context, owner string, req ClockInRequest) (ClockInResponse, error)

	// ClockOut moves Started to Completed
	ClockOut(ctx context.Context, owner string, shiftID string) (ShiftResponse, error)

	// OverrideComplete force-completes a Scheduled or Started shift,
	// backfilling actual times from the scheduled window
	OverrideComplete(ctx context.Context, owner string, shiftID string) (ShiftResponse, error)
}
