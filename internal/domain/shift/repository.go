package shift

import (
	"context"
	"time"
)

// ShiftRepository defines data access for the shift collection.
// All methods take the owner key so one franchise can never read or write
// another franchise's shifts.
type ShiftRepository interface {
	// Create inserts a single shift
	Create(ctx context.Context, s Shift) (Shift, error)

	// InsertBatch inserts a roster of shifts in one transaction
	InsertBatch(ctx context.Context, shifts []Shift) error

	// GetByID retrieves a shift with owner isolation
	GetByID(ctx context.Context, id string, owner string) (Shift, error)

	// Update persists scheduling and attendance fields of an existing shift
	Update(ctx context.Context, s Shift) error

	// Delete removes a shift
	Delete(ctx context.Context, id string, owner string) error

	// ListByRange retrieves shifts whose scheduled window overlaps
	// [start, end), newest filters applied, ordered by scheduled_start
	ListByRange(ctx context.Context, owner string, start, end time.Time, filter ListShiftsFilter) ([]Shift, error)

	// ListForConflict retrieves the employee's non-Completed shifts with
	// scheduled_end after the given lower bound, ordered by scheduled_start
	ListForConflict(ctx context.Context, owner string, employeeID string, after time.Time) ([]Shift, error)

	// ListOverlapping retrieves every non-Completed shift overlapping
	// [start, end), used for the availability roster
	ListOverlapping(ctx context.Context, owner string, start, end time.Time) ([]Shift, error)

	// ReplaceSlot atomically deletes the account's Scheduled shifts sharing
	// the exact [start, end) window, then inserts the new roster. Started
	// and Completed shifts in the slot are kept.
	ReplaceSlot(ctx context.Context, owner string, accountID string, start, end time.Time, shifts []Shift) error

	// LatestStartByAccount returns the most recent scheduled_start stored for
	// the account, or nil when the account has no shifts
	LatestStartByAccount(ctx context.Context, owner string, accountID string) (*time.Time, error)

	// ReplaceFuture atomically deletes the account's non-Completed shifts with
	// scheduled_start at or after from, then inserts the replacement set
	ReplaceFuture(ctx context.Context, owner string, accountID string, from time.Time, shifts []Shift) error
}
