package shift

import (
	"errors"
	"fmt"
	"time"
)

// Shift domain errors
var (
	ErrShiftNotFound   = errors.New("shift not found")
	ErrAccountNotFound = errors.New("account not found")

	// Recurrence errors
	ErrNoDaysSelected  = errors.New("no recurrence days selected")
	ErrPatternInactive = errors.New("recurring schedule is not active for this account")

	// Attendance errors
	ErrShiftConflict       = errors.New("employee is already scheduled in this time range")
	ErrOutOfRange          = errors.New("you are outside the allowed clock-in radius")
	ErrLowAccuracy         = errors.New("location accuracy is too low")
	ErrInvalidTransition   = errors.New("shift status does not allow this action")
	ErrGeoPermissionDenied = errors.New("location permission was denied")
	ErrGeoUnavailable      = errors.New("location position is unavailable")
	ErrGeoTimeout          = errors.New("location request timed out")
)

// ConflictError reports the earliest shift that double-books the employee.
type ConflictError struct {
	EmployeeName string
	AccountName  string
	Start        time.Time
	End          time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s is already scheduled at %s from %s to %s",
		e.EmployeeName, e.AccountName,
		e.Start.Format("15:04"), e.End.Format("15:04"))
}

func (e *ConflictError) Unwrap() error { return ErrShiftConflict }

// OutOfRangeError reports how far outside the account geofence the fix was.
type OutOfRangeError struct {
	DistanceM float64
	RadiusM   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("you are %.0fm from the site (allowed radius %.0fm)", e.DistanceM, e.RadiusM)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

// InvalidTransitionError reports an attendance action applied to a shift in
// the wrong state.
type InvalidTransitionError struct {
	From   Status
	Action string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a shift with status %s", e.Action, e.From)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }
