package response

import (
	"errors"
	"net/http"

	"github.com/cleandash/scheduler-backend-go/internal/domain/account"
	"github.com/cleandash/scheduler-backend-go/internal/domain/employee"
	"github.com/cleandash/scheduler-backend-go/internal/domain/shift"
	"github.com/cleandash/scheduler-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Not found
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrAccountNotFound), errors.Is(err, account.ErrAccountNotFound):
		NotFound(w, "Account not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Scheduling errors. Conflict messages carry who is booked where.
	case errors.Is(err, shift.ErrShiftConflict):
		Conflict(w, "SHIFT_CONFLICT", err.Error())
	case errors.Is(err, shift.ErrNoDaysSelected):
		BadRequest(w, "Select at least one day of the week", nil)
	case errors.Is(err, shift.ErrPatternInactive):
		BadRequest(w, "Recurring schedule is not active for this account", nil)

	// Attendance errors
	case errors.Is(err, shift.ErrInvalidTransition):
		Conflict(w, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, shift.ErrOutOfRange):
		Forbidden(w, err.Error())
	case errors.Is(err, shift.ErrLowAccuracy):
		// The client may retry with accept_low_accuracy set.
		Conflict(w, "LOW_ACCURACY", err.Error())
	case errors.Is(err, shift.ErrGeoPermissionDenied),
		errors.Is(err, shift.ErrGeoUnavailable),
		errors.Is(err, shift.ErrGeoTimeout):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
