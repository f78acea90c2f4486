package shift

import (
	"time"

	"github.com/cleandash/scheduler-backend-go/internal/pkg/validator"
)

// ========================================
// SHIFT DTOs
// ========================================

type CreateShiftRequest struct {
	AccountID   string   `json:"account_id"`
	EmployeeIDs []string `json:"employee_ids"`
	Date        string   `json:"date"`       // YYYY-MM-DD
	StartTime   string   `json:"start_time"` // HH:MM
	EndTime     string   `json:"end_time"`   // HH:MM
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AccountID) {
		errs = append(errs, validator.ValidationError{
			Field:   "account_id",
			Message: "account_id is required",
		})
	}

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if _, valid := validator.IsValidTimeOfDay(r.StartTime); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	if _, valid := validator.IsValidTimeOfDay(r.EndTime); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	for _, id := range r.EmployeeIDs {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_ids",
				Message: "employee_ids must not contain empty entries",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateShiftRequest struct {
	ID         string  `json:"-"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Date       *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartTime  *string `json:"start_time,omitempty"` // HH:MM
	EndTime    *string `json:"end_time,omitempty"`   // HH:MM
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != nil && validator.IsEmpty(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must not be empty",
		})
	}

	if r.Date != nil {
		if _, valid := validator.IsValidDate(*r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.StartTime != nil {
		if _, valid := validator.IsValidTimeOfDay(*r.StartTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be in HH:MM format",
			})
		}
	}

	if r.EndTime != nil {
		if _, valid := validator.IsValidTimeOfDay(*r.EndTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be in HH:MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListShiftsFilter struct {
	StartDate  string  `json:"start_date"` // YYYY-MM-DD, inclusive
	EndDate    string  `json:"end_date"`   // YYYY-MM-DD, inclusive
	EmployeeID *string `json:"employee_id,omitempty"`
	AccountID  *string `json:"account_id,omitempty"`
}

func (f *ListShiftsFilter) Validate() error {
	var errs validator.ValidationErrors

	start, startValid := validator.IsValidDate(f.StartDate)
	if !startValid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endValid := validator.IsValidDate(f.EndDate)
	if !endValid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startValid && endValid && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AvailabilityRequest struct {
	Date           string  `json:"date"`       // YYYY-MM-DD
	StartTime      string  `json:"start_time"` // HH:MM
	EndTime        string  `json:"end_time"`   // HH:MM
	ExcludeShiftID *string `json:"exclude_shift_id,omitempty"`
}

func (r *AvailabilityRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if _, valid := validator.IsValidTimeOfDay(r.StartTime); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	if _, valid := validator.IsValidTimeOfDay(r.EndTime); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// ATTENDANCE DTOs
// ========================================

// Geolocation failure causes reported by the client when no fix could be
// acquired. They map onto the browser GeolocationPositionError codes.
const (
	GeoErrorPermissionDenied    = "permission_denied"
	GeoErrorPositionUnavailable = "position_unavailable"
	GeoErrorTimeout             = "timeout"
)

type ClockInRequest struct {
	ShiftID           string   `json:"-"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
	AccuracyM         *float64 `json:"accuracy_m,omitempty"`
	AcceptLowAccuracy bool     `json:"accept_low_accuracy"`
	GeoError          *string  `json:"geo_error,omitempty"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be provided together",
		})
	}

	if r.AccuracyM != nil && *r.AccuracyM < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "accuracy_m",
			Message: "accuracy_m must not be negative",
		})
	}

	if r.GeoError != nil {
		validCauses := []string{GeoErrorPermissionDenied, GeoErrorPositionUnavailable, GeoErrorTimeout}
		if !validator.IsInSlice(*r.GeoError, validCauses) {
			errs = append(errs, validator.ValidationError{
				Field:   "geo_error",
				Message: "geo_error must be one of: permission_denied, position_unavailable, timeout",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// RESPONSES
// ========================================

type ShiftResponse struct {
	ID             string  `json:"id"`
	AccountID      string  `json:"account_id"`
	AccountName    string  `json:"account_name"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	ScheduledStart string  `json:"scheduled_start"`
	ScheduledEnd   string  `json:"scheduled_end"`
	ActualStart    *string `json:"actual_start,omitempty"`
	ActualEnd      *string `json:"actual_end,omitempty"`
	Status         string  `json:"status"`
	IsLate         bool    `json:"is_late"`
}

func NewShiftResponse(s Shift, now time.Time, lateThreshold time.Duration) ShiftResponse {
	resp := ShiftResponse{
		ID:             s.ID,
		AccountID:      s.AccountID,
		AccountName:    s.AccountName,
		EmployeeID:     s.EmployeeID,
		EmployeeName:   s.EmployeeName,
		ScheduledStart: s.ScheduledStart.Format(time.RFC3339),
		ScheduledEnd:   s.ScheduledEnd.Format(time.RFC3339),
		Status:         string(s.Status),
		IsLate:         s.IsLate(now, lateThreshold),
	}
	if s.ActualStart != nil {
		v := s.ActualStart.Format(time.RFC3339)
		resp.ActualStart = &v
	}
	if s.ActualEnd != nil {
		v := s.ActualEnd.Format(time.RFC3339)
		resp.ActualEnd = &v
	}
	return resp
}

type ClockInResponse struct {
	Shift ShiftResponse `json:"shift"`
	// Warning is set when the clock-in succeeded without a geofence check,
	// for example when the account has no stored coordinate.
	Warning *string `json:"warning,omitempty"`
	// AlarmCode is the site's entry code, shown to staff once they are
	// clocked in on site.
	AlarmCode *string `json:"alarm_code,omitempty"`
}

type EmployeeAvailability struct {
	EmployeeID string  `json:"employee_id"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Busy       bool    `json:"busy"`
	BusyAt     *string `json:"busy_at,omitempty"`
}
