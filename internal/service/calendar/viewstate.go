package calendar

import (
	"time"

	"github.com/cleandash/scheduler-backend-go/internal/domain/shift"
)

const (
	ViewDay   = "day"
	ViewWeek  = "week"
	ViewMonth = "month"
)

// ViewState carries the scheduler page's current view as an explicit value
// instead of shared mutable state: which view, which date, and which
// employee or account filter is applied.
type ViewState struct {
	View       string
	Date       time.Time
	EmployeeID *string
	AccountID  *string
}

// Range returns the [start, end) window of shifts the view needs.
func (v ViewState) Range() (time.Time, time.Time) {
	y, m, d := v.Date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, v.Date.Location())

	switch v.View {
	case ViewWeek:
		// Week starts on Sunday, matching the recurrence day indexing.
		start := day.AddDate(0, 0, -int(day.Weekday()))
		return start, start.AddDate(0, 0, 7)
	case ViewMonth:
		start := time.Date(y, m, 1, 0, 0, 0, 0, v.Date.Location())
		return start, start.AddDate(0, 1, 0)
	default:
		return day, day.AddDate(0, 0, 1)
	}
}

// Filter keeps only the shifts matching the view's employee and account
// filters.
func (v ViewState) Filter(shifts []shift.Shift) []shift.Shift {
	if v.EmployeeID == nil && v.AccountID == nil {
		return shifts
	}

	filtered := make([]shift.Shift, 0, len(shifts))
	for _, sh := range shifts {
		if v.EmployeeID != nil && sh.EmployeeID != *v.EmployeeID {
			continue
		}
		if v.AccountID != nil && sh.AccountID != *v.AccountID {
			continue
		}
		filtered = append(filtered, sh)
	}
	return filtered
}
