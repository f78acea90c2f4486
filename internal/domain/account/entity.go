package account

import (
	"time"
)

// DefaultGeofenceRadiusM applies when an account has a coordinate but no
// explicit radius.
const DefaultGeofenceRadiusM = 200

// Account is a cleaning site. The scheduling engine reads accounts, it never
// writes them.
type Account struct {
	ID              string
	Owner           string
	Name            string
	Latitude        *float64
	Longitude       *float64
	GeofenceRadiusM *float64
	AlarmCode       *string
	Recurrence      *RecurrencePattern
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RecurrencePattern describes the account's weekly repeating slot.
// Days uses Sunday as 0.
type RecurrencePattern struct {
	Active      bool
	Days        []int
	StartTime   string // HH:MM
	EndTime     string // HH:MM
	EmployeeIDs []string
}

// RadiusM returns the effective geofence radius.
func (a *Account) RadiusM() float64 {
	if a.GeofenceRadiusM != nil && *a.GeofenceRadiusM > 0 {
		return *a.GeofenceRadiusM
	}
	return DefaultGeofenceRadiusM
}

// HasCoordinate reports whether the account can be geofence-checked at all.
func (a *Account) HasCoordinate() bool {
	return a.Latitude != nil && a.Longitude != nil
}

// OnDay reports whether the pattern fires on the given weekday.
func (p *RecurrencePattern) OnDay(day time.Weekday) bool {
	for _, d := range p.Days {
		if d == int(day) {
			return true
		}
	}
	return false
}
