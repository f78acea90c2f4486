package shift

import (
	"time"
)

// UnassignedEmployeeID marks a shift generated for a slot no employee has
// been assigned to yet.
const UnassignedEmployeeID = "UNASSIGNED"

type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusStarted   Status = "Started"
	StatusCompleted Status = "Completed"
)

var StatusValues = []string{
	string(StatusScheduled),
	string(StatusStarted),
	string(StatusCompleted),
}

type Shift struct {
	ID             string
	Owner          string
	AccountID      string
	AccountName    string
	EmployeeID     string
	EmployeeName   string
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	ActualStart    *time.Time
	ActualEnd      *time.Time
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsLate reports whether a still-Scheduled shift has passed its start by more
// than the configured threshold. Late is derived, never persisted.
func (s *Shift) IsLate(now time.Time, threshold time.Duration) bool {
	return s.Status == StatusScheduled && now.After(s.ScheduledStart.Add(threshold))
}

// Overlaps reports whether [start, end) overlaps the scheduled window.
// Windows that merely touch at an endpoint do not overlap.
func (s *Shift) Overlaps(start, end time.Time) bool {
	return s.ScheduledStart.Before(end) && s.ScheduledEnd.After(start)
}

// WindowOn resolves "HH:MM" wall-clock bounds onto a calendar day. An end
// that does not come after the start rolls over to the next day, so overnight
// shifts such as 22:00-02:00 keep a positive duration.
func WindowOn(day time.Time, startHHMM, endHHMM string) (time.Time, time.Time, error) {
	startClock, err := time.Parse("15:04", startHHMM)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endClock, err := time.Parse("15:04", endHHMM)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	y, m, d := day.Date()
	start := time.Date(y, m, d, startClock.Hour(), startClock.Minute(), 0, 0, day.Location())
	end := time.Date(y, m, d, endClock.Hour(), endClock.Minute(), 0, 0, day.Location())
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, nil
}
