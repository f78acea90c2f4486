package employee

import (
	"time"
)

const (
	StatusActive   = "Active"
	StatusWaiting  = "Waiting"
	StatusInactive = "Inactive"
)

// Employee is a staff member. Read-only to the scheduling engine.
type Employee struct {
	ID        string
	Owner     string
	Name      string
	Status    string
	Wage      *float64
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the employee can be offered for assignment.
func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}
