package employee

import (
	"context"
)

// EmployeeRepository defines read access to employee documents.
type EmployeeRepository interface {
	// GetByID retrieves an employee with owner isolation
	GetByID(ctx context.Context, id string, owner string) (Employee, error)

	// ListActive retrieves the owner's Active employees ordered by name
	ListActive(ctx context.Context, owner string) ([]Employee, error)

	// ListByIDs retrieves the named employees, skipping unknown ids
	ListByIDs(ctx context.Context, owner string, ids []string) ([]Employee, error)
}
