package account

import (
	"context"
)

// AccountRepository defines read access to account documents.
type AccountRepository interface {
	// GetByID retrieves an account with owner isolation
	GetByID(ctx context.Context, id string, owner string) (Account, error)

	// List retrieves the owner's accounts ordered by name
	List(ctx context.Context, owner string) ([]Account, error)

	// ListWithActivePattern retrieves every account carrying an active
	// recurrence pattern, across owners. Used by the horizon job.
	ListWithActivePattern(ctx context.Context) ([]Account, error)
}
