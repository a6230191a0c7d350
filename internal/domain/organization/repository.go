package organization

import "context"

// Repository defines the interface for organization data access
type Repository interface {
	Create(ctx context.Context, org *Organization) error
	Get(ctx context.Context, id string) (*Organization, error)
	// ListByIDs returns the organizations for the given id set in one query
	ListByIDs(ctx context.Context, ids []string) ([]*Organization, error)
}
