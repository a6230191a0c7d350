package testutil

import (
	"context"

	"github.com/realstatepro/billing/internal/domain/organization"
	ierr "github.com/realstatepro/billing/internal/errors"
)

// InMemoryOrganizationStore implements organization.Repository
type InMemoryOrganizationStore struct {
	orgs *InMemoryStore[*organization.Organization]
}

func NewInMemoryOrganizationStore() *InMemoryOrganizationStore {
	return &InMemoryOrganizationStore{
		orgs: NewInMemoryStore[*organization.Organization](),
	}
}

func (s *InMemoryOrganizationStore) Create(ctx context.Context, org *organization.Organization) error {
	if org.DeliveryConfig != nil {
		if err := org.DeliveryConfig.Validate(); err != nil {
			return err
		}
	}
	return s.orgs.Create(ctx, org.ID, org)
}

func (s *InMemoryOrganizationStore) Get(ctx context.Context, id string) (*organization.Organization, error) {
	org, err := s.orgs.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("organization %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return org, nil
}

func (s *InMemoryOrganizationStore) ListByIDs(ctx context.Context, ids []string) ([]*organization.Organization, error) {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	return s.orgs.List(ctx, nil,
		func(ctx context.Context, org *organization.Organization, _ interface{}) bool {
			_, ok := wanted[org.ID]
			return ok
		}, nil)
}

func (s *InMemoryOrganizationStore) Clear() {
	s.orgs.Clear()
}
