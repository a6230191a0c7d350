package testutil

import (
	"context"
	"sort"

	"github.com/realstatepro/billing/internal/domain/contract"
	ierr "github.com/realstatepro/billing/internal/errors"
	"github.com/realstatepro/billing/internal/types"
)

// InMemoryContractStore implements contract.Repository
type InMemoryContractStore struct {
	contracts *InMemoryStore[*contract.Contract]
	configs   *InMemoryStore[*contract.BillingConfig]
}

func NewInMemoryContractStore() *InMemoryContractStore {
	return &InMemoryContractStore{
		contracts: NewInMemoryStore[*contract.Contract](),
		configs:   NewInMemoryStore[*contract.BillingConfig](),
	}
}

func (s *InMemoryContractStore) Create(ctx context.Context, c *contract.Contract) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return s.contracts.Create(ctx, c.ID, c)
}

func (s *InMemoryContractStore) Get(ctx context.Context, id string) (*contract.Contract, error) {
	c, err := s.contracts.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("contract %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return c, nil
}

func (s *InMemoryContractStore) List(ctx context.Context, filter *types.ContractFilter) ([]*contract.Contract, error) {
	return s.contracts.List(ctx, filter,
		func(ctx context.Context, c *contract.Contract, f interface{}) bool {
			filter := f.(*types.ContractFilter)
			if filter.Status != "" && c.Status != filter.Status {
				return false
			}
			if filter.GenerationDay != nil && c.GenerationDay != *filter.GenerationDay {
				return false
			}
			if filter.OrganizationID != "" && c.OrganizationID != filter.OrganizationID {
				return false
			}
			if filter.PropertyID != "" && c.PropertyID != filter.PropertyID {
				return false
			}
			return true
		},
		func(i, j *contract.Contract) bool {
			return i.CreatedAt.Before(j.CreatedAt)
		})
}

func (s *InMemoryContractStore) CreateBillingConfig(ctx context.Context, cfg *contract.BillingConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return s.configs.Create(ctx, cfg.ID, cfg)
}

func (s *InMemoryContractStore) GetLatestBillingConfig(ctx context.Context, contractID string) (*contract.BillingConfig, error) {
	configs, err := s.configs.List(ctx, contractID,
		func(ctx context.Context, cfg *contract.BillingConfig, f interface{}) bool {
			return cfg.ContractID == f.(string)
		}, nil)
	if err != nil {
		return nil, err
	}
	if len(configs) == 0 {
		return nil, ierr.NewErrorf("contract %s has no billing config", contractID).
			Mark(ierr.ErrNotFound)
	}
	sort.Slice(configs, func(i, j int) bool {
		return configs[i].Version > configs[j].Version
	})
	return configs[0], nil
}

func (s *InMemoryContractStore) Clear() {
	s.contracts.Clear()
	s.configs.Clear()
}
