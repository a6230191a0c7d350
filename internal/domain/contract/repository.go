package contract

import (
	"context"

	"github.com/realstatepro/billing/internal/types"
)

// Repository defines the interface for contract data access
type Repository interface {
	Create(ctx context.Context, contract *Contract) error
	Get(ctx context.Context, id string) (*Contract, error)
	List(ctx context.Context, filter *types.ContractFilter) ([]*Contract, error)

	// CreateBillingConfig appends a new config version for a contract
	CreateBillingConfig(ctx context.Context, config *BillingConfig) error
	// GetLatestBillingConfig returns the highest-version config for the
	// contract, or ErrNotFound when the contract has none
	GetLatestBillingConfig(ctx context.Context, contractID string) (*BillingConfig, error)
}
