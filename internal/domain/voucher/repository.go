package voucher

import (
	"context"
	"time"

	"github.com/realstatepro/billing/internal/types"
)

// Repository defines the interface for voucher data access.
// The store enforces uniqueness on (property_id, period); concurrent
// generation runs racing on the same property rely on that constraint, not
// on locking in the orchestrator.
type Repository interface {
	Create(ctx context.Context, v *Voucher) error
	Get(ctx context.Context, id string) (*Voucher, error)
	Delete(ctx context.Context, id string) error

	// ListByPropertiesAndPeriod returns existing vouchers for the given
	// property set and period in one query; used to build the duplicate set
	ListByPropertiesAndPeriod(ctx context.Context, propertyIDs []string, period string) ([]*Voucher, error)

	// ListForDispatch returns vouchers matching the filter joined with
	// their tenant's contact data
	ListForDispatch(ctx context.Context, filter *types.DispatchFilter) ([]*WithRecipient, error)

	// MarkSent batch-updates the given vouchers to ENVIADO with the actual
	// send timestamp in one write
	MarkSent(ctx context.Context, ids []string, sentAt time.Time) error

	// ListSent returns every voucher not in GENERADO state
	ListSent(ctx context.Context) ([]*Voucher, error)

	// ResetToGenerated moves the given vouchers back to GENERADO and clears
	// their send timestamp (administrative recovery path)
	ResetToGenerated(ctx context.Context, ids []string) error
}
