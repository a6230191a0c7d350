package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/realstatepro/billing/internal/domain/tenant"
	"github.com/realstatepro/billing/internal/domain/voucher"
	ierr "github.com/realstatepro/billing/internal/errors"
	"github.com/realstatepro/billing/internal/types"
)

// InMemoryVoucherStore implements voucher.Repository. It enforces the
// (property, period) uniqueness the real store guarantees with an index,
// so duplicate-handling paths behave the same under test.
type InMemoryVoucherStore struct {
	mu         sync.RWMutex
	vouchers   *InMemoryStore[*voucher.Voucher]
	recipients map[string]tenant.Tenant
}

func NewInMemoryVoucherStore() *InMemoryVoucherStore {
	return &InMemoryVoucherStore{
		vouchers:   NewInMemoryStore[*voucher.Voucher](),
		recipients: make(map[string]tenant.Tenant),
	}
}

// SetRecipient registers the tenant reached through the given contract;
// ListForDispatch joins against it.
func (s *InMemoryVoucherStore) SetRecipient(contractID string, t tenant.Tenant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipients[contractID] = t
}

func (s *InMemoryVoucherStore) Create(ctx context.Context, v *voucher.Voucher) error {
	existing, err := s.ListByPropertiesAndPeriod(ctx, []string{v.PropertyID}, v.Period)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return ierr.NewErrorf("voucher already exists for property %s in period %s", v.PropertyID, v.Period).
			Mark(ierr.ErrDuplicateConflict)
	}
	return s.vouchers.Create(ctx, v.ID, v)
}

func (s *InMemoryVoucherStore) Get(ctx context.Context, id string) (*voucher.Voucher, error) {
	v, err := s.vouchers.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("voucher %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return v, nil
}

func (s *InMemoryVoucherStore) Delete(ctx context.Context, id string) error {
	if err := s.vouchers.Delete(ctx, id); err != nil {
		return ierr.NewErrorf("voucher %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryVoucherStore) ListByPropertiesAndPeriod(ctx context.Context, propertyIDs []string, period string) ([]*voucher.Voucher, error) {
	properties := make(map[string]struct{}, len(propertyIDs))
	for _, id := range propertyIDs {
		properties[id] = struct{}{}
	}
	return s.vouchers.List(ctx, nil,
		func(ctx context.Context, v *voucher.Voucher, _ interface{}) bool {
			_, ok := properties[v.PropertyID]
			return ok && v.Period == period
		}, nil)
}

func (s *InMemoryVoucherStore) ListForDispatch(ctx context.Context, filter *types.DispatchFilter) ([]*voucher.WithRecipient, error) {
	vouchers, err := s.vouchers.List(ctx, filter,
		func(ctx context.Context, v *voucher.Voucher, f interface{}) bool {
			filter := f.(*types.DispatchFilter)
			if filter.Status != "" && v.Status != filter.Status {
				return false
			}
			if filter.ScheduledOn != nil && v.ScheduledSendDate != nil &&
				!v.ScheduledSendDate.Equal(*filter.ScheduledOn) {
				return false
			}
			if filter.OrganizationID != "" && v.OrganizationID != filter.OrganizationID {
				return false
			}
			if filter.VoucherID != "" && v.ID != filter.VoucherID {
				return false
			}
			return true
		},
		func(i, j *voucher.Voucher) bool {
			return i.GeneratedAt.Before(j.GeneratedAt)
		})
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*voucher.WithRecipient, 0, len(vouchers))
	for _, v := range vouchers {
		result = append(result, &voucher.WithRecipient{
			Voucher:   *v,
			Recipient: s.recipients[v.ContractID],
		})
	}
	return result, nil
}

func (s *InMemoryVoucherStore) MarkSent(ctx context.Context, ids []string, sentAt time.Time) error {
	for _, id := range ids {
		v, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		updated := *v
		updated.Status = types.VoucherStatusSent
		updated.SentAt = &sentAt
		if err := s.vouchers.Update(ctx, id, &updated); err != nil {
			return err
		}
	}
	return nil
}

func (s *InMemoryVoucherStore) ListSent(ctx context.Context) ([]*voucher.Voucher, error) {
	return s.vouchers.List(ctx, nil,
		func(ctx context.Context, v *voucher.Voucher, _ interface{}) bool {
			return v.Status != types.VoucherStatusGenerated
		},
		func(i, j *voucher.Voucher) bool {
			return i.GeneratedAt.Before(j.GeneratedAt)
		})
}

func (s *InMemoryVoucherStore) ResetToGenerated(ctx context.Context, ids []string) error {
	for _, id := range ids {
		v, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		updated := *v
		updated.Status = types.VoucherStatusGenerated
		updated.SentAt = nil
		if err := s.vouchers.Update(ctx, id, &updated); err != nil {
			return err
		}
	}
	return nil
}

func (s *InMemoryVoucherStore) Clear() {
	s.vouchers.Clear()
	s.mu.Lock()
	s.recipients = make(map[string]tenant.Tenant)
	s.mu.Unlock()
}
