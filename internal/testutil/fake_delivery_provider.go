package testutil

import (
	"context"
	"sync"

	"github.com/realstatepro/billing/internal/delivery"
	ierr "github.com/realstatepro/billing/internal/errors"
)

// FakeDeliveryProvider records delivered batches and can be told to fail
// after a number of messages, mimicking the single-send provider's partial
// failure shape.
type FakeDeliveryProvider struct {
	mu sync.Mutex

	// FailAfter fails the batch once this many messages were accepted;
	// negative means never fail.
	FailAfter int

	Delivered []delivery.Message
}

func NewFakeDeliveryProvider() *FakeDeliveryProvider {
	return &FakeDeliveryProvider{FailAfter: -1}
}

func (p *FakeDeliveryProvider) Deliver(ctx context.Context, batch []delivery.Message) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var delivered []string
	for i, m := range batch {
		if p.FailAfter >= 0 && i >= p.FailAfter {
			return delivered, ierr.NewError("provider rejected message").
				Mark(ierr.ErrProvider)
		}
		p.Delivered = append(p.Delivered, m)
		delivered = append(delivered, m.VoucherID)
	}
	return delivered, nil
}
