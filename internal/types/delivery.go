package types

import (
	ierr "github.com/realstatepro/billing/internal/errors"
	"github.com/samber/lo"
)

// DeliveryProvider is the closed set of channels an organization can use to
// deliver voucher reminders. Adding a provider means adding a constant here
// plus its delivery.Provider implementation; caller logic never changes.
type DeliveryProvider string

const (
	// DeliveryProviderResend sends one email per voucher through the Resend API
	DeliveryProviderResend DeliveryProvider = "RESEND"
	// DeliveryProviderN8N posts the whole batch to an n8n webhook in one call
	DeliveryProviderN8N DeliveryProvider = "N8N"
)

func (p DeliveryProvider) String() string {
	return string(p)
}

func (p DeliveryProvider) Validate() error {
	allowed := []DeliveryProvider{DeliveryProviderResend, DeliveryProviderN8N}
	if !lo.Contains(allowed, p) {
		return ierr.NewError("unknown delivery provider").
			WithHintf("Provider must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}
