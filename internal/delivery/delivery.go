package delivery

import (
	"context"

	"github.com/realstatepro/billing/internal/config"
	"github.com/realstatepro/billing/internal/domain/organization"
	ierr "github.com/realstatepro/billing/internal/errors"
	"github.com/realstatepro/billing/internal/httpclient"
	"github.com/realstatepro/billing/internal/logger"
	"github.com/realstatepro/billing/internal/types"
)

// Message is one rendered voucher reminder addressed to a tenant.
type Message struct {
	VoucherID string `json:"voucher_id"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	HTML      string `json:"html"`
}

// Provider delivers a batch of rendered messages through one channel.
//
// Implementations differ in failure granularity and must preserve it:
// the single-send provider can fail partway through a batch and reports
// the messages already delivered; the batch-webhook provider is
// all-or-nothing for the whole call.
type Provider interface {
	// Deliver sends the batch and returns the voucher ids actually
	// delivered. On partial failure both the delivered ids and the error
	// are returned; errors are marked ErrProvider.
	Deliver(ctx context.Context, batch []Message) ([]string, error)
}

// Params carries the shared dependencies provider constructors need.
type Params struct {
	Resend config.ResendConfig
	Client httpclient.Client
	Logger *logger.Logger
}

// NewProvider constructs the provider selected by an organization's
// delivery config. Unknown kinds are a configuration error, never a panic.
func NewProvider(cfg *organization.DeliveryConfig, params Params) (Provider, error) {
	if cfg == nil {
		return nil, ierr.NewError("organization has no delivery provider configured").
			Mark(ierr.ErrConfigurationMissing)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case types.DeliveryProviderResend:
		return newResendProvider(params.Resend, params.Logger), nil
	case types.DeliveryProviderN8N:
		return newWebhookProvider(cfg.Webhook, params.Client, params.Logger), nil
	default:
		return nil, ierr.NewError("unknown delivery provider").
			WithHintf("Provider %q is not supported", cfg.Provider).
			Mark(ierr.ErrConfigurationMissing)
	}
}
