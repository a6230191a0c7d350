package service

import (
	"time"

	"github.com/realstatepro/billing/internal/config"
	"github.com/realstatepro/billing/internal/delivery"
	"github.com/realstatepro/billing/internal/domain/contract"
	"github.com/realstatepro/billing/internal/domain/organization"
	"github.com/realstatepro/billing/internal/domain/voucher"
	"github.com/realstatepro/billing/internal/httpclient"
	"github.com/realstatepro/billing/internal/logger"
	"github.com/realstatepro/billing/internal/mindicador"
	"github.com/realstatepro/billing/internal/postgres"
)

// ProviderFactory builds a delivery provider for an organization's config.
// Abstracted so tests can substitute fakes without standing up real
// transports.
type ProviderFactory func(cfg *organization.DeliveryConfig, params delivery.Params) (delivery.Provider, error)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	ContractRepo contract.Repository
	VoucherRepo  voucher.Repository
	OrgRepo      organization.Repository

	UFResolver      *mindicador.Resolver
	Client          httpclient.Client
	ProviderFactory ProviderFactory

	// Clock injects the run's notion of now; nil means time.Now. Generation
	// and dispatch pin a single instant per run so period, folio and filters
	// agree even across a midnight boundary.
	Clock func() time.Time
}

// NewServiceParams assembles the common service dependencies for DI
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	contractRepo contract.Repository,
	voucherRepo voucher.Repository,
	orgRepo organization.Repository,
	ufResolver *mindicador.Resolver,
	client httpclient.Client,
) ServiceParams {
	return ServiceParams{
		Logger:          logger,
		Config:          config,
		DB:              db,
		ContractRepo:    contractRepo,
		VoucherRepo:     voucherRepo,
		OrgRepo:         orgRepo,
		UFResolver:      ufResolver,
		Client:          client,
		ProviderFactory: delivery.NewProvider,
	}
}

func (p ServiceParams) now() time.Time {
	if p.Clock != nil {
		return p.Clock()
	}
	return time.Now()
}
