package cli

import (
	"github.com/joho/godotenv"

	"github.com/realstatepro/billing/internal/config"
	"github.com/realstatepro/billing/internal/httpclient"
	"github.com/realstatepro/billing/internal/logger"
	"github.com/realstatepro/billing/internal/mindicador"
	"github.com/realstatepro/billing/internal/postgres"
	"github.com/realstatepro/billing/internal/repository"
	"github.com/realstatepro/billing/internal/service"
	"github.com/realstatepro/billing/internal/validator"
)

// Runtime is the hand-wired dependency set the operational CLIs share.
// The CLIs run outside the fx container: they bootstrap, run one pass and
// exit.
type Runtime struct {
	Params service.ServiceParams
	Config *config.Configuration
	Logger *logger.Logger

	db *postgres.DB
}

// Bootstrap loads configuration (including a .env file when present) and
// wires the service dependencies.
func Bootstrap() (*Runtime, error) {
	_ = godotenv.Load()

	validator.NewValidator()

	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		return nil, err
	}

	db, err := postgres.NewDB(cfg, log)
	if err != nil {
		return nil, err
	}

	client := httpclient.NewClientWithTimeout(cfg.Webhook.Timeout)
	ufClient := mindicador.NewClient(cfg.Mindicador, log)

	params := service.NewServiceParams(
		log,
		cfg,
		postgres.NewClient(db),
		repository.NewContractRepository(db, log),
		repository.NewVoucherRepository(db, log),
		repository.NewOrganizationRepository(db, log),
		mindicador.NewResolver(ufClient, log),
		client,
	)

	return &Runtime{
		Params: params,
		Config: cfg,
		Logger: log,
		db:     db,
	}, nil
}

// Close releases the runtime's connections.
func (r *Runtime) Close() {
	if r.db != nil {
		r.db.Close()
	}
}
