package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/realstatepro/billing/internal/api"
	"github.com/realstatepro/billing/internal/api/cron"
	v1 "github.com/realstatepro/billing/internal/api/v1"
	"github.com/realstatepro/billing/internal/config"
	"github.com/realstatepro/billing/internal/httpclient"
	"github.com/realstatepro/billing/internal/logger"
	"github.com/realstatepro/billing/internal/mindicador"
	"github.com/realstatepro/billing/internal/postgres"
	"github.com/realstatepro/billing/internal/repository"
	"github.com/realstatepro/billing/internal/service"
	"github.com/realstatepro/billing/internal/temporal"
	"github.com/realstatepro/billing/internal/types"
	"github.com/realstatepro/billing/internal/validator"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Postgres
			postgres.NewDB,
			postgres.NewClient,

			// HTTP Client
			httpclient.NewDefaultClient,

			// Currency index resolver
			provideMindicadorClient,
			provideUFResolver,

			// Repositories
			repository.NewContractRepository,
			repository.NewVoucherRepository,
			repository.NewOrganizationRepository,

			// Temporal
			provideTemporalConfig,
			provideTemporalClient,
			provideTemporalService,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewVoucherGenerationService,
			service.NewVoucherDispatchService,
			service.NewVoucherResetService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	generationService service.VoucherGenerationService,
	dispatchService service.VoucherDispatchService,
	resetService service.VoucherResetService,
	temporalService *temporal.Service,
) api.Handlers {
	return api.Handlers{
		Health:      v1.NewHealthHandler(),
		Voucher:     v1.NewVoucherHandler(generationService, dispatchService, resetService, logger),
		Workflow:    v1.NewWorkflowHandler(temporalService, logger),
		VoucherCron: cron.NewVoucherCronHandler(generationService, dispatchService, logger),
	}
}

func provideRouter(handlers api.Handlers) *gin.Engine {
	return api.NewRouter(handlers)
}

func provideMindicadorClient(cfg *config.Configuration, log *logger.Logger) mindicador.Client {
	return mindicador.NewClient(cfg.Mindicador, log)
}

func provideUFResolver(client mindicador.Client, log *logger.Logger) *mindicador.Resolver {
	return mindicador.NewResolver(client, log)
}

func provideTemporalConfig(cfg *config.Configuration) *config.TemporalConfig {
	return &cfg.Temporal
}

func provideTemporalClient(cfg *config.TemporalConfig, log *logger.Logger) (*temporal.TemporalClient, error) {
	return temporal.NewTemporalClient(cfg, log)
}

func provideTemporalService(temporalClient *temporal.TemporalClient, cfg *config.TemporalConfig, log *logger.Logger) (*temporal.Service, error) {
	return temporal.NewService(temporalClient, cfg, log)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	temporalClient *temporal.TemporalClient,
	params service.ServiceParams,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal:
		startAPIServer(lc, r, cfg, log)
		startTemporalWorker(lc, temporalClient, cfg, params)
	case types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	case types.ModeWorker:
		startTemporalWorker(lc, temporalClient, cfg, params)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting API server...")
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}

func startTemporalWorker(
	lc fx.Lifecycle,
	temporalClient *temporal.TemporalClient,
	cfg *config.Configuration,
	params service.ServiceParams,
) {
	worker := temporal.NewWorker(temporalClient, cfg.Temporal, params)
	worker.RegisterWithLifecycle(lc)
}
