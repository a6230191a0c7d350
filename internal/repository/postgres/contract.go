package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/realstatepro/billing/internal/domain/contract"
	ierr "github.com/realstatepro/billing/internal/errors"
	"github.com/realstatepro/billing/internal/logger"
	"github.com/realstatepro/billing/internal/postgres"
	"github.com/realstatepro/billing/internal/types"
)

type contractRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewContractRepository(db *postgres.DB, logger *logger.Logger) contract.Repository {
	return &contractRepository{db: db, logger: logger}
}

func (r *contractRepository) Create(ctx context.Context, c *contract.Contract) error {
	if err := c.Validate(); err != nil {
		return err
	}

	r.logger.Debugw("creating contract", "contract_id", c.ID, "property_id", c.PropertyID)

	query := `
		INSERT INTO contracts (
			id, org_id, property_id, tenant_id, generation_day, send_day,
			payment_due_day, status, created_at, updated_at
		) VALUES (
			:id, :org_id, :property_id, :tenant_id, :generation_day, :send_day,
			:payment_due_day, :status, :created_at, :updated_at
		)`
	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create contract").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *contractRepository) Get(ctx context.Context, id string) (*contract.Contract, error) {
	var c contract.Contract
	query := `SELECT * FROM contracts WHERE id = $1`
	err := r.db.GetQuerier(ctx).GetContext(ctx, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewErrorf("contract %s not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get contract").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *contractRepository) List(ctx context.Context, filter *types.ContractFilter) ([]*contract.Contract, error) {
	query := `SELECT * FROM contracts WHERE 1=1`
	args := map[string]interface{}{}

	if filter.Status != "" {
		query += ` AND status = :status`
		args["status"] = filter.Status
	}
	if filter.GenerationDay != nil {
		query += ` AND generation_day = :generation_day`
		args["generation_day"] = *filter.GenerationDay
	}
	if filter.OrganizationID != "" {
		query += ` AND org_id = :org_id`
		args["org_id"] = filter.OrganizationID
	}
	if filter.PropertyID != "" {
		query += ` AND property_id = :property_id`
		args["property_id"] = filter.PropertyID
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list contracts").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var contracts []*contract.Contract
	for rows.Next() {
		var c contract.Contract
		if err := rows.StructScan(&c); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan contract").
				Mark(ierr.ErrDatabase)
		}
		contracts = append(contracts, &c)
	}
	return contracts, rows.Err()
}

func (r *contractRepository) CreateBillingConfig(ctx context.Context, cfg *contract.BillingConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.logger.Debugw("creating billing config",
		"contract_id", cfg.ContractID, "version", cfg.Version)

	query := `
		INSERT INTO billing_configs (
			id, contract_id, version, currency, amount, uf_method, created_at
		) VALUES (
			:id, :contract_id, :version, :currency, :amount, :uf_method, :created_at
		)`
	if _, err := r.db.NamedExecContext(ctx, query, cfg); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create billing config").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *contractRepository) GetLatestBillingConfig(ctx context.Context, contractID string) (*contract.BillingConfig, error) {
	var cfg contract.BillingConfig
	query := `
		SELECT * FROM billing_configs
		WHERE contract_id = $1
		ORDER BY version DESC
		LIMIT 1`
	err := r.db.GetQuerier(ctx).GetContext(ctx, &cfg, query, contractID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewErrorf("contract %s has no billing config", contractID).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get billing config").
			Mark(ierr.ErrDatabase)
	}
	return &cfg, nil
}
