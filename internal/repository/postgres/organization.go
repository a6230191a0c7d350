package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/realstatepro/billing/internal/domain/organization"
	ierr "github.com/realstatepro/billing/internal/errors"
	"github.com/realstatepro/billing/internal/logger"
	"github.com/realstatepro/billing/internal/postgres"
)

type organizationRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewOrganizationRepository(db *postgres.DB, logger *logger.Logger) organization.Repository {
	return &organizationRepository{db: db, logger: logger}
}

func (r *organizationRepository) Create(ctx context.Context, org *organization.Organization) error {
	if org.DeliveryConfig != nil {
		if err := org.DeliveryConfig.Validate(); err != nil {
			return err
		}
	}

	r.logger.Debugw("creating organization", "org_id", org.ID)

	query := `
		INSERT INTO organizations (
			id, name, delivery_config, created_at, updated_at
		) VALUES (
			:id, :name, :delivery_config, :created_at, :updated_at
		)`
	if _, err := r.db.NamedExecContext(ctx, query, org); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create organization").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *organizationRepository) Get(ctx context.Context, id string) (*organization.Organization, error) {
	var org organization.Organization
	query := `SELECT * FROM organizations WHERE id = $1`
	err := r.db.GetQuerier(ctx).GetContext(ctx, &org, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewErrorf("organization %s not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get organization").
			Mark(ierr.ErrDatabase)
	}
	return &org, nil
}

func (r *organizationRepository) ListByIDs(ctx context.Context, ids []string) ([]*organization.Organization, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM organizations WHERE id IN (?)`, ids)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to build organization lookup query").
			Mark(ierr.ErrDatabase)
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	var orgs []*organization.Organization
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &orgs, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list organizations").
			Mark(ierr.ErrDatabase)
	}
	return orgs, nil
}
