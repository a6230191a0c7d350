package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/realstatepro/billing/internal/domain/tenant"
	"github.com/realstatepro/billing/internal/domain/voucher"
	ierr "github.com/realstatepro/billing/internal/errors"
	"github.com/realstatepro/billing/internal/logger"
	"github.com/realstatepro/billing/internal/postgres"
	"github.com/realstatepro/billing/internal/types"
)

const pqUniqueViolation = "23505"

type voucherRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewVoucherRepository(db *postgres.DB, logger *logger.Logger) voucher.Repository {
	return &voucherRepository{db: db, logger: logger}
}

func (r *voucherRepository) Create(ctx context.Context, v *voucher.Voucher) error {
	r.logger.Debugw("creating voucher",
		"voucher_id", v.ID, "folio", v.Folio, "period", v.Period)

	query := `
		INSERT INTO vouchers (
			id, folio, contract_id, property_id, org_id, config_version,
			period, status, generated_at, scheduled_send_date, sent_at,
			due_date, currency, uf_value, amount, amount_clp
		) VALUES (
			:id, :folio, :contract_id, :property_id, :org_id, :config_version,
			:period, :status, :generated_at, :scheduled_send_date, :sent_at,
			:due_date, :currency, :uf_value, :amount, :amount_clp
		)`
	if _, err := r.db.NamedExecContext(ctx, query, v); err != nil {
		// The (property_id, period) unique index is the concurrency guard:
		// two runs racing on the same property resolve here, not in code.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return ierr.WithError(err).
				WithHintf("A voucher already exists for property %s in period %s", v.PropertyID, v.Period).
				Mark(ierr.ErrDuplicateConflict)
		}
		return ierr.WithError(err).
			WithHint("Failed to create voucher").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *voucherRepository) Get(ctx context.Context, id string) (*voucher.Voucher, error) {
	var v voucher.Voucher
	query := `SELECT * FROM vouchers WHERE id = $1`
	err := r.db.GetQuerier(ctx).GetContext(ctx, &v, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewErrorf("voucher %s not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get voucher").
			Mark(ierr.ErrDatabase)
	}
	return &v, nil
}

func (r *voucherRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM vouchers WHERE id = $1`
	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete voucher").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ierr.NewErrorf("voucher %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *voucherRepository) ListByPropertiesAndPeriod(ctx context.Context, propertyIDs []string, period string) ([]*voucher.Voucher, error) {
	if len(propertyIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(
		`SELECT * FROM vouchers WHERE property_id IN (?) AND period = ?`,
		propertyIDs, period)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to build voucher lookup query").
			Mark(ierr.ErrDatabase)
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	var vouchers []*voucher.Voucher
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &vouchers, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list vouchers by property and period").
			Mark(ierr.ErrDatabase)
	}
	return vouchers, nil
}

// dispatchRow flattens the voucher-with-recipient join for sqlx scanning.
type dispatchRow struct {
	voucher.Voucher
	TenantName       string         `db:"tenant_name"`
	TenantEmail      sql.NullString `db:"tenant_email"`
	TenantPhone      sql.NullString `db:"tenant_phone"`
	TenantPreference []byte         `db:"tenant_contact_preference"`
}

func (r *voucherRepository) ListForDispatch(ctx context.Context, filter *types.DispatchFilter) ([]*voucher.WithRecipient, error) {
	query := `
		SELECT v.*,
			t.name AS tenant_name,
			t.email AS tenant_email,
			t.phone AS tenant_phone,
			t.contact_preference AS tenant_contact_preference
		FROM vouchers v
		JOIN contracts c ON c.id = v.contract_id
		JOIN tenants t ON t.id = c.tenant_id
		WHERE 1=1`
	args := map[string]interface{}{}

	if filter.Status != "" {
		query += ` AND v.status = :status`
		args["status"] = filter.Status
	}
	if filter.ScheduledOn != nil {
		query += ` AND (v.scheduled_send_date IS NULL OR v.scheduled_send_date = :scheduled_on)`
		args["scheduled_on"] = *filter.ScheduledOn
	}
	if filter.OrganizationID != "" {
		query += ` AND v.org_id = :org_id`
		args["org_id"] = filter.OrganizationID
	}
	if filter.VoucherID != "" {
		query += ` AND v.id = :voucher_id`
		args["voucher_id"] = filter.VoucherID
	}
	query += ` ORDER BY v.generated_at`

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list vouchers for dispatch").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var result []*voucher.WithRecipient
	for rows.Next() {
		var row dispatchRow
		if err := rows.StructScan(&row); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan dispatch row").
				Mark(ierr.ErrDatabase)
		}
		wr, err := row.toWithRecipient()
		if err != nil {
			return nil, err
		}
		result = append(result, wr)
	}
	return result, rows.Err()
}

func (r *voucherRepository) MarkSent(ctx context.Context, ids []string, sentAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	r.logger.Debugw("marking vouchers sent", "count", len(ids))

	query, args, err := sqlx.In(
		`UPDATE vouchers SET status = ?, sent_at = ? WHERE id IN (?)`,
		types.VoucherStatusSent, sentAt, ids)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to build mark-sent query").
			Mark(ierr.ErrDatabase)
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	if _, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, args...); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to mark vouchers sent").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *voucherRepository) ListSent(ctx context.Context) ([]*voucher.Voucher, error) {
	var vouchers []*voucher.Voucher
	query := `SELECT * FROM vouchers WHERE status != $1 ORDER BY generated_at`
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &vouchers, query, types.VoucherStatusGenerated)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list sent vouchers").
			Mark(ierr.ErrDatabase)
	}
	return vouchers, nil
}

func (r *voucherRepository) ResetToGenerated(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(
		`UPDATE vouchers SET status = ?, sent_at = NULL WHERE id IN (?)`,
		types.VoucherStatusGenerated, ids)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to build reset query").
			Mark(ierr.ErrDatabase)
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	if _, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, args...); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to reset vouchers").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (row *dispatchRow) toWithRecipient() (*voucher.WithRecipient, error) {
	wr := &voucher.WithRecipient{Voucher: row.Voucher}
	wr.Recipient.Name = row.TenantName
	if row.TenantEmail.Valid {
		wr.Recipient.Email = &row.TenantEmail.String
	}
	if row.TenantPhone.Valid {
		wr.Recipient.Phone = &row.TenantPhone.String
	}
	if len(row.TenantPreference) > 0 {
		var pref tenant.ContactPreference
		if err := pref.Scan(row.TenantPreference); err != nil {
			return nil, err
		}
		wr.Recipient.ContactPreference = &pref
	}
	return wr, nil
}
