package voucher

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/realstatepro/billing/internal/domain/tenant"
	"github.com/realstatepro/billing/internal/types"
)

// Voucher is a billing notice for one property covering one calendar period.
// At most one voucher exists per (property, period); regeneration deletes the
// old record before inserting a replacement.
type Voucher struct {
	// ID is the unique identifier for the voucher
	ID string `db:"id" json:"id"`

	// Folio is the human-readable identifier, deterministic from
	// (property, period)
	Folio string `db:"folio" json:"folio"`

	// ContractID is the contract the voucher was generated from
	ContractID string `db:"contract_id" json:"contract_id"`

	// PropertyID is the billed property
	PropertyID string `db:"property_id" json:"property_id"`

	// OrganizationID is the administering organization
	OrganizationID string `db:"org_id" json:"org_id"`

	// ConfigVersion is the billing config version used for the amounts
	ConfigVersion int `db:"config_version" json:"config_version"`

	// Period is the billing cycle the voucher covers, YYYY-MM
	Period string `db:"period" json:"period"`

	// Status is GENERADO until dispatched, then ENVIADO
	Status types.VoucherStatus `db:"status" json:"status"`

	// GeneratedAt is when the voucher was created
	GeneratedAt time.Time `db:"generated_at" json:"generated_at"`

	// ScheduledSendDate is when the voucher should be dispatched; nil means
	// the same day it was generated
	ScheduledSendDate *time.Time `db:"scheduled_send_date" json:"scheduled_send_date"`

	// SentAt is the actual dispatch time; nil until sent
	SentAt *time.Time `db:"sent_at" json:"sent_at"`

	// DueDate is the payment deadline within the period month
	DueDate time.Time `db:"due_date" json:"due_date"`

	// Currency is the contract's denomination at generation time
	Currency types.Currency `db:"currency" json:"currency"`

	// UFValue is the index value used for conversion; nil for CLP contracts
	UFValue *decimal.Decimal `db:"uf_value" json:"uf_value"`

	// Amount is the rent amount in Currency units
	Amount decimal.Decimal `db:"amount" json:"amount"`

	// AmountCLP is the amount converted to local currency units
	AmountCLP decimal.Decimal `db:"amount_clp" json:"amount_clp"`
}

// WithRecipient is the dispatch read model: a voucher joined with its
// tenant's contact data through the contract relation.
type WithRecipient struct {
	Voucher
	Recipient tenant.Tenant `json:"recipient"`
}
