package contract

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/realstatepro/billing/internal/errors"
	"github.com/realstatepro/billing/internal/types"
)

// Contract represents a tenancy agreement between an organization and a
// tenant for one property. Billing terms live in versioned BillingConfig
// records; the contract itself only carries the scheduling days and its
// lifecycle status.
type Contract struct {
	// ID is the unique identifier for the contract
	ID string `db:"id" json:"id"`

	// OrganizationID is the organization that administers the property
	OrganizationID string `db:"org_id" json:"org_id"`

	// PropertyID is the rented property
	PropertyID string `db:"property_id" json:"property_id"`

	// TenantID is the rent-paying occupant; dispatch resolves the
	// recipient's contact data through this relation
	TenantID string `db:"tenant_id" json:"tenant_id"`

	// GenerationDay is the day of month (1-31) vouchers are generated
	GenerationDay int `db:"generation_day" json:"generation_day"`

	// SendDay is the day of month the voucher is sent; nil means it is
	// sent the same day it is generated
	SendDay *int `db:"send_day" json:"send_day"`

	// PaymentDueDay is the day of month, within the billing period, the
	// payment is due
	PaymentDueDay int `db:"payment_due_day" json:"payment_due_day"`

	// Status is the contract lifecycle state; only VIGENTE contracts are
	// billed
	Status types.ContractStatus `db:"status" json:"status"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func (c *Contract) Validate() error {
	if err := c.Status.Validate(); err != nil {
		return err
	}
	if c.GenerationDay < 1 || c.GenerationDay > 31 {
		return ierr.NewError("generation day out of range").
			WithHint("Generation day must be between 1 and 31").
			Mark(ierr.ErrValidation)
	}
	if c.SendDay != nil && (*c.SendDay < 1 || *c.SendDay > 31) {
		return ierr.NewError("send day out of range").
			WithHint("Send day must be between 1 and 31").
			Mark(ierr.ErrValidation)
	}
	if c.PaymentDueDay < 1 || c.PaymentDueDay > 31 {
		return ierr.NewError("payment due day out of range").
			WithHint("Payment due day must be between 1 and 31").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BillingConfig is a versioned, append-only snapshot of a contract's billing
// terms. Only the highest version is ever used for generation; older
// versions are kept for audit and are never mutated.
type BillingConfig struct {
	// ID is the unique identifier for the config version
	ID string `db:"id" json:"id"`

	// ContractID is the contract this config belongs to
	ContractID string `db:"contract_id" json:"contract_id"`

	// Version is the monotonically increasing config version
	Version int `db:"version" json:"version"`

	// Currency is the denomination of the rent amount
	Currency types.Currency `db:"currency" json:"currency"`

	// Amount is the rent amount in Currency units
	Amount decimal.Decimal `db:"amount" json:"amount"`

	// UFMethod selects which day's UF value converts the amount; nil
	// defaults to the generation-day value
	UFMethod *types.UFMethod `db:"uf_method" json:"uf_method"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ResolvedUFMethod returns the configured UF method, defaulting to the
// generation-day value when none was recorded.
func (c *BillingConfig) ResolvedUFMethod() types.UFMethod {
	if c.UFMethod == nil {
		return types.UFMethodGenerationDay
	}
	return *c.UFMethod
}

func (c *BillingConfig) Validate() error {
	if err := c.Currency.Validate(); err != nil {
		return err
	}
	if c.UFMethod != nil {
		if err := c.UFMethod.Validate(); err != nil {
			return err
		}
	}
	if c.Amount.IsNegative() {
		return ierr.NewError("amount cannot be negative").
			WithHint("Rent amount must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}
