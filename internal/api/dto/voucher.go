package dto

import (
	"github.com/shopspring/decimal"

	ierr "github.com/realstatepro/billing/internal/errors"
	"github.com/realstatepro/billing/internal/types"
)

// GenerateVouchersRequest scopes a generation run. All fields empty means
// every eligible contract whose generation day is today; PropertyID selects
// manual regeneration for one property and bypasses the day filter.
type GenerateVouchersRequest struct {
	OrganizationID string `json:"org_id,omitempty"`
	PropertyID     string `json:"propiedad_id,omitempty"`
	// Force regenerates even when a voucher already exists for the period
	// (the existing voucher is deleted first)
	Force bool `json:"force,omitempty"`
}

func (r *GenerateVouchersRequest) Validate() error {
	if r.Force && r.PropertyID == "" && r.OrganizationID == "" {
		return ierr.NewError("force requires a narrower scope").
			WithHint("Use force together with an organization or property filter").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GenerateVouchersResponse is the aggregate outcome of one generation run.
// Success is false whenever any per-item error was recorded, even when other
// vouchers were generated; the counts stay meaningful either way.
type GenerateVouchersResponse struct {
	Success   bool               `json:"success"`
	Generated int                `json:"generated"`
	Skipped   int                `json:"skipped"`
	Errors    []VoucherError     `json:"errors"`
	Vouchers  []GeneratedVoucher `json:"vouchers"`
}

// VoucherError is one per-item failure, attributed to a contract. The
// GeneralScope sentinel marks failures of shared setup steps that abort the
// whole run.
type VoucherError struct {
	ContractID string `json:"contrato_id"`
	PropertyID string `json:"propiedad_id"`
	Error      string `json:"error"`
}

// GeneralScope marks errors not attributable to a single item.
const GeneralScope = "GENERAL"

// GeneratedVoucher summarizes one voucher produced by a run.
type GeneratedVoucher struct {
	VoucherID  string          `json:"voucher_id"`
	Folio      string          `json:"folio"`
	ContractID string          `json:"contrato_id"`
	PropertyID string          `json:"propiedad_id"`
	Period     string          `json:"periodo"`
	Amount     decimal.Decimal `json:"monto_arriendo"`
	AmountCLP  decimal.Decimal `json:"monto_arriendo_clp"`
	Currency   types.Currency  `json:"moneda"`
}

// SendVouchersRequest scopes a dispatch run. VoucherID selects manual resend
// for one voucher and bypasses the scheduled-date filter; with Force it also
// bypasses the GENERADO state filter so an already-sent voucher goes out
// again.
type SendVouchersRequest struct {
	OrganizationID string `json:"org_id,omitempty"`
	VoucherID      string `json:"voucher_id,omitempty"`
	Force          bool   `json:"force,omitempty"`
}

func (r *SendVouchersRequest) Validate() error {
	if r.Force && r.VoucherID == "" {
		return ierr.NewError("force requires a voucher id").
			WithHint("Force resend applies to a single voucher").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// SendVouchersResponse is the aggregate outcome of one dispatch run.
type SendVouchersResponse struct {
	Success  bool          `json:"success"`
	Sent     int           `json:"sent"`
	Skipped  int           `json:"skipped"`
	Errors   []SendError   `json:"errors"`
	Vouchers []SentVoucher `json:"vouchers"`
}

// SendError is one per-item dispatch failure, attributed to a voucher.
type SendError struct {
	VoucherID  string `json:"voucher_id"`
	PropertyID string `json:"propiedad_id"`
	Error      string `json:"error"`
}

// SentVoucher summarizes one voucher delivered by a run.
type SentVoucher struct {
	VoucherID  string   `json:"voucher_id"`
	Folio      string   `json:"folio"`
	PropertyID string   `json:"propiedad_id"`
	Email      string   `json:"email,omitempty"`
	Methods    []string `json:"metodo_envio"`
}

// ResetVouchersResponse reports the administrative reset outcome.
type ResetVouchersResponse struct {
	Reset    int            `json:"reset"`
	Vouchers []ResetVoucher `json:"vouchers"`
}

// ResetVoucher identifies one voucher moved back to GENERADO.
type ResetVoucher struct {
	VoucherID string `json:"voucher_id"`
	Folio     string `json:"folio"`
	Period    string `json:"periodo"`
}
