package types

import (
	ierr "github.com/realstatepro/billing/internal/errors"
	"github.com/samber/lo"
)

// VoucherStatus tracks a voucher through its lifecycle.
// GENERADO -> ENVIADO on successful dispatch; the administrative reset path
// moves ENVIADO back to GENERADO. No other transitions exist.
type VoucherStatus string

const (
	VoucherStatusGenerated VoucherStatus = "GENERADO"
	VoucherStatusSent      VoucherStatus = "ENVIADO"
)

func (s VoucherStatus) String() string {
	return string(s)
}

func (s VoucherStatus) Validate() error {
	allowed := []VoucherStatus{VoucherStatusGenerated, VoucherStatusSent}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid voucher status").
			WithHintf("Status must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}
