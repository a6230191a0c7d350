package types

import (
	ierr "github.com/realstatepro/billing/internal/errors"
	"github.com/samber/lo"
)

// Currency is the denomination of a contract's rent amount.
// CLP amounts are already in local currency units; UF amounts are converted
// at generation time using the daily UF value.
type Currency string

const (
	CurrencyCLP Currency = "CLP"
	CurrencyUF  Currency = "UF"
)

func (c Currency) String() string {
	return string(c)
}

func (c Currency) Validate() error {
	allowed := []Currency{CurrencyCLP, CurrencyUF}
	if !lo.Contains(allowed, c) {
		return ierr.NewError("invalid currency").
			WithHintf("Currency must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// UFMethod selects which day's UF value is used to convert a UF-denominated
// rent into CLP.
type UFMethod string

const (
	// UFMethodPeriodStart uses the UF value of the first day of the generation month
	UFMethodPeriodStart UFMethod = "inicio_mes"
	// UFMethodGenerationDay uses the UF value of the day the voucher is generated
	UFMethodGenerationDay UFMethod = "dia_generacion"
)

func (m UFMethod) String() string {
	return string(m)
}

func (m UFMethod) Validate() error {
	allowed := []UFMethod{UFMethodPeriodStart, UFMethodGenerationDay}
	if !lo.Contains(allowed, m) {
		return ierr.NewError("invalid uf calculation method").
			WithHintf("Method must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}
