package types

import (
	ierr "github.com/realstatepro/billing/internal/errors"
	"github.com/samber/lo"
)

// ContractStatus is the lifecycle state of a tenancy contract.
// Only VIGENTE contracts are eligible for voucher generation.
type ContractStatus string

const (
	ContractStatusDraft  ContractStatus = "BORRADOR"
	ContractStatusActive ContractStatus = "VIGENTE"
	ContractStatusEnded  ContractStatus = "FINALIZADO"
)

func (s ContractStatus) String() string {
	return string(s)
}

func (s ContractStatus) Validate() error {
	allowed := []ContractStatus{ContractStatusDraft, ContractStatusActive, ContractStatusEnded}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid contract status").
			WithHintf("Status must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}
