package types

import "time"

// ContractFilter narrows contract selection for a generation run.
// Zero values mean "no restriction" for that field.
type ContractFilter struct {
	// Status restricts by lifecycle state
	Status ContractStatus
	// GenerationDay restricts to contracts billed on this day of month
	GenerationDay *int
	// OrganizationID restricts to one organization
	OrganizationID string
	// PropertyID restricts to one property (manual regeneration)
	PropertyID string
}

// DispatchFilter narrows voucher selection for a dispatch run.
// Zero values mean "no restriction" for that field.
type DispatchFilter struct {
	// Status restricts by voucher state
	Status VoucherStatus
	// ScheduledOn matches vouchers whose scheduled send date equals this
	// day or is null (immediate send). Nil disables the date filter.
	ScheduledOn *time.Time
	// OrganizationID restricts to one organization
	OrganizationID string
	// VoucherID restricts to one voucher (manual resend)
	VoucherID string
}
