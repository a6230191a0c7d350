package models

import "time"

// VoucherGenerationWorkflowInput scopes a durable generation run; the fields
// mirror the generation request so the activity can pass them through.
type VoucherGenerationWorkflowInput struct {
	OrganizationID string `json:"org_id,omitempty"`
	PropertyID     string `json:"propiedad_id,omitempty"`
	Force          bool   `json:"force,omitempty"`
}

// VoucherGenerationWorkflowResult summarizes the run for workflow callers
type VoucherGenerationWorkflowResult struct {
	Success     bool      `json:"success"`
	Generated   int       `json:"generated"`
	Skipped     int       `json:"skipped"`
	ErrorCount  int       `json:"error_count"`
	CompletedAt time.Time `json:"completed_at"`
}
