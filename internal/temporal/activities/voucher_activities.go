package activities

import (
	"context"

	"go.temporal.io/sdk/activity"

	"github.com/realstatepro/billing/internal/api/dto"
	"github.com/realstatepro/billing/internal/service"
	"github.com/realstatepro/billing/internal/temporal/models"
)

// VoucherActivities contains the voucher pipeline Temporal activities
type VoucherActivities struct {
	generation service.VoucherGenerationService
}

// NewVoucherActivities creates a new instance of VoucherActivities
func NewVoucherActivities(params service.ServiceParams) *VoucherActivities {
	return &VoucherActivities{
		generation: service.NewVoucherGenerationService(params),
	}
}

// GenerateVouchersActivity runs one generation pass and summarizes it for
// the workflow. Per-item errors are part of the summary, not activity
// failures; only shared-setup failures surface as retryable errors.
func (a *VoucherActivities) GenerateVouchersActivity(ctx context.Context, input models.VoucherGenerationWorkflowInput) (*models.VoucherGenerationWorkflowResult, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Starting GenerateVouchersActivity",
		"org_id", input.OrganizationID, "property_id", input.PropertyID, "force", input.Force)

	resp, err := a.generation.GenerateVouchers(ctx, &dto.GenerateVouchersRequest{
		OrganizationID: input.OrganizationID,
		PropertyID:     input.PropertyID,
		Force:          input.Force,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Generation pass finished",
		"generated", resp.Generated, "skipped", resp.Skipped, "errors", len(resp.Errors))

	return &models.VoucherGenerationWorkflowResult{
		Success:    resp.Success,
		Generated:  resp.Generated,
		Skipped:    resp.Skipped,
		ErrorCount: len(resp.Errors),
	}, nil
}
