package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/realstatepro/billing/internal/temporal/models"
)

const (
	WorkflowVoucherGeneration = "VoucherGenerationWorkflow"
	ActivityGenerateVouchers  = "GenerateVouchersActivity"
)

// VoucherGenerationWorkflow runs one generation pass under the durable
// execution contract: if the process dies mid-run the activity is retried
// from the top, and duplicate handling inside the service makes the retry
// safe.
func VoucherGenerationWorkflow(ctx workflow.Context, input models.VoucherGenerationWorkflowInput) (*models.VoucherGenerationWorkflowResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting voucher generation workflow",
		"org_id", input.OrganizationID, "property_id", input.PropertyID, "force", input.Force)

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute * 10,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second * 5,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute * 2,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var result models.VoucherGenerationWorkflowResult
	err := workflow.ExecuteActivity(ctx, ActivityGenerateVouchers, input).Get(ctx, &result)
	if err != nil {
		result.Success = false
	}
	result.CompletedAt = workflow.Now(ctx)

	status := "completed"
	if err != nil || !result.Success {
		status = "failed"
	}
	notifyWorkflowCompletion(ctx, models.WorkflowNotifyInput{
		WorkflowID: workflow.GetInfo(ctx).WorkflowExecution.ID,
		Workflow:   WorkflowVoucherGeneration,
		Status:     status,
		Payload: map[string]interface{}{
			"generated":   result.Generated,
			"skipped":     result.Skipped,
			"error_count": result.ErrorCount,
		},
	})

	if err != nil {
		return &result, err
	}
	return &result, nil
}
