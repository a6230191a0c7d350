package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/realstatepro/billing/internal/temporal/models"
)

const ActivityNotifyWorkflowCompletion = "NotifyWorkflowCompletionActivity"

// notifyWorkflowCompletion posts the terminal notification with a retry
// policy independent of the calling workflow's activity options. Failures
// are logged and swallowed.
func notifyWorkflowCompletion(ctx workflow.Context, input models.WorkflowNotifyInput) {
	notifyCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second * 2,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Second * 30,
			MaximumAttempts:    5,
		},
	})

	if err := workflow.ExecuteActivity(notifyCtx, ActivityNotifyWorkflowCompletion, input).Get(notifyCtx, nil); err != nil {
		workflow.GetLogger(ctx).Warn("Workflow completion notification failed",
			"workflow_id", input.WorkflowID, "error", err)
	}
}
