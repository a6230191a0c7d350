package temporal

import (
	"go.temporal.io/sdk/worker"

	"github.com/realstatepro/billing/internal/service"
	"github.com/realstatepro/billing/internal/temporal/activities"
	"github.com/realstatepro/billing/internal/temporal/workflows"
)

// RegisterWorkflowsAndActivities registers all workflows and activities with a Temporal worker.
func RegisterWorkflowsAndActivities(w worker.Worker, params service.ServiceParams) {
	// workflows - using function references (names will be the function names)
	w.RegisterWorkflow(workflows.UserOnboardingWorkflow)    // "UserOnboardingWorkflow"
	w.RegisterWorkflow(workflows.VoucherGenerationWorkflow) // "VoucherGenerationWorkflow"

	// activities - instantiated with their dependencies, registered under
	// the method names the workflows reference
	onboardingActivities := activities.NewOnboardingActivities(params)
	voucherActivities := activities.NewVoucherActivities(params)
	webhookActivities := activities.NewWebhookActivities(params)

	w.RegisterActivity(onboardingActivities.ValidateEmailActivity)            // "ValidateEmailActivity"
	w.RegisterActivity(onboardingActivities.CreateUserActivity)               // "CreateUserActivity"
	w.RegisterActivity(onboardingActivities.SendWelcomeEmailActivity)         // "SendWelcomeEmailActivity"
	w.RegisterActivity(onboardingActivities.TrackRegistrationActivity)        // "TrackRegistrationActivity"
	w.RegisterActivity(onboardingActivities.SendFollowUpEmailActivity)        // "SendFollowUpEmailActivity"
	w.RegisterActivity(voucherActivities.GenerateVouchersActivity)            // "GenerateVouchersActivity"
	w.RegisterActivity(webhookActivities.NotifyWorkflowCompletionActivity)    // "NotifyWorkflowCompletionActivity"

	params.Logger.Infow("temporal workflows and activities registered")
}
