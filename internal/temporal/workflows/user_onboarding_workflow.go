package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/realstatepro/billing/internal/temporal/models"
)

const (
	// Workflow name - must match the function name
	WorkflowUserOnboarding = "UserOnboardingWorkflow"
	// Activity names - must match the registered method names
	ActivityValidateEmail     = "ValidateEmailActivity"
	ActivityCreateUser        = "CreateUserActivity"
	ActivitySendWelcomeEmail  = "SendWelcomeEmailActivity"
	ActivityTrackRegistration = "TrackRegistrationActivity"
	ActivitySendFollowUpEmail = "SendFollowUpEmailActivity"
)

// UserOnboardingWorkflow walks a new user through signup: email validation,
// account creation, welcome email, registration tracking, then a durable
// sleep before the follow-up email. The workflow survives process restarts
// between any two steps.
func UserOnboardingWorkflow(ctx workflow.Context, input models.UserOnboardingWorkflowInput) (*models.UserOnboardingWorkflowResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	logger := workflow.GetLogger(ctx)
	logger.Info("Starting user onboarding workflow", "email", input.Email)

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

	result := &models.UserOnboardingWorkflowResult{
		Email:  input.Email,
		Status: "processing",
	}

	if err := workflow.ExecuteActivity(ctx, ActivityValidateEmail, models.ValidateEmailActivityInput{
		Email: input.Email,
	}).Get(ctx, nil); err != nil {
		return finishOnboarding(ctx, result, err)
	}
	result.StepsExecuted++

	var created models.CreateUserActivityResult
	if err := workflow.ExecuteActivity(ctx, ActivityCreateUser, models.CreateUserActivityInput{
		Email: input.Email,
		Name:  input.Name,
	}).Get(ctx, &created); err != nil {
		return finishOnboarding(ctx, result, err)
	}
	result.UserID = created.UserID
	result.StepsExecuted++

	if err := workflow.ExecuteActivity(ctx, ActivitySendWelcomeEmail, models.SendEmailActivityInput{
		UserID: created.UserID,
		Email:  input.Email,
		Name:   input.Name,
	}).Get(ctx, nil); err != nil {
		return finishOnboarding(ctx, result, err)
	}
	result.StepsExecuted++

	if err := workflow.ExecuteActivity(ctx, ActivityTrackRegistration, models.TrackRegistrationActivityInput{
		UserID: created.UserID,
		Email:  input.Email,
	}).Get(ctx, nil); err != nil {
		return finishOnboarding(ctx, result, err)
	}
	result.StepsExecuted++

	delay := input.ResolvedFollowUpDelay()
	logger.Info("Onboarding sleeping until follow-up", "user_id", created.UserID, "delay", delay)
	if err := workflow.Sleep(ctx, delay); err != nil {
		return finishOnboarding(ctx, result, err)
	}

	if err := workflow.ExecuteActivity(ctx, ActivitySendFollowUpEmail, models.SendEmailActivityInput{
		UserID: created.UserID,
		Email:  input.Email,
		Name:   input.Name,
	}).Get(ctx, nil); err != nil {
		return finishOnboarding(ctx, result, err)
	}
	result.StepsExecuted++

	result.Status = "completed"
	return finishOnboarding(ctx, result, nil)
}

// finishOnboarding stamps the result and fires the completion notification.
// The notification runs with its own retry policy and never changes the
// workflow outcome.
func finishOnboarding(ctx workflow.Context, result *models.UserOnboardingWorkflowResult, cause error) (*models.UserOnboardingWorkflowResult, error) {
	if cause != nil {
		result.Status = "failed"
	}
	result.CompletedAt = workflow.Now(ctx)

	notifyWorkflowCompletion(ctx, models.WorkflowNotifyInput{
		WorkflowID: workflow.GetInfo(ctx).WorkflowExecution.ID,
		Workflow:   WorkflowUserOnboarding,
		Status:     result.Status,
		Payload: map[string]interface{}{
			"user_id":        result.UserID,
			"email":          result.Email,
			"steps_executed": result.StepsExecuted,
		},
	})

	if cause != nil {
		return result, fmt.Errorf("user onboarding failed after %d steps: %w", result.StepsExecuted, cause)
	}
	return result, nil
}
