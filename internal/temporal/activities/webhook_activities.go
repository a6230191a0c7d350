package activities

import (
	"context"
	"encoding/json"
	"net/http"

	"go.temporal.io/sdk/activity"

	ierr "github.com/realstatepro/billing/internal/errors"
	"github.com/realstatepro/billing/internal/httpclient"
	"github.com/realstatepro/billing/internal/service"
	"github.com/realstatepro/billing/internal/temporal/models"
)

// WebhookActivities contains the workflow notification activities
type WebhookActivities struct {
	params service.ServiceParams
}

// NewWebhookActivities creates a new instance of WebhookActivities
func NewWebhookActivities(params service.ServiceParams) *WebhookActivities {
	return &WebhookActivities{params: params}
}

// NotifyWorkflowCompletionActivity posts the terminal workflow status to the
// configured callback URL. A missing URL disables the notification.
func (a *WebhookActivities) NotifyWorkflowCompletionActivity(ctx context.Context, input models.WorkflowNotifyInput) error {
	logger := activity.GetLogger(ctx)

	url := a.params.Config.Webhook.NotifyURL
	if url == "" {
		logger.Info("No notify URL configured, skipping workflow notification",
			"workflow_id", input.WorkflowID)
		return nil
	}

	body, err := json.Marshal(input)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode workflow notification").
			Mark(ierr.ErrSystem)
	}

	_, err = a.params.Client.Send(ctx, &httpclient.Request{
		Method:  http.MethodPost,
		URL:     url,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    body,
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to deliver workflow notification").
			WithReportableDetails(map[string]interface{}{
				"workflow_id": input.WorkflowID,
				"workflow":    input.Workflow,
			}).
			Mark(ierr.ErrHTTPClient)
	}

	logger.Info("Workflow completion notification delivered",
		"workflow_id", input.WorkflowID, "status", input.Status)
	return nil
}
