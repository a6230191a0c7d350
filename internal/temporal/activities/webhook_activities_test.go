package activities

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"

	"github.com/realstatepro/billing/internal/config"
	"github.com/realstatepro/billing/internal/logger"
	"github.com/realstatepro/billing/internal/service"
	"github.com/realstatepro/billing/internal/temporal/models"
	"github.com/realstatepro/billing/internal/testutil"
)

func newNotifyEnv(notifyURL string, client *testutil.MockHTTPClient) (*testsuite.TestActivityEnvironment, *WebhookActivities) {
	cfg := config.GetDefaultConfig()
	cfg.Webhook.NotifyURL = notifyURL

	acts := NewWebhookActivities(service.ServiceParams{
		Logger: logger.GetLogger(),
		Config: cfg,
		Client: client,
	})

	ts := &testsuite.WorkflowTestSuite{}
	env := ts.NewTestActivityEnvironment()
	env.RegisterActivity(acts.NotifyWorkflowCompletionActivity)
	return env, acts
}

func TestNotifyWorkflowCompletion_Delivers(t *testing.T) {
	client := testutil.NewMockHTTPClient()
	client.RegisterResponse("https://hooks.example.com/notify", testutil.MockResponse{
		StatusCode: http.StatusOK,
	})
	env, acts := newNotifyEnv("https://hooks.example.com/notify", client)

	input := models.WorkflowNotifyInput{
		WorkflowID: "voucher-generation-2025-04",
		Workflow:   "VoucherGenerationWorkflow",
		Status:     "completed",
	}
	_, err := env.ExecuteActivity(acts.NotifyWorkflowCompletionActivity, input)
	require.NoError(t, err)

	requests := client.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPost, requests[0].Method)
	assert.Equal(t, "https://hooks.example.com/notify", requests[0].URL)
	assert.Contains(t, string(requests[0].Body), "voucher-generation-2025-04")
}

func TestNotifyWorkflowCompletion_NoURLConfigured(t *testing.T) {
	client := testutil.NewMockHTTPClient()
	env, acts := newNotifyEnv("", client)

	_, err := env.ExecuteActivity(acts.NotifyWorkflowCompletionActivity, models.WorkflowNotifyInput{
		WorkflowID: "wf_1",
	})
	require.NoError(t, err)
	assert.Empty(t, client.Requests())
}

func TestNotifyWorkflowCompletion_DeliveryFailure(t *testing.T) {
	client := testutil.NewMockHTTPClient()
	client.RegisterResponse("https://hooks.example.com/notify", testutil.MockResponse{
		StatusCode: http.StatusBadGateway,
	})
	env, acts := newNotifyEnv("https://hooks.example.com/notify", client)

	_, err := env.ExecuteActivity(acts.NotifyWorkflowCompletionActivity, models.WorkflowNotifyInput{
		WorkflowID: "wf_1",
	})
	assert.Error(t, err)
}
