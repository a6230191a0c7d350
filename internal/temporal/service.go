package temporal

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/client"

	"github.com/realstatepro/billing/internal/config"
	"github.com/realstatepro/billing/internal/logger"
	"github.com/realstatepro/billing/internal/temporal/models"
	"github.com/realstatepro/billing/internal/temporal/workflows"
	"github.com/realstatepro/billing/internal/types"
)

// Service handles Temporal workflow operations
type Service struct {
	client *TemporalClient
	log    *logger.Logger
	cfg    *config.TemporalConfig
}

// NewService creates a new Temporal service
func NewService(client *TemporalClient, cfg *config.TemporalConfig, log *logger.Logger) (*Service, error) {
	return &Service{
		client: client,
		log:    log,
		cfg:    cfg,
	}, nil
}

// WorkflowRunHandle identifies a started workflow instance
type WorkflowRunHandle struct {
	WorkflowID string `json:"workflow_id"`
	RunID      string `json:"run_id"`
}

// StartUserOnboardingWorkflow starts a user onboarding workflow instance
func (s *Service) StartUserOnboardingWorkflow(ctx context.Context, input models.UserOnboardingWorkflowInput) (*WorkflowRunHandle, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	workflowID := fmt.Sprintf("onboarding-%s", types.GenerateUUID())
	we, err := s.client.Client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: s.cfg.TaskQueue,
	}, workflows.WorkflowUserOnboarding, input)
	if err != nil {
		s.log.Errorw("failed to start onboarding workflow", "error", err)
		return nil, err
	}

	s.log.Infow("started onboarding workflow",
		"workflow_id", workflowID, "run_id", we.GetRunID())
	return &WorkflowRunHandle{WorkflowID: workflowID, RunID: we.GetRunID()}, nil
}

// StartVoucherGenerationWorkflow starts a durable voucher generation run.
// The workflow id derives from the scope so concurrent identical triggers
// collapse onto one running instance.
func (s *Service) StartVoucherGenerationWorkflow(ctx context.Context, input models.VoucherGenerationWorkflowInput) (*WorkflowRunHandle, error) {
	scope := input.OrganizationID
	if input.PropertyID != "" {
		scope = input.PropertyID
	}
	if scope == "" {
		scope = "all"
	}
	workflowID := fmt.Sprintf("voucher-generation-%s", scope)

	we, err := s.client.Client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: s.cfg.TaskQueue,
	}, workflows.WorkflowVoucherGeneration, input)
	if err != nil {
		s.log.Errorw("failed to start voucher generation workflow", "error", err)
		return nil, err
	}

	s.log.Infow("started voucher generation workflow",
		"workflow_id", workflowID, "run_id", we.GetRunID())
	return &WorkflowRunHandle{WorkflowID: workflowID, RunID: we.GetRunID()}, nil
}

// Close closes the temporal client
func (s *Service) Close() {
	if s.client != nil {
		s.client.Client.Close()
	}
}
