package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ierr "github.com/realstatepro/billing/internal/errors"
	"github.com/realstatepro/billing/internal/logger"
	"github.com/realstatepro/billing/internal/temporal"
	"github.com/realstatepro/billing/internal/temporal/models"
)

type WorkflowHandler struct {
	temporal *temporal.Service
	log      *logger.Logger
}

func NewWorkflowHandler(temporalService *temporal.Service, log *logger.Logger) *WorkflowHandler {
	return &WorkflowHandler{temporal: temporalService, log: log}
}

// StartOnboarding godoc
// @Summary Start a user onboarding workflow
// @Tags workflows
// @Accept json
// @Produce json
// @Param request body models.UserOnboardingWorkflowInput true "Onboarding input"
// @Success 202 {object} temporal.WorkflowRunHandle
// @Router /workflows/onboarding [post]
func (h *WorkflowHandler) StartOnboarding(c *gin.Context) {
	ctx := c.Request.Context()
	var input models.UserOnboardingWorkflowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	handle, err := h.temporal.StartUserOnboardingWorkflow(ctx, input)
	if err != nil {
		h.log.Error("Failed to start onboarding workflow", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusAccepted, handle)
}

// StartVoucherGeneration godoc
// @Summary Start a durable voucher generation run
// @Tags workflows
// @Accept json
// @Produce json
// @Param request body models.VoucherGenerationWorkflowInput true "Generation scope"
// @Success 202 {object} temporal.WorkflowRunHandle
// @Router /workflows/vouchers/generate [post]
func (h *WorkflowHandler) StartVoucherGeneration(c *gin.Context) {
	ctx := c.Request.Context()
	var input models.VoucherGenerationWorkflowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	handle, err := h.temporal.StartVoucherGenerationWorkflow(ctx, input)
	if err != nil {
		h.log.Error("Failed to start voucher generation workflow", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusAccepted, handle)
}
