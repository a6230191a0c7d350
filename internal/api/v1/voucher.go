package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/realstatepro/billing/internal/api/dto"
	ierr "github.com/realstatepro/billing/internal/errors"
	"github.com/realstatepro/billing/internal/logger"
	"github.com/realstatepro/billing/internal/service"
)

type VoucherHandler struct {
	generation service.VoucherGenerationService
	dispatch   service.VoucherDispatchService
	reset      service.VoucherResetService
	log        *logger.Logger
}

func NewVoucherHandler(
	generation service.VoucherGenerationService,
	dispatch service.VoucherDispatchService,
	reset service.VoucherResetService,
	log *logger.Logger,
) *VoucherHandler {
	return &VoucherHandler{
		generation: generation,
		dispatch:   dispatch,
		reset:      reset,
		log:        log,
	}
}

// GenerateVouchers godoc
// @Summary Generate vouchers
// @Description Generate the next period's vouchers for eligible contracts
// @Tags vouchers
// @Accept json
// @Produce json
// @Param request body dto.GenerateVouchersRequest true "Generation scope"
// @Success 200 {object} dto.GenerateVouchersResponse
// @Router /vouchers/generate [post]
func (h *VoucherHandler) GenerateVouchers(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.GenerateVouchersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.generation.GenerateVouchers(ctx, &req)
	if err != nil {
		h.log.Error("Failed to generate vouchers", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SendVouchers godoc
// @Summary Send vouchers
// @Description Dispatch due vouchers through each organization's provider
// @Tags vouchers
// @Accept json
// @Produce json
// @Param request body dto.SendVouchersRequest true "Dispatch scope"
// @Success 200 {object} dto.SendVouchersResponse
// @Router /vouchers/send [post]
func (h *VoucherHandler) SendVouchers(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.SendVouchersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.dispatch.SendVouchers(ctx, &req)
	if err != nil {
		h.log.Error("Failed to send vouchers", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ResetVouchers godoc
// @Summary Reset sent vouchers
// @Description Move every sent voucher back to the generated state
// @Tags vouchers
// @Produce json
// @Success 200 {object} dto.ResetVouchersResponse
// @Router /vouchers/reset [post]
func (h *VoucherHandler) ResetVouchers(c *gin.Context) {
	ctx := c.Request.Context()

	resp, err := h.reset.ResetVouchers(ctx)
	if err != nil {
		h.log.Error("Failed to reset vouchers", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
