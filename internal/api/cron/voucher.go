package cron

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/realstatepro/billing/internal/api/dto"
	"github.com/realstatepro/billing/internal/logger"
	"github.com/realstatepro/billing/internal/service"
)

// VoucherCronHandler exposes the scheduled entrypoints: the external
// scheduler hits these daily and the scope filters inside the services do
// the rest.
type VoucherCronHandler struct {
	generation service.VoucherGenerationService
	dispatch   service.VoucherDispatchService
	log        *logger.Logger
}

func NewVoucherCronHandler(
	generation service.VoucherGenerationService,
	dispatch service.VoucherDispatchService,
	log *logger.Logger,
) *VoucherCronHandler {
	return &VoucherCronHandler{
		generation: generation,
		dispatch:   dispatch,
		log:        log,
	}
}

// GenerateVouchers runs the daily generation pass for every contract whose
// generation day is today.
func (h *VoucherCronHandler) GenerateVouchers(c *gin.Context) {
	ctx := c.Request.Context()
	h.log.Infow("cron voucher generation triggered")

	resp, err := h.generation.GenerateVouchers(ctx, &dto.GenerateVouchersRequest{})
	if err != nil {
		h.log.Error("Cron voucher generation failed", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SendVouchers runs the daily dispatch pass for every voucher due today.
func (h *VoucherCronHandler) SendVouchers(c *gin.Context) {
	ctx := c.Request.Context()
	h.log.Infow("cron voucher dispatch triggered")

	resp, err := h.dispatch.SendVouchers(ctx, &dto.SendVouchersRequest{})
	if err != nil {
		h.log.Error("Cron voucher dispatch failed", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
