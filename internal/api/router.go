package api

import (
	"github.com/gin-gonic/gin"

	"github.com/realstatepro/billing/internal/api/cron"
	v1 "github.com/realstatepro/billing/internal/api/v1"
	"github.com/realstatepro/billing/internal/rest/middleware"
)

type Handlers struct {
	Health      *v1.HealthHandler
	Voucher     *v1.VoucherHandler
	Workflow    *v1.WorkflowHandler
	VoucherCron *cron.VoucherCronHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	cronGroup := router.Group("/cron")
	registerCronRoutes(cronGroup, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	vouchers := router.Group("/vouchers")
	{
		vouchers.POST("/generate", handlers.Voucher.GenerateVouchers)
		vouchers.POST("/send", handlers.Voucher.SendVouchers)
		vouchers.POST("/reset", handlers.Voucher.ResetVouchers)
	}

	workflows := router.Group("/workflows")
	{
		workflows.POST("/onboarding", handlers.Workflow.StartOnboarding)
		workflows.POST("/vouchers/generate", handlers.Workflow.StartVoucherGeneration)
	}
}

func registerCronRoutes(router *gin.RouterGroup, handlers Handlers) {
	vouchers := router.Group("/vouchers")
	{
		vouchers.POST("/generate", handlers.VoucherCron.GenerateVouchers)
		vouchers.POST("/send", handlers.VoucherCron.SendVouchers)
	}
}
