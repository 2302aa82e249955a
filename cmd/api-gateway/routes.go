package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-api/internal/handler"
	internalmiddleware "github.com/noah-isme/scolarite-api/internal/middleware"
	"github.com/noah-isme/scolarite-api/internal/models"
)

type routeDeps struct {
	logger       *zap.Logger
	tokens       internalmiddleware.TokenValidator
	balances     *handler.BalanceHandler
	dashboard    *handler.DashboardHandler
	payments     *handler.PaymentHandler
	inscriptions *handler.InscriptionHandler
	fees         *handler.FeeHandler
	programs     *handler.ProgramHandler
}

func registerRoutes(api *gin.RouterGroup, deps routeDeps) {
	const (
		admin      = models.RoleAdmin
		accountant = models.RoleAccountant
		censor     = models.RoleCensor
		secretary  = models.RoleSecretary
		self       = internalmiddleware.Self
	)
	audit := func(action, resource string) gin.HandlerFunc {
		return internalmiddleware.Audit(deps.logger, action, resource)
	}
	roles := internalmiddleware.RequireRoles

	secured := api.Group("")
	secured.Use(internalmiddleware.JWT(deps.tokens))

	secured.GET("/students/:id/balance", roles(accountant, censor, secretary, self), deps.balances.Get)
	secured.GET("/students/:id/payments", roles(accountant, secretary, self), deps.payments.ListByStudent)
	secured.GET("/balances", roles(accountant, censor), deps.balances.List)
	secured.GET("/dashboard/finance", roles(accountant), deps.dashboard.Finance)

	payments := secured.Group("/payments")
	payments.POST("", roles(accountant, secretary), audit("CREATE", "payment"), deps.payments.Create)
	payments.GET("/:id", roles(accountant, secretary), deps.payments.Get)
	payments.PATCH("/:id/status", roles(accountant), audit("UPDATE_STATUS", "payment"), deps.payments.UpdateStatus)

	inscriptions := secured.Group("/inscriptions")
	inscriptions.POST("", roles(secretary), audit("CREATE", "inscription"), deps.inscriptions.Create)
	inscriptions.GET("", roles(secretary, accountant), deps.inscriptions.List)
	inscriptions.GET("/:id", roles(secretary, accountant), deps.inscriptions.Get)
	inscriptions.PUT("/:id/student", roles(secretary), audit("LINK_STUDENT", "inscription"), deps.inscriptions.LinkStudent)

	fees := secured.Group("/fees")
	fees.GET("/resolve", roles(accountant), deps.fees.Resolve)
	fees.PUT("/configurations/:key", roles(admin), audit("UPSERT", "fee_configuration"), deps.fees.UpsertConfiguration)
	fees.GET("/schedules", roles(accountant), deps.fees.ListSchedules)
	fees.PUT("/schedules", roles(admin), audit("UPSERT", "tuition_schedule"), deps.fees.UpsertSchedule)

	programs := secured.Group("/programs")
	programs.GET("", roles(censor), deps.programs.List)
	programs.POST("", roles(censor), audit("CREATE", "program"), deps.programs.Create)
	programs.GET("/:id", roles(censor), deps.programs.Get)
}
