package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scolarite-api/internal/dto"
	"github.com/noah-isme/scolarite-api/internal/middleware"
	"github.com/noah-isme/scolarite-api/internal/service"
	"github.com/noah-isme/scolarite-api/pkg/response"
)

type financeDashboardService interface {
	Finance(ctx context.Context, filter service.FinanceFilter) (*dto.FinanceDashboardResponse, bool, error)
}

// DashboardHandler wires the finance dashboard to HTTP.
type DashboardHandler struct {
	service financeDashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service financeDashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Finance godoc
// @Summary Finance dashboard
// @Description Totals due, paid and remaining with student counts per current semester.
// @Tags Dashboard
// @Produce json
// @Param filiere_id query int false "Program ID"
// @Param vague_id query string false "Cohort ID"
// @Success 200 {object} response.Envelope{data=dto.FinanceDashboardResponse}
// @Router /dashboard/finance [get]
func (h *DashboardHandler) Finance(c *gin.Context) {
	filiereID, err := optionalInt64Query(c, "filiere_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	filter := service.FinanceFilter{FiliereID: filiereID, VagueID: strings.TrimSpace(c.Query("vague_id"))}

	summary, cacheHit, err := h.service.Finance(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	middleware.SetDegraded(c, summary.DegradedCount)
	response.JSON(c, http.StatusOK, summary, nil, middleware.ExtractMeta(c))
}
