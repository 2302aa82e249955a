package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scolarite-api/internal/dto"
	"github.com/noah-isme/scolarite-api/internal/middleware"
	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/pkg/response"
)

type balanceService interface {
	SummarizeOrFallback(ctx context.Context, studentID string) (*dto.BalanceSummary, error)
	SummarizeMany(ctx context.Context, filter models.StudentFilter) ([]dto.BalanceSummary, *models.Pagination, error)
}

// BalanceHandler exposes per-student tuition balances.
type BalanceHandler struct {
	service balanceService
}

// NewBalanceHandler constructs the handler.
func NewBalanceHandler(service balanceService) *BalanceHandler {
	return &BalanceHandler{service: service}
}

// Get godoc
// @Summary Student tuition balance
// @Description Fees owed, amount paid, remaining amount and settled semesters. Fallback values are flagged with degraded=true.
// @Tags Balances
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope{data=dto.BalanceSummary}
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/balance [get]
func (h *BalanceHandler) Get(c *gin.Context) {
	summary, err := h.service.SummarizeOrFallback(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if summary.Degraded {
		middleware.SetDegraded(c, 1)
	}
	response.JSON(c, http.StatusOK, summary, nil, middleware.ExtractMeta(c))
}

// List godoc
// @Summary List student balances
// @Tags Balances
// @Produce json
// @Param filiere_id query int false "Program ID"
// @Param vague_id query string false "Cohort ID"
// @Param search query string false "Name or email"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope{data=[]dto.BalanceSummary}
// @Router /balances [get]
func (h *BalanceHandler) List(c *gin.Context) {
	filiereID, err := optionalInt64Query(c, "filiere_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	page, size := pageParams(c)
	filter := models.StudentFilter{
		FiliereID: filiereID,
		VagueID:   strings.TrimSpace(c.Query("vague_id")),
		Search:    strings.TrimSpace(c.Query("search")),
		Page:      page,
		PageSize:  size,
	}

	summaries, pagination, err := h.service.SummarizeMany(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	degraded := 0
	for _, summary := range summaries {
		if summary.Degraded {
			degraded++
		}
	}
	middleware.SetDegraded(c, degraded)
	response.JSON(c, http.StatusOK, summaries, pagination, middleware.ExtractMeta(c))
}
