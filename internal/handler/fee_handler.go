package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scolarite-api/internal/dto"
	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/internal/service"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
	"github.com/noah-isme/scolarite-api/pkg/response"
)

type feeService interface {
	ResolveFor(ctx context.Context, filiereID *int64, vagueID *string) (*dto.ResolvedFeesResponse, error)
	UpsertConfiguration(ctx context.Context, key string, req service.UpsertFeeConfigurationRequest) (*models.FeeConfiguration, error)
	UpsertSchedule(ctx context.Context, req service.UpsertTuitionScheduleRequest) (*models.TuitionSchedule, error)
	ListSchedules(ctx context.Context, filiereID *int64, vagueID string) ([]models.TuitionSchedule, error)
}

// FeeHandler exposes fee resolution and fee administration.
type FeeHandler struct {
	service feeService
}

// NewFeeHandler constructs the handler.
func NewFeeHandler(service feeService) *FeeHandler {
	return &FeeHandler{service: service}
}

// Resolve godoc
// @Summary Resolve applicable fees
// @Description Registration and tuition fees for a program/cohort pair, with the source each amount came from.
// @Tags Fees
// @Produce json
// @Param filiere_id query int false "Program ID"
// @Param vague_id query string false "Cohort ID"
// @Success 200 {object} response.Envelope{data=dto.ResolvedFeesResponse}
// @Router /fees/resolve [get]
func (h *FeeHandler) Resolve(c *gin.Context) {
	filiereID, err := optionalInt64Query(c, "filiere_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	fees, err := h.service.ResolveFor(c.Request.Context(), filiereID, optionalStringQuery(c, "vague_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fees, nil)
}

// UpsertConfiguration godoc
// @Summary Set a flat fee
// @Tags Fees
// @Accept json
// @Produce json
// @Param key path string true "Fee type, e.g. INSCRIPTION_UNIVERSEL"
// @Param payload body service.UpsertFeeConfigurationRequest true "Amount"
// @Success 200 {object} response.Envelope{data=models.FeeConfiguration}
// @Router /fees/configurations/{key} [put]
func (h *FeeHandler) UpsertConfiguration(c *gin.Context) {
	var req service.UpsertFeeConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid fee payload"))
		return
	}
	cfg, err := h.service.UpsertConfiguration(c.Request.Context(), strings.TrimSpace(c.Param("key")), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cfg, nil)
}

// ListSchedules godoc
// @Summary List tuition schedules
// @Tags Fees
// @Produce json
// @Param filiere_id query int false "Program ID"
// @Param vague_id query string false "Cohort ID"
// @Success 200 {object} response.Envelope{data=[]models.TuitionSchedule}
// @Router /fees/schedules [get]
func (h *FeeHandler) ListSchedules(c *gin.Context) {
	filiereID, err := optionalInt64Query(c, "filiere_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	schedules, err := h.service.ListSchedules(c.Request.Context(), filiereID, strings.TrimSpace(c.Query("vague_id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedules, nil)
}

// UpsertSchedule godoc
// @Summary Set tuition for a program/cohort pair
// @Tags Fees
// @Accept json
// @Produce json
// @Param payload body service.UpsertTuitionScheduleRequest true "Schedule payload"
// @Success 200 {object} response.Envelope{data=models.TuitionSchedule}
// @Router /fees/schedules [put]
func (h *FeeHandler) UpsertSchedule(c *gin.Context) {
	var req service.UpsertTuitionScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
		return
	}
	schedule, err := h.service.UpsertSchedule(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule, nil)
}
