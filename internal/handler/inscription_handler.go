package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/internal/service"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
	"github.com/noah-isme/scolarite-api/pkg/response"
)

type inscriptionService interface {
	Create(ctx context.Context, req service.CreateInscriptionRequest) (*models.Inscription, error)
	Get(ctx context.Context, id string) (*models.Inscription, error)
	List(ctx context.Context, filter models.InscriptionFilter) ([]models.Inscription, *models.Pagination, error)
	LinkStudent(ctx context.Context, id string, req service.LinkStudentRequest) (*models.Inscription, error)
}

// InscriptionHandler exposes enrollment record endpoints.
type InscriptionHandler struct {
	service inscriptionService
}

// NewInscriptionHandler constructs the handler.
func NewInscriptionHandler(service inscriptionService) *InscriptionHandler {
	return &InscriptionHandler{service: service}
}

// Create godoc
// @Summary Create inscription
// @Tags Inscriptions
// @Accept json
// @Produce json
// @Param payload body service.CreateInscriptionRequest true "Inscription payload"
// @Success 201 {object} response.Envelope{data=models.Inscription}
// @Router /inscriptions [post]
func (h *InscriptionHandler) Create(c *gin.Context) {
	var req service.CreateInscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid inscription payload"))
		return
	}
	inscription, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, inscription, "inscription created")
}

// List godoc
// @Summary List inscriptions
// @Tags Inscriptions
// @Produce json
// @Param filiere_id query int false "Program ID"
// @Param vague_id query string false "Cohort ID"
// @Param status query string false "EN_ATTENTE, VALIDEE or REJETEE"
// @Param unlinked query bool false "Only inscriptions without a student"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope{data=[]models.Inscription}
// @Router /inscriptions [get]
func (h *InscriptionHandler) List(c *gin.Context) {
	filiereID, err := optionalInt64Query(c, "filiere_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	unlinked, _ := strconv.ParseBool(c.DefaultQuery("unlinked", "false"))
	page, size := pageParams(c)
	filter := models.InscriptionFilter{
		FiliereID: filiereID,
		VagueID:   strings.TrimSpace(c.Query("vague_id")),
		Status:    models.InscriptionStatus(strings.ToUpper(strings.TrimSpace(c.Query("status")))),
		Unlinked:  unlinked,
		Page:      page,
		PageSize:  size,
	}
	inscriptions, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, inscriptions, pagination)
}

// Get godoc
// @Summary Get inscription
// @Tags Inscriptions
// @Produce json
// @Param id path string true "Inscription ID"
// @Success 200 {object} response.Envelope{data=models.Inscription}
// @Router /inscriptions/{id} [get]
func (h *InscriptionHandler) Get(c *gin.Context) {
	inscription, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, inscription, nil)
}

// LinkStudent godoc
// @Summary Link inscription to a student
// @Tags Inscriptions
// @Accept json
// @Produce json
// @Param id path string true "Inscription ID"
// @Param payload body service.LinkStudentRequest true "Student to link"
// @Success 200 {object} response.Envelope{data=models.Inscription}
// @Router /inscriptions/{id}/student [put]
func (h *InscriptionHandler) LinkStudent(c *gin.Context) {
	var req service.LinkStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid link payload"))
		return
	}
	inscription, err := h.service.LinkStudent(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, inscription, nil)
}
