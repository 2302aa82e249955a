package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scolarite-api/internal/dto"
	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/internal/service"
)

type feeServiceMock struct {
	resolvedFiliere *int64
	resolvedVague   *string
	configKey       string
	configReq       service.UpsertFeeConfigurationRequest
	scheduleReq     service.UpsertTuitionScheduleRequest
	listVague       string
}

func (m *feeServiceMock) ResolveFor(_ context.Context, filiereID *int64, vagueID *string) (*dto.ResolvedFeesResponse, error) {
	m.resolvedFiliere = filiereID
	m.resolvedVague = vagueID
	return &dto.ResolvedFeesResponse{
		FiliereID:             filiereID,
		VagueID:               vagueID,
		FraisInscription:      decimal.NewFromInt(50000),
		FraisScolarite:        decimal.NewFromInt(900000),
		RegistrationFeeSource: string(service.FeeSourceUniversal),
		TuitionFeeSource:      string(service.FeeSourceSchedule),
	}, nil
}

func (m *feeServiceMock) UpsertConfiguration(_ context.Context, key string, req service.UpsertFeeConfigurationRequest) (*models.FeeConfiguration, error) {
	m.configKey = key
	m.configReq = req
	return &models.FeeConfiguration{TypeFrais: key, Montant: req.Montant}, nil
}

func (m *feeServiceMock) UpsertSchedule(_ context.Context, req service.UpsertTuitionScheduleRequest) (*models.TuitionSchedule, error) {
	m.scheduleReq = req
	return &models.TuitionSchedule{ID: "sch-1", FiliereID: req.FiliereID, VagueID: req.VagueID, FraisScolarite: req.FraisScolarite, Statut: models.TuitionScheduleActive}, nil
}

func (m *feeServiceMock) ListSchedules(_ context.Context, _ *int64, vagueID string) ([]models.TuitionSchedule, error) {
	m.listVague = vagueID
	return []models.TuitionSchedule{}, nil
}

func TestFeeHandlerResolve(t *testing.T) {
	mock := &feeServiceMock{}
	handler := NewFeeHandler(mock)

	c, rec := newTestContext(http.MethodGet, "/fees/resolve?filiere_id=3&vague_id=V1", nil)
	handler.Resolve(c)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, mock.resolvedFiliere)
	require.NotNil(t, mock.resolvedVague)
	assert.Equal(t, int64(3), *mock.resolvedFiliere)
	assert.Equal(t, "V1", *mock.resolvedVague)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &data))
	assert.Equal(t, "SCHEDULE", data["fraisScolariteSource"])
}

func TestFeeHandlerResolveWithoutParams(t *testing.T) {
	mock := &feeServiceMock{}
	handler := NewFeeHandler(mock)

	c, rec := newTestContext(http.MethodGet, "/fees/resolve", nil)
	handler.Resolve(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, mock.resolvedFiliere)
	assert.Nil(t, mock.resolvedVague)
}

func TestFeeHandlerUpsertConfiguration(t *testing.T) {
	mock := &feeServiceMock{}
	handler := NewFeeHandler(mock)

	c, rec := newTestContext(http.MethodPut, "/fees/configurations/INSCRIPTION_UNIVERSEL", `{"montant":"60000"}`)
	c.Params = gin.Params{{Key: "key", Value: "INSCRIPTION_UNIVERSEL"}}
	handler.UpsertConfiguration(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "INSCRIPTION_UNIVERSEL", mock.configKey)
	assert.True(t, mock.configReq.Montant.Equal(decimal.NewFromInt(60000)))
}

func TestFeeHandlerUpsertScheduleInvalidPayload(t *testing.T) {
	handler := NewFeeHandler(&feeServiceMock{})

	c, rec := newTestContext(http.MethodPut, "/fees/schedules", `{"filiere_id":"one"}`)
	handler.UpsertSchedule(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeeHandlerUpsertSchedule(t *testing.T) {
	mock := &feeServiceMock{}
	handler := NewFeeHandler(mock)

	c, rec := newTestContext(http.MethodPut, "/fees/schedules", `{"filiere_id":2,"vague_id":"V3","frais_scolarite":750000}`)
	handler.UpsertSchedule(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2), mock.scheduleReq.FiliereID)
	assert.Equal(t, "V3", mock.scheduleReq.VagueID)
	assert.Nil(t, mock.scheduleReq.Active)
}

func TestFeeHandlerListSchedules(t *testing.T) {
	mock := &feeServiceMock{}
	handler := NewFeeHandler(mock)

	c, rec := newTestContext(http.MethodGet, "/fees/schedules?vague_id=V9", nil)
	handler.ListSchedules(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "V9", mock.listVague)
}
