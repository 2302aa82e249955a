package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/internal/service"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

type programServiceMock struct {
	created   service.CreateProgramRequest
	requested int64
	createErr error
}

func (m *programServiceMock) Create(_ context.Context, req service.CreateProgramRequest) (*models.Program, error) {
	m.created = req
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &models.Program{ID: 1, Name: req.Name, Duration: req.Duration, DurationMonths: 36}, nil
}

func (m *programServiceMock) Get(_ context.Context, id int64) (*models.Program, error) {
	m.requested = id
	return &models.Program{ID: id}, nil
}

func (m *programServiceMock) List(context.Context) ([]models.Program, error) {
	return []models.Program{{ID: 1}}, nil
}

func TestProgramHandlerCreate(t *testing.T) {
	mock := &programServiceMock{}
	handler := NewProgramHandler(mock)

	c, rec := newTestContext(http.MethodPost, "/programs", service.CreateProgramRequest{Name: "Informatique", Duration: "3 ans"})
	handler.Create(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "3 ans", mock.created.Duration)
}

func TestProgramHandlerCreateConflict(t *testing.T) {
	handler := NewProgramHandler(&programServiceMock{createErr: appErrors.Clone(appErrors.ErrConflict, "program already exists")})

	c, rec := newTestContext(http.MethodPost, "/programs", service.CreateProgramRequest{Name: "Informatique", Duration: "3 ans"})
	handler.Create(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestProgramHandlerGetRejectsNonNumericID(t *testing.T) {
	mock := &programServiceMock{}
	handler := NewProgramHandler(mock)

	c, rec := newTestContext(http.MethodGet, "/programs/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	handler.Get(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, mock.requested)
}

func TestProgramHandlerGet(t *testing.T) {
	mock := &programServiceMock{}
	handler := NewProgramHandler(mock)

	c, rec := newTestContext(http.MethodGet, "/programs/7", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	handler.Get(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), mock.requested)
}
