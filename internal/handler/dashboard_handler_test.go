package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scolarite-api/internal/dto"
	"github.com/noah-isme/scolarite-api/internal/middleware"
	"github.com/noah-isme/scolarite-api/internal/service"
)

type fakeDashboardSrv struct {
	resp       *dto.FinanceDashboardResponse
	hit        bool
	err        error
	lastFilter service.FinanceFilter
}

func (f *fakeDashboardSrv) Finance(_ context.Context, filter service.FinanceFilter) (*dto.FinanceDashboardResponse, bool, error) {
	f.lastFilter = filter
	return f.resp, f.hit, f.err
}

func TestDashboardHandlerFinanceSuccess(t *testing.T) {
	srv := &fakeDashboardSrv{
		resp: &dto.FinanceDashboardResponse{
			StudentCount: 3,
			TotalDue:     decimal.NewFromInt(2805000),
		},
		hit: true,
	}
	handler := NewDashboardHandler(srv)

	c, rec := newTestContext(http.MethodGet, "/dashboard/finance?filiere_id=2&vague_id=V1", nil)
	middleware.WithResponseMeta()(c)
	handler.Finance(c)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, srv.lastFilter.FiliereID)
	assert.Equal(t, int64(2), *srv.lastFilter.FiliereID)
	assert.Equal(t, "V1", srv.lastFilter.VagueID)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.EqualValues(t, 3, data["studentCount"])
}

func TestDashboardHandlerFinanceReportsDegraded(t *testing.T) {
	handler := NewDashboardHandler(&fakeDashboardSrv{resp: &dto.FinanceDashboardResponse{DegradedCount: 2}})

	c, rec := newTestContext(http.MethodGet, "/dashboard/finance", nil)
	middleware.WithResponseMeta()(c)
	handler.Finance(c)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, false, envelope.Meta["cache_hit"])
	assert.EqualValues(t, 2, envelope.Meta["degraded"])
}

func TestDashboardHandlerFinanceError(t *testing.T) {
	handler := NewDashboardHandler(&fakeDashboardSrv{err: errors.New("boom")})

	c, rec := newTestContext(http.MethodGet, "/dashboard/finance", nil)
	handler.Finance(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
