package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, m *MetricsService, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if labelsMatch(metric, labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func labelsMatch(metric *dto.Metric, labels map[string]string) bool {
	matched := 0
	for _, pair := range metric.GetLabel() {
		if want, ok := labels[pair.GetName()]; ok {
			if want != pair.GetValue() {
				return false
			}
			matched++
		}
	}
	return matched == len(labels)
}

func TestMetricsServiceCounters(t *testing.T) {
	m := NewMetricsService()

	m.RecordSummary(SummaryOutcomeOK)
	m.RecordSummary(SummaryOutcomeOK)
	m.RecordSummary(SummaryOutcomeFallback)
	m.RecordPayment("APPROVED")
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/balances", http.StatusOK, 20*time.Millisecond)

	assert.Equal(t, float64(2), counterValue(t, m, "balance_summaries_total", map[string]string{"outcome": SummaryOutcomeOK}))
	assert.Equal(t, float64(1), counterValue(t, m, "balance_summaries_total", map[string]string{"outcome": SummaryOutcomeFallback}))
	assert.Equal(t, float64(1), counterValue(t, m, "payments_recorded_total", map[string]string{"status": "APPROVED"}))
	assert.Equal(t, float64(1), counterValue(t, m, "cache_lookups_total", map[string]string{"result": "hit"}))
	assert.Equal(t, float64(2), counterValue(t, m, "cache_lookups_total", map[string]string{"result": "miss"}))
	assert.Equal(t, float64(1), counterValue(t, m, "http_requests_total", map[string]string{"path": "/api/v1/balances", "status": "200"}))
}

func TestMetricsServiceNilIsSafe(t *testing.T) {
	var m *MetricsService

	assert.NotPanics(t, func() {
		m.RecordSummary(SummaryOutcomeError)
		m.RecordPayment("PENDING")
		m.ObserveBalanceStep(BalanceStepTotalPaid, time.Millisecond)
		m.ObserveCacheWrite(time.Millisecond)
	})
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func histogramCount(t *testing.T, m *MetricsService, name string, labels map[string]string) uint64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if labelsMatch(metric, labels) {
				return metric.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func TestSummaryServiceObservesBalanceSteps(t *testing.T) {
	svc := newTestSummaryService(newFakeStudentReader(sampleStudent("stu-1")), &fakeFeeRepo{}, &fakePaid{}, true)
	metrics := svc.metrics

	_, err := svc.Summarize(context.Background(), "stu-1")
	require.NoError(t, err)

	assert.Equal(t, uint64(1), histogramCount(t, metrics, "balance_step_duration_seconds", map[string]string{"step": BalanceStepResolveFees}))
	assert.Equal(t, uint64(1), histogramCount(t, metrics, "balance_step_duration_seconds", map[string]string{"step": BalanceStepTotalPaid}))
}
