package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/scolarite-api/internal/models"
)

func TestAuditLogsSuccessfulWritesOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	r := gin.New()
	claims := &models.JWTClaims{UserID: "u-1", Role: models.RoleAccountant}
	r.PATCH("/payments/:id/status", withClaims(claims), Audit(logger, "update_status", "payment"), func(c *gin.Context) {
		if c.Query("fail") != "" {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/payments/pay-1/status", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/payments/pay-1/status?fail=1", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "update_status", fields["action"])
	assert.Equal(t, "pay-1", fields["resource_id"])
	assert.Equal(t, "u-1", fields["user_id"])
	assert.Equal(t, "audit", entries[0].LoggerName)
}
