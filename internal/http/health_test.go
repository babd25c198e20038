//go:build !integration

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/print-pricing-service/internal/circuitbreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tripped(name string) *circuitbreaker.CircuitBreaker {
	cb := circuitbreaker.New(circuitbreaker.Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Hour, Name: name})
	_ = cb.Execute(context.Background(), func() error { return errors.New("server selection timeout") })
	return cb
}

func readiness(t *testing.T, h *HealthHandler) (int, ReadinessReport) {
	t.Helper()
	router := gin.New()
	h.Register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	var report ReadinessReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	return w.Code, report
}

func TestHealthHandler_Readiness(t *testing.T) {
	mongoUp := HealthCheckFunc(func(context.Context) error { return nil })
	mongoDown := HealthCheckFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name       string
		setup      func(*HealthHandler)
		wantStatus int
		wantChecks map[string]string
	}{
		{
			name:       "in-memory catalog only",
			setup:      func(*HealthHandler) {},
			wantStatus: http.StatusOK,
			wantChecks: map[string]string{"service": "ok"},
		},
		{
			name: "mongodb reachable and breakers closed",
			setup: func(h *HealthHandler) {
				h.RegisterChecker("mongodb", mongoUp)
				h.RegisterCircuitBreaker("mongodb_catalog", circuitbreaker.New(circuitbreaker.DefaultConfig()))
			},
			wantStatus: http.StatusOK,
			wantChecks: map[string]string{"mongodb": "ok", "mongodb_catalog_circuit": "closed"},
		},
		{
			name:       "mongodb unreachable",
			setup:      func(h *HealthHandler) { h.RegisterChecker("mongodb", mongoDown) },
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: map[string]string{"mongodb": "connection refused"},
		},
		{
			name: "quote store breaker open",
			setup: func(h *HealthHandler) {
				h.RegisterChecker("mongodb", mongoUp)
				h.RegisterCircuitBreaker("mongodb_quotes", tripped("mongodb-quotes"))
			},
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: map[string]string{"mongodb": "ok", "mongodb_quotes_circuit": "open"},
		},
		{
			name:       "nil breaker is ignored",
			setup:      func(h *HealthHandler) { h.RegisterCircuitBreaker("mongodb_logs", nil) },
			wantStatus: http.StatusOK,
			wantChecks: map[string]string{"service": "ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler()
			tt.setup(h)

			status, report := readiness(t, h)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantChecks, report.Checks)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "ok", report.Status)
			} else {
				assert.Equal(t, "degraded", report.Status)
			}
		})
	}
}

func TestHealthHandler_HalfOpenStaysReady(t *testing.T) {
	cb := circuitbreaker.New(circuitbreaker.Config{FailureThreshold: 1, SuccessThreshold: 2, Timeout: time.Millisecond, Name: "mongodb-catalog"})
	_ = cb.Execute(context.Background(), func() error { return errors.New("server selection timeout") })
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, cb.Execute(context.Background(), func() error { return nil }))
	require.Equal(t, circuitbreaker.StateHalfOpen, cb.State())

	h := NewHealthHandler()
	h.RegisterCircuitBreaker("mongodb_catalog", cb)
	status, report := readiness(t, h)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "half-open", report.Checks["mongodb_catalog_circuit"])
}

func TestHealthHandler_ChecksShareDeadline(t *testing.T) {
	var deadline time.Time
	h := NewHealthHandler()
	h.RegisterChecker("mongodb", HealthCheckFunc(func(ctx context.Context) error {
		deadline, _ = ctx.Deadline()
		return nil
	}))

	status, _ := readiness(t, h)

	assert.Equal(t, http.StatusOK, status)
	assert.WithinDuration(t, time.Now().Add(readinessCheckTimeout), deadline, time.Second)
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := NewHealthHandler()
	h.RegisterChecker("mongodb", HealthCheckFunc(func(context.Context) error { return errors.New("connection refused") }))
	router := gin.New()
	h.Register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code, "liveness ignores dependencies")
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
