package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deadlineRouter(d time.Duration, handler gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), RequestDeadline(d))
	router.GET("/api/catalog", handler)
	return router
}

func getCatalog(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))
	return w
}

// slowCatalogRead waits for the request context like a Mongo read would.
func slowCatalogRead(c *gin.Context) error {
	select {
	case <-c.Request.Context().Done():
		return c.Request.Context().Err()
	case <-time.After(time.Second):
		return nil
	}
}

func TestRequestDeadline(t *testing.T) {
	tests := []struct {
		name       string
		deadline   time.Duration
		handler    gin.HandlerFunc
		wantStatus int
		wantBody   string
	}{
		{
			name:     "catalog served in time",
			deadline: time.Second,
			handler: func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"paper_stocks": 3})
			},
			wantStatus: http.StatusOK,
			wantBody:   "paper_stocks",
		},
		{
			name:     "read gives up and nothing was written",
			deadline: 20 * time.Millisecond,
			handler: func(c *gin.Context) {
				if err := slowCatalogRead(c); err != nil {
					return
				}
				c.JSON(http.StatusOK, gin.H{"paper_stocks": 3})
			},
			wantStatus: http.StatusGatewayTimeout,
			wantBody:   "timeout",
		},
		{
			name:     "handler reported the failure itself",
			deadline: 20 * time.Millisecond,
			handler: func(c *gin.Context) {
				if err := slowCatalogRead(c); err != nil {
					c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service_unavailable"})
				}
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "service_unavailable",
		},
		{
			name:     "no deadline",
			deadline: 0,
			handler: func(c *gin.Context) {
				_, has := c.Request.Context().Deadline()
				c.JSON(http.StatusOK, gin.H{"has_deadline": has})
			},
			wantStatus: http.StatusOK,
			wantBody:   `"has_deadline":false`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := getCatalog(deadlineRouter(tt.deadline, tt.handler))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestRequestDeadline_SetsContextDeadline(t *testing.T) {
	var (
		deadline time.Time
		ok       bool
	)
	start := time.Now()
	router := deadlineRouter(5*time.Second, func(c *gin.Context) {
		deadline, ok = c.Request.Context().Deadline()
		c.Status(http.StatusNoContent)
	})

	getCatalog(router)

	require.True(t, ok)
	assert.WithinDuration(t, start.Add(5*time.Second), deadline, time.Second)
}

func TestRequestDeadline_CancelsAfterRequest(t *testing.T) {
	var reqCtx context.Context
	router := deadlineRouter(time.Minute, func(c *gin.Context) {
		reqCtx = c.Request.Context()
		c.Status(http.StatusNoContent)
	})

	getCatalog(router)

	require.NotNil(t, reqCtx)
	assert.ErrorIs(t, reqCtx.Err(), context.Canceled)
}
