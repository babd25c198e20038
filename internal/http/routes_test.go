//go:build !integration

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/guttosm/print-pricing-service/internal/middleware"
	"github.com/guttosm/print-pricing-service/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewQuoteRoutes(t *testing.T) {
	routes := NewQuoteRoutes(mocks.NewMockQuoteService(t), mocks.NewMockCatalogService(t))

	assert.NotNil(t, routes)
	assert.NotNil(t, routes.handler)
}

func TestQuoteRoutes_RegisterRoutes(t *testing.T) {
	routes := NewQuoteRoutes(mocks.NewMockQuoteService(t), mocks.NewMockCatalogService(t))

	router := gin.New()
	api := router.Group("/api")
	routes.RegisterRoutes(api, &RouterConfig{})

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/quotes/calculate"},
		{http.MethodPost, "/api/quotes"},
		{http.MethodGet, "/api/quotes"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			// Should not return 404 - route exists
			assert.NotEqual(t, http.StatusNotFound, w.Code)
		})
	}
}

func TestAdminRoutes_RegisterRoutes(t *testing.T) {
	tests := []struct {
		name           string
		cfg            RouterConfig
		apiKey         string
		callsService   bool
		expectedStatus int
	}{
		{
			name:           "open when auth disabled",
			cfg:            RouterConfig{},
			callsService:   true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing API key",
			cfg:            RouterConfig{EnableAuth: true, APIKeys: map[string]bool{"ops-key": true}},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong API key",
			cfg:            RouterConfig{EnableAuth: true, APIKeys: map[string]bool{"ops-key": true}},
			apiKey:         "guess",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "valid API key",
			cfg:            RouterConfig{EnableAuth: true, APIKeys: map[string]bool{"ops-key": true}},
			apiKey:         "ops-key",
			callsService:   true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "auth enabled without keys stays open",
			cfg:            RouterConfig{EnableAuth: true},
			callsService:   true,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalogService := mocks.NewMockCatalogService(t)
			if tt.callsService {
				catalogService.On("ListBrokerDiscounts", mock.Anything).
					Return([]model.BrokerDiscount{{CategoryID: "postcards"}}).Once()
			}
			routes := NewAdminRoutes(catalogService, nil)

			router := gin.New()
			router.Use(middleware.RequestID())
			routes.RegisterRoutes(router.Group("/api"), &tt.cfg)

			req := httptest.NewRequest(http.MethodGet, "/api/admin/broker-discounts", nil)
			if tt.apiKey != "" {
				req.Header.Set(middleware.APIKeyHeader, tt.apiKey)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
