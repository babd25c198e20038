//go:build !integration

package http

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/print-pricing-service/internal/catalog"
	"github.com/guttosm/print-pricing-service/internal/domain/dto"
	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/guttosm/print-pricing-service/internal/metrics"
	"github.com/guttosm/print-pricing-service/internal/mocks"
	"github.com/guttosm/print-pricing-service/internal/service"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testTokenSecret = "handler-test-secret"

// setupRouter wires the real engine against the built-in catalog without storage.
func setupRouter() (*gin.Engine, service.BrokerTokenService) {
	catalogService := service.NewCatalogService(nil, nil, catalog.Default())
	quoteService := service.NewQuoteService(catalogService, service.NewPricingEngineService(), nil)
	tokens := service.NewBrokerTokenService(service.BrokerTokenConfig{Secret: testTokenSecret})

	cfg := DefaultRouterConfig()
	cfg.QuoteService = quoteService
	cfg.CatalogService = catalogService
	cfg.BrokerTokenService = tokens
	return NewRouter(NewHealthHandler(), cfg), tokens
}

func setupRouterWithMocks(t *testing.T) (*gin.Engine, *mocks.MockQuoteService, *mocks.MockCatalogService, *mocks.MockBrokerTokenService) {
	quotes := mocks.NewMockQuoteService(t)
	catalogService := mocks.NewMockCatalogService(t)
	tokens := mocks.NewMockBrokerTokenService(t)

	cfg := DefaultRouterConfig()
	cfg.QuoteService = quotes
	cfg.CatalogService = catalogService
	cfg.BrokerTokenService = tokens
	return NewRouter(NewHealthHandler(), cfg), quotes, catalogService, tokens
}

func issueToken(t *testing.T, tokens service.BrokerTokenService, identity model.BrokerIdentity) string {
	t.Helper()
	token, err := tokens.IssueToken(identity, time.Hour)
	require.NoError(t, err)
	return token
}

func TestCalculateQuote(t *testing.T) {
	router, tokens := setupRouter()
	brokerToken := issueToken(t, tokens, model.BrokerIdentity{AccountID: "acct-1", IsBroker: true})
	retailToken := issueToken(t, tokens, model.BrokerIdentity{AccountID: "acct-2"})

	tests := []struct {
		name           string
		body           string
		token          string
		expectedStatus int
		wantSubtotal   string
		checkError     func(*testing.T, dto.ErrorResponse)
	}{
		{
			name:           "retail price",
			body:           validQuoteBody,
			expectedStatus: http.StatusOK,
			wantSubtotal:   "120",
		},
		{
			name:           "broker discount",
			body:           validQuoteBody,
			token:          brokerToken,
			expectedStatus: http.StatusOK,
			wantSubtotal:   "108",
		},
		{
			name:           "account token without broker flag pays retail",
			body:           validQuoteBody,
			token:          retailToken,
			expectedStatus: http.StatusOK,
			wantSubtotal:   "120",
		},
		{
			name:           "tagline discount",
			body:           `{"paper_stock_id":"14pt-matte","size_id":"4x6","quantity":500,"sides":"single","turnaround_id":"standard","addons":{"tagline":true}}`,
			expectedStatus: http.StatusOK,
			wantSubtotal:   "114",
		},
		{
			name:           "invalid JSON",
			body:           `invalid`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero quantity",
			body:           `{"paper_stock_id":"14pt-matte","size_id":"4x6","quantity":0,"sides":"single","turnaround_id":"standard"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid sides returns field details",
			body:           `{"paper_stock_id":"14pt-matte","size_id":"4x6","quantity":500,"sides":"both","turnaround_id":"standard"}`,
			expectedStatus: http.StatusBadRequest,
			checkError: func(t *testing.T, resp dto.ErrorResponse) {
				assert.Equal(t, "Invalid quote request", resp.Message)
				assert.Equal(t, "must be single or double", resp.Details["sides"])
			},
		},
		{
			name:           "unknown paper stock",
			body:           `{"paper_stock_id":"vinyl","size_id":"4x6","quantity":500,"sides":"single","turnaround_id":"standard"}`,
			expectedStatus: http.StatusBadRequest,
			checkError: func(t *testing.T, resp dto.ErrorResponse) {
				assert.Equal(t, "Paper stock not found", resp.Message)
			},
		},
		{
			name:           "unknown turnaround",
			body:           `{"paper_stock_id":"14pt-matte","size_id":"4x6","quantity":500,"sides":"single","turnaround_id":"yesterday"}`,
			expectedStatus: http.StatusBadRequest,
			checkError: func(t *testing.T, resp dto.ErrorResponse) {
				assert.Equal(t, "Turnaround time not found", resp.Message)
			},
		},
		{
			name:           "broker cannot quote a postcard as business cards",
			body:           `{"paper_stock_id":"14pt-matte","size_id":"4x6","quantity":500,"sides":"single","turnaround_id":"standard","category_id":"business-cards"}`,
			token:          brokerToken,
			expectedStatus: http.StatusBadRequest,
			checkError: func(t *testing.T, resp dto.ErrorResponse) {
				assert.Equal(t, "Size is not sold in this product category", resp.Message)
			},
		},
		{
			name:           "unknown category",
			body:           `{"paper_stock_id":"14pt-matte","size_id":"4x6","quantity":500,"sides":"single","turnaround_id":"standard","category_id":"banners"}`,
			expectedStatus: http.StatusBadRequest,
			checkError: func(t *testing.T, resp dto.ErrorResponse) {
				assert.Equal(t, "Product category not found", resp.Message)
			},
		},
		{
			name:           "broker category derived from size",
			body:           `{"paper_stock_id":"14pt-matte","size_id":"4x6","quantity":500,"sides":"single","turnaround_id":"standard"}`,
			token:          brokerToken,
			expectedStatus: http.StatusOK,
			wantSubtotal:   "108",
		},
		{
			name:           "invalid broker token",
			body:           validQuoteBody,
			token:          "not-a-jwt",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, http.MethodPost, "/api/quotes/calculate", tt.body, tt.token)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.wantSubtotal != "" {
				var calc model.PriceCalculation
				resp := decodeData(t, w, &calc)
				assert.NotEmpty(t, resp.RequestID)
				assert.Equal(t, tt.wantSubtotal, calc.CalculatedProductSubtotal.String())
			}
			if tt.checkError != nil {
				tt.checkError(t, decodeError(t, w))
			}
		})
	}
}

func TestCalculateQuote_AddOnPricesComeFromCatalog(t *testing.T) {
	router, _ := setupRouter()
	const selection = `{"paper_stock_id":"14pt-matte","size_id":"4x6","quantity":5000,"sides":"single","turnaround_id":"standard","addons":%s}`

	plain := serve(router, http.MethodPost, "/api/quotes/calculate",
		fmt.Sprintf(selection, `{"digital_proof":{},"perforation":{},"eddm":{},"banding":{}}`), "")
	priced := serve(router, http.MethodPost, "/api/quotes/calculate",
		fmt.Sprintf(selection, `{
			"digital_proof":{"fee":"0.001"},
			"perforation":{"setup_fee":"0","price_per_piece":"0"},
			"eddm":{"setup_fee":"0","price_per_piece":"0.000001"},
			"banding":{"items_per_bundle":1000000,"price_per_bundle":"0.04"}
		}`), "")

	require.Equal(t, http.StatusOK, plain.Code)
	require.Equal(t, http.StatusOK, priced.Code)

	var want, got model.PriceCalculation
	decodeData(t, plain, &want)
	decodeData(t, priced, &got)
	assert.Equal(t, "1357.5", want.TotalAddOnCost.String())
	assert.Equal(t, want.TotalAddOnCost.String(), got.TotalAddOnCost.String())
	assert.Equal(t, want.CalculatedProductSubtotal.String(), got.CalculatedProductSubtotal.String())
}

func TestCalculateQuote_CountsOnePricing(t *testing.T) {
	router, _ := setupRouter()
	success := metrics.PriceCalculationsTotal.WithLabelValues("success")
	invalid := metrics.PriceCalculationsTotal.WithLabelValues("invalid")

	successBefore := testutil.ToFloat64(success)
	invalidBefore := testutil.ToFloat64(invalid)

	w := serve(router, http.MethodPost, "/api/quotes/calculate", validQuoteBody, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, successBefore+1, testutil.ToFloat64(success))

	w = serve(router, http.MethodPost, "/api/quotes/calculate",
		`{"paper_stock_id":"vinyl","size_id":"4x6","quantity":500,"sides":"single","turnaround_id":"standard"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, successBefore+1, testutil.ToFloat64(success))
	assert.Equal(t, invalidBefore+1, testutil.ToFloat64(invalid))
}

func TestCalculateQuote_WithMock(t *testing.T) {
	router, quotes, _, tokens := setupRouterWithMocks(t)
	identity := model.BrokerIdentity{AccountID: "acct-9", IsBroker: true}

	tokens.On("Verify", "broker-token").Return(identity, nil).Once()
	quotes.On("Calculate", mock.Anything, mock.MatchedBy(func(r dto.QuoteRequest) bool {
		return r.PaperStockID == "14pt-matte" && r.Quantity == 500 && r.CategoryID == "postcards"
	}), identity).Return(model.ProductConfiguration{}, model.PriceCalculation{Quantity: 500}, nil).Once()

	w := serve(router, http.MethodPost, "/api/quotes/calculate", validQuoteBody, "broker-token")

	assert.Equal(t, http.StatusOK, w.Code)
	var calc model.PriceCalculation
	decodeData(t, w, &calc)
	assert.Equal(t, 500, calc.Quantity)
}

func TestSaveQuote(t *testing.T) {
	t.Run("persists and returns id", func(t *testing.T) {
		router, quotes, _, _ := setupRouterWithMocks(t)
		createdAt := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
		quotes.On("Save", mock.Anything, mock.AnythingOfType("dto.QuoteRequest"), model.BrokerIdentity{}).
			Return(&model.Quote{ID: "quote-1", CreatedAt: createdAt, Calculation: model.PriceCalculation{Quantity: 500}}, nil).Once()

		w := serve(router, http.MethodPost, "/api/quotes", validQuoteBody, "")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "/api/quotes/quote-1", w.Header().Get("Location"))
		var created dto.QuoteCreatedResponse
		decodeData(t, w, &created)
		assert.Equal(t, "quote-1", created.ID)
		assert.Equal(t, 500, created.Calculation.Quantity)
		assert.True(t, createdAt.Equal(created.CreatedAt))
	})

	t.Run("storage not configured", func(t *testing.T) {
		router, _ := setupRouter()

		w := serve(router, http.MethodPost, "/api/quotes", validQuoteBody, "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, dto.ErrCodeServiceUnavailable, decodeError(t, w).Error)
	})

	t.Run("validation failure does not reach the service", func(t *testing.T) {
		router, _, _, _ := setupRouterWithMocks(t)

		w := serve(router, http.MethodPost, "/api/quotes", `{"paper_stock_id":"14pt-matte","quantity":10,"sides":"single","turnaround_id":"standard"}`, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w).Details, "size_id")
	})
}

func TestGetQuote(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*mocks.MockQuoteService)
		expectedStatus int
	}{
		{
			name: "found",
			setupMock: func(m *mocks.MockQuoteService) {
				m.On("Get", mock.Anything, "quote-1").Return(&model.Quote{ID: "quote-1", AccountID: "acct-1"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found",
			setupMock: func(m *mocks.MockQuoteService) {
				m.On("Get", mock.Anything, "quote-1").Return(nil, service.ErrQuoteNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "storage failure",
			setupMock: func(m *mocks.MockQuoteService) {
				m.On("Get", mock.Anything, "quote-1").Return(nil, assert.AnError).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name: "storage deadline passed",
			setupMock: func(m *mocks.MockQuoteService) {
				m.On("Get", mock.Anything, "quote-1").Return(nil, fmt.Errorf("find quote: %w", context.DeadlineExceeded)).Once()
			},
			expectedStatus: http.StatusGatewayTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, quotes, _, _ := setupRouterWithMocks(t)
			tt.setupMock(quotes)

			w := serve(router, http.MethodGet, "/api/quotes/quote-1", "", "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var quote model.Quote
				decodeData(t, w, &quote)
				assert.Equal(t, "acct-1", quote.AccountID)
			}
		})
	}
}

func TestListQuotes(t *testing.T) {
	t.Run("requires an account", func(t *testing.T) {
		router, _, _, _ := setupRouterWithMocks(t)

		w := serve(router, http.MethodGet, "/api/quotes", "", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "A broker token is required to list quotes", decodeError(t, w).Message)
	})

	t.Run("lists the caller's quotes", func(t *testing.T) {
		router, quotes, _, tokens := setupRouterWithMocks(t)
		identity := model.BrokerIdentity{AccountID: "acct-1", IsBroker: true}
		tokens.On("Verify", "broker-token").Return(identity, nil).Once()
		quotes.On("ListByAccount", mock.Anything, "acct-1", 10).
			Return([]model.Quote{{ID: "quote-2"}, {ID: "quote-1"}}, nil).Once()

		w := serve(router, http.MethodGet, "/api/quotes?limit=10", "", "broker-token")

		assert.Equal(t, http.StatusOK, w.Code)
		var list dto.QuoteListResponse
		decodeData(t, w, &list)
		assert.Equal(t, 2, list.Count)
		assert.Equal(t, "quote-2", list.Quotes[0].ID)
	})
}

func TestGetCatalog(t *testing.T) {
	router, _ := setupRouter()

	w := serve(router, http.MethodGet, "/api/catalog", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var cat model.Catalog
	decodeData(t, w, &cat)
	_, ok := cat.PaperStock("14pt-matte")
	assert.True(t, ok)
	assert.NotEmpty(t, cat.Sizes)
	assert.NotEmpty(t, cat.Turnarounds)
	assert.NotEmpty(t, cat.BrokerDiscounts)
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := setupRouter()

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "liveness",
			path:           "/healthz",
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"ok"`,
		},
		{
			name:           "readiness",
			path:           "/readyz",
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"ok"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, http.MethodGet, tt.path, "", "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func BenchmarkCalculateQuote(b *testing.B) {
	router, _ := setupRouter()
	body := []byte(validQuoteBody)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/quotes/calculate", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}
