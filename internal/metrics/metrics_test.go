//go:build !integration

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	promdto "github.com/prometheus/client_model/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMiddleware_LabelsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(PrometheusMiddleware())
	router.GET("/api/quotes/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	quote := HTTPRequestTotal.WithLabelValues(http.MethodGet, "/api/quotes/:id", "404")
	unmatched := HTTPRequestTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	beforeQuote, beforeUnmatched := testutil.ToFloat64(quote), testutil.ToFloat64(unmatched)

	for _, path := range []string{"/api/quotes/q-1", "/api/quotes/q-2", "/no/such/route"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, beforeQuote+2, testutil.ToFloat64(quote), "ids collapse into one series")
	assert.Equal(t, beforeUnmatched+1, testutil.ToFloat64(unmatched))
}

func TestRecordPriceCalculation(t *testing.T) {
	success := PriceCalculationsTotal.WithLabelValues(CalculationSuccess)
	cached := PriceCalculationsTotal.WithLabelValues(CalculationCached)
	rejected := PriceCalculationsTotal.WithLabelValues(CalculationValidationError)
	s0, c0, r0 := testutil.ToFloat64(success), testutil.ToFloat64(cached), testutil.ToFloat64(rejected)

	RecordPriceCalculation(120*time.Microsecond, CalculationSuccess)
	RecordPriceCalculation(8*time.Microsecond, CalculationCached)
	RecordRejectedCalculation(CalculationValidationError)

	assert.Equal(t, s0+1, testutil.ToFloat64(success))
	assert.Equal(t, c0+1, testutil.ToFloat64(cached))
	assert.Equal(t, r0+1, testutil.ToFloat64(rejected))
}

func subtotalHistogram(t *testing.T) *promdto.Histogram {
	t.Helper()
	var m promdto.Metric
	require.NoError(t, QuoteSubtotal.Write(&m))
	return m.GetHistogram()
}

func TestObserveQuoteSubtotal(t *testing.T) {
	before := subtotalHistogram(t)

	ObserveQuoteSubtotal(decimal.RequireFromString("162.65"))

	after := subtotalHistogram(t)
	assert.Equal(t, before.GetSampleCount()+1, after.GetSampleCount())
	assert.InDelta(t, before.GetSampleSum()+162.65, after.GetSampleSum(), 1e-9)
}

func TestSetCircuitBreakerState(t *testing.T) {
	SetCircuitBreakerState("mongodb-quotes", 1)
	assert.Equal(t, float64(1), testutil.ToFloat64(CircuitBreakerState.WithLabelValues("mongodb-quotes")))

	SetCircuitBreakerState("mongodb-quotes", 0)
	assert.Equal(t, float64(0), testutil.ToFloat64(CircuitBreakerState.WithLabelValues("mongodb-quotes")))
}

func TestRecordCacheOperation(t *testing.T) {
	hits := CacheOperationsTotal.WithLabelValues("get", "hit")
	before := testutil.ToFloat64(hits)

	RecordCacheOperation("get", "hit")
	RecordCacheOperation("get", "miss")

	assert.Equal(t, before+1, testutil.ToFloat64(hits))
}
