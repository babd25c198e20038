// Package metrics exports the service's Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// Outcomes for price_calculations_total. The pricing engine records the
// first two; the handler records requests rejected before pricing.
const (
	CalculationSuccess         = "success"
	CalculationCached          = "cached"
	CalculationValidationError = "validation_error"
	CalculationInvalid         = "invalid"
)

var httpLabels = []string{"method", "path", "status_code"}

var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, httpLabels)

	HTTPRequestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by route and status.",
	}, httpLabels)

	PriceCalculationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "price_calculations_total",
		Help: "Quote calculations by outcome.",
	}, []string{"status"})

	// PriceCalculationDuration covers the pricing pipeline only, cache hits included.
	PriceCalculationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "price_calculation_duration_seconds",
		Help:    "Time spent pricing one quote.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
	})

	QuoteSubtotal = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quote_subtotal_dollars",
		Help:    "Product subtotal before shipping and tax of freshly priced quotes.",
		Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})

	// CircuitBreakerState is 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "circuit_breaker_state",
		Help: "Store circuit breaker state (0 closed, 1 open, 2 half-open).",
	}, []string{"name"})

	CacheOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_operations_total",
		Help: "Quote cache operations by result.",
	}, []string{"operation", "result"})
)

// PrometheusMiddleware records latency and count per route template, so
// /api/quotes/:id stays one series.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		labels := prometheus.Labels{
			"method":      c.Request.Method,
			"path":        route,
			"status_code": strconv.Itoa(c.Writer.Status()),
		}
		HTTPRequestDuration.With(labels).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.With(labels).Inc()
	}
}

// RecordPriceCalculation is called once per quote the engine answers.
func RecordPriceCalculation(took time.Duration, status string) {
	PriceCalculationDuration.Observe(took.Seconds())
	PriceCalculationsTotal.WithLabelValues(status).Inc()
}

// RecordRejectedCalculation counts a quote that never reached the engine.
func RecordRejectedCalculation(status string) {
	PriceCalculationsTotal.WithLabelValues(status).Inc()
}

func ObserveQuoteSubtotal(subtotal decimal.Decimal) {
	QuoteSubtotal.Observe(subtotal.InexactFloat64())
}

func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}
