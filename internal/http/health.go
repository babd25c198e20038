package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/print-pricing-service/internal/circuitbreaker"
)

const readinessCheckTimeout = 2 * time.Second

// HealthChecker is a dependency checked on every readiness request.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) error

// Check calls f.
func (f HealthCheckFunc) Check(ctx context.Context) error { return f(ctx) }

// HealthHandler serves /healthz and /readyz.
type HealthHandler struct {
	checkers        map[string]HealthChecker
	circuitBreakers map[string]*circuitbreaker.CircuitBreaker
}

// NewHealthHandler creates a HealthHandler with nothing registered.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers:        make(map[string]HealthChecker),
		circuitBreakers: make(map[string]*circuitbreaker.CircuitBreaker),
	}
}

// RegisterChecker adds a dependency to the readiness check.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// RegisterCircuitBreaker reports a store breaker under "<name>_circuit".
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	if cb != nil {
		h.circuitBreakers[name] = cb
	}
}

// Register mounts /healthz and /readyz.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// ReadinessReport is the /readyz body.
type ReadinessReport struct {
	Status string            `json:"status" example:"ok"`
	Checks map[string]string `json:"checks"`
} // @name ReadinessReport

// Liveness answers /healthz.
// @Summary     Liveness check
// @Description Answers 200 while the process is serving. Metrics are at /metrics.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness answers /readyz.
// @Summary     Readiness check
// @Description Runs every registered dependency check and reports store circuit breakers.
// @Description A failing check or an open breaker answers 503. A half-open breaker stays
// @Description ready so trial traffic can close it.
// @Tags        Health
// @Produce     json
// @Success     200 {object} ReadinessReport "Service is ready"
// @Failure     503 {object} ReadinessReport "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessCheckTimeout)
	defer cancel()

	report := ReadinessReport{Status: "ok", Checks: h.runChecks(ctx)}
	ready := true
	for _, result := range report.Checks {
		if result != "ok" {
			ready = false
		}
	}

	for name, cb := range h.circuitBreakers {
		state := cb.State()
		report.Checks[name+"_circuit"] = state.String()
		if state == circuitbreaker.StateOpen {
			ready = false
		}
	}

	if len(report.Checks) == 0 {
		report.Checks["service"] = "ok"
	}

	status := http.StatusOK
	if !ready {
		report.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}

// runChecks calls every checker concurrently and returns "ok" or the error text per name.
func (h *HealthHandler) runChecks(ctx context.Context) map[string]string {
	results := make(map[string]string, len(h.checkers)+len(h.circuitBreakers))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for name, checker := range h.checkers {
		wg.Add(1)
		go func(name string, checker HealthChecker) {
			defer wg.Done()
			result := "ok"
			if err := checker.Check(ctx); err != nil {
				result = err.Error()
			}
			mu.Lock()
			results[name] = result
			mu.Unlock()
		}(name, checker)
	}
	wg.Wait()
	return results
}
