package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/guttosm/print-pricing-service/internal/i18n"
	"github.com/guttosm/print-pricing-service/internal/metrics"
	"github.com/guttosm/print-pricing-service/internal/middleware"
	"github.com/guttosm/print-pricing-service/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig wires services and limits into NewRouter. A nil service
// leaves its routes unregistered.
type RouterConfig struct {
	// RateLimit is per client IP across every route; AccountRateLimit is per
	// broker account (or IP for retail callers) on /api.
	RateLimit        int
	AccountRateLimit int
	RateWindow       time.Duration

	APIKeys           map[string]bool
	EnableAuth        bool
	EnableIdempotency bool
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
	RequestTimeout    time.Duration

	LoggingService     service.LoggingService
	QuoteService       service.QuoteService
	CatalogService     service.CatalogService
	BrokerTokenService service.BrokerTokenService
}

// DefaultRouterConfig has no services and no admin auth.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:        100,
		AccountRateLimit: 100,
		RateWindow:       time.Minute,
		RequestTimeout:   30 * time.Second,
	}
}

var defaultCORSOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = defaultCORSOrigins
	}
	return cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization",
			middleware.APIKeyHeader, middleware.IdempotencyKeyHeader, middleware.RequestIDHeader,
		},
		ExposeHeaders: []string{
			middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining",
			middleware.IdempotencyReplayedHeader, "Location",
		},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
}

// NewRouter builds the engine. Every route gets CORS, request ids, panic
// recovery, metrics, compression, request logging and the per-IP limit; /api
// adds idempotency, the deadline, broker identity and the per-account limit
// in that order.
func NewRouter(healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	useJSONFieldNames()
	router := gin.New()

	router.Use(
		cors.New(corsConfig(cfg.CORSOrigins)),
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.LoggingService),
		middleware.ErrorHandler(),
		withLoggingService(cfg.LoggingService),
	)
	if cfg.RateLimit > 0 {
		router.Use(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow).ByIP())
	}

	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	mountSwagger(router, cfg.SwaggerUser, cfg.SwaggerPass)
	router.NoRoute(func(c *gin.Context) {
		NewResponseBuilder(c).Error(http.StatusNotFound, i18n.ErrKeyNotFound, nil)
	})

	api := router.Group("/api", apiMiddleware(&cfg)...)
	for _, group := range routeGroups(&cfg) {
		group.RegisterRoutes(api, &cfg)
	}
	return router
}

// withLoggingService exposes the audit sink to handlers.
func withLoggingService(logs service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if logs != nil {
			c.Set(loggingServiceKey, logs)
		}
		c.Next()
	}
}

func mountSwagger(router *gin.Engine, user, pass string) {
	docs := router.Group("/swagger")
	if user != "" && pass != "" {
		docs.Use(gin.BasicAuth(gin.Accounts{user: pass}))
	}
	docs.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func apiMiddleware(cfg *RouterConfig) []gin.HandlerFunc {
	var chain []gin.HandlerFunc
	if cfg.EnableIdempotency {
		chain = append(chain, middleware.Idempotency(middleware.DefaultIdempotencyConfig()))
	}
	if cfg.RequestTimeout > 0 {
		chain = append(chain, middleware.RequestDeadline(cfg.RequestTimeout))
	}
	// An absent token prices at retail; a bad one is rejected.
	if cfg.BrokerTokenService != nil {
		chain = append(chain, middleware.BrokerAuth(cfg.BrokerTokenService))
	}
	if cfg.AccountRateLimit > 0 {
		chain = append(chain, middleware.NewRateLimiter(cfg.AccountRateLimit, cfg.RateWindow).ByAccount())
	}
	return chain
}

func routeGroups(cfg *RouterConfig) []RouteGroup {
	var groups []RouteGroup
	if cfg.QuoteService != nil && cfg.CatalogService != nil {
		groups = append(groups, NewQuoteRoutes(cfg.QuoteService, cfg.CatalogService))
	}
	if cfg.CatalogService != nil {
		groups = append(groups, NewAdminRoutes(cfg.CatalogService, cfg.LoggingService))
	}
	return groups
}
