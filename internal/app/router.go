package app

import (
	"context"
	"sort"

	"github.com/guttosm/print-pricing-service/config"
	"github.com/guttosm/print-pricing-service/internal/http"
	"github.com/guttosm/print-pricing-service/internal/repository"
	"github.com/guttosm/print-pricing-service/internal/service"
)

// RouterComponents is what NewRouter needs: readiness checks and route settings.
type RouterComponents struct {
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter maps the loaded settings and services onto a RouterConfig.
// Without MongoDB there is no audit trail and /readyz checks nothing.
func InitializeRouter(services *ServiceComponents, dbComponents *DatabaseComponents, cfg config.Config) *RouterComponents {
	var loggingService service.LoggingService
	healthHandler := http.NewHealthHandler()

	if dbComponents != nil {
		loggingService = dbComponents.LoggingService

		names := make([]string, 0, len(dbComponents.CircuitBreakers))
		for name := range dbComponents.CircuitBreakers {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			healthHandler.RegisterCircuitBreaker(name, dbComponents.CircuitBreakers[name])
		}

		if dbComponents.DB != nil {
			healthHandler.RegisterChecker("mongodb", mongoChecker{db: dbComponents.DB})
		}
	}

	routerCfg := http.RouterConfig{
		RateLimit:          cfg.Server.RateLimit,
		AccountRateLimit:   cfg.Server.AccountRateLimit,
		RateWindow:         cfg.Server.RateWindow,
		EnableAuth:         cfg.Auth.Enabled,
		APIKeys:            cfg.Auth.APIKeys,
		EnableIdempotency:  true,
		CORSOrigins:        cfg.Server.CORSOrigins,
		SwaggerUser:        cfg.Server.SwaggerUser,
		SwaggerPass:        cfg.Server.SwaggerPass,
		RequestTimeout:     cfg.Server.RequestTimeout,
		LoggingService:     loggingService,
		QuoteService:       services.Quotes,
		CatalogService:     services.Catalog,
		BrokerTokenService: services.BrokerTokens,
	}

	return &RouterComponents{
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}

// mongoChecker reports MongoDB reachability on /readyz.
type mongoChecker struct {
	db *repository.MongoDB
}

func (m mongoChecker) Check(ctx context.Context) error {
	return m.db.HealthCheck(ctx)
}
