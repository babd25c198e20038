package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/print-pricing-service/internal/middleware"
	"github.com/guttosm/print-pricing-service/internal/service"
)

// AdminRoutes handles broker discount and audit log route registration.
type AdminRoutes struct {
	handler *AdminHandler
}

// NewAdminRoutes creates a new AdminRoutes instance.
func NewAdminRoutes(catalog service.CatalogService, logs service.LoggingService) *AdminRoutes {
	return &AdminRoutes{handler: NewAdminHandler(catalog, logs)}
}

// RegisterRoutes registers the admin routes under /admin.
// When auth is enabled and API keys are configured the group requires an API key.
func (r *AdminRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	admin := rg.Group("/admin")
	if cfg.EnableAuth && len(cfg.APIKeys) > 0 {
		admin.Use(middleware.APIKeyAuth(cfg.APIKeys))
	}

	admin.GET("/broker-discounts", r.handler.ListBrokerDiscounts)
	admin.PUT("/broker-discounts/:category", r.handler.UpsertBrokerDiscount)
	admin.DELETE("/broker-discounts/:category", r.handler.DeleteBrokerDiscount)
	admin.GET("/audit-logs", r.handler.QueryAuditLogs)
}
