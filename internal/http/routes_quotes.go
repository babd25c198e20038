package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/print-pricing-service/internal/service"
)

// QuoteRoutes handles quote and catalog route registration.
type QuoteRoutes struct {
	handler *Handler
}

// NewQuoteRoutes creates a new QuoteRoutes instance.
func NewQuoteRoutes(quotes service.QuoteService, catalog service.CatalogService) *QuoteRoutes {
	return &QuoteRoutes{handler: NewHandler(quotes, catalog)}
}

// RegisterRoutes registers the quote and catalog routes.
// Broker identity is resolved by the API group middleware.
func (r *QuoteRoutes) RegisterRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	quotes := rg.Group("/quotes")
	{
		quotes.POST("/calculate", r.handler.Calculate)
		quotes.POST("", r.handler.Save)
		quotes.GET("", r.handler.List)
		quotes.GET("/:id", r.handler.Get)
	}
	rg.GET("/catalog", r.handler.GetCatalog)
}
