package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/print-pricing-service/internal/circuitbreaker"
	"github.com/guttosm/print-pricing-service/internal/domain/dto"
	"github.com/guttosm/print-pricing-service/internal/i18n"
	"github.com/guttosm/print-pricing-service/internal/metrics"
	"github.com/guttosm/print-pricing-service/internal/middleware"
	"github.com/guttosm/print-pricing-service/internal/service"
)

// loggingServiceKey is the gin context key the router stores the audit logging service under.
const loggingServiceKey = "logging_service"

// Handler provides HTTP handlers for quote and catalog routes.
type Handler struct {
	quotes  service.QuoteService
	catalog service.CatalogService
}

// NewHandler creates a new Handler instance.
func NewHandler(quotes service.QuoteService, catalog service.CatalogService) *Handler {
	return &Handler{
		quotes:  quotes,
		catalog: catalog,
	}
}

// Calculate handles POST /api/quotes/calculate requests.
//
// @Summary      Calculate a price
// @Description  Prices a print product configuration without saving it. Runs the base price, broker or tagline discount, exact-size markup, turnaround markup and add-on stages. A broker token applies the category's broker discount. Supports idempotency via Idempotency-Key header.
// @Tags         Quotes
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        Authorization header string false "Broker bearer token"
// @Param        request body dto.QuoteRequest true "Product configuration"
// @Success      200 {object} dto.SuccessResponse "Price calculation"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input or unknown catalog id"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid broker token"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/quotes/calculate [post]
func (h *Handler) Calculate(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bindQuoteRequest(c, builder)
	if !ok {
		return
	}

	identity := middleware.GetBrokerIdentity(c)

	_, calc, err := h.quotes.Calculate(c.Request.Context(), *req, identity)
	if err != nil {
		recordRejected(err)
		writeServiceError(builder, err)
		return
	}

	if ls := loggingService(c); ls != nil {
		middleware.AuditLog(ls, c, middleware.ActionQuote, "Price calculated", map[string]interface{}{
			"paper_stock_id": req.PaperStockID,
			"quantity":       req.Quantity,
			"subtotal":       calc.CalculatedProductSubtotal.String(),
		})
	}

	builder.SuccessOK(calc)
}

// Save handles POST /api/quotes requests.
//
// @Summary      Save a quote
// @Description  Prices a product configuration and persists the result. The quote is attributed to the broker token's account when one is presented.
// @Tags         Quotes
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        Authorization header string false "Broker bearer token"
// @Param        request body dto.QuoteRequest true "Product configuration"
// @Success      201 {object} dto.SuccessResponse{data=dto.QuoteCreatedResponse} "Saved quote"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input or unknown catalog id"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid broker token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable - quote storage not configured"
// @Security     BearerAuth
// @Router       /api/quotes [post]
func (h *Handler) Save(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bindQuoteRequest(c, builder)
	if !ok {
		return
	}

	identity := middleware.GetBrokerIdentity(c)

	quote, err := h.quotes.Save(c.Request.Context(), *req, identity)
	if err != nil {
		recordRejected(err)
		if ls := loggingService(c); ls != nil {
			middleware.AuditLogError(ls, c, middleware.ActionSaveQuote, "Quote save failed", err, nil)
		}
		writeServiceError(builder, err)
		return
	}

	if ls := loggingService(c); ls != nil {
		middleware.AuditLog(ls, c, middleware.ActionSaveQuote, "Quote saved", map[string]interface{}{
			"quote_id": quote.ID,
			"subtotal": quote.Calculation.CalculatedProductSubtotal.String(),
		})
	}

	c.Header("Location", "/api/quotes/"+quote.ID)
	builder.SuccessCreated(dto.QuoteCreatedResponse{
		ID:          quote.ID,
		Calculation: quote.Calculation,
		CreatedAt:   quote.CreatedAt,
	})
}

// Get handles GET /api/quotes/:id requests.
//
// @Summary      Get a saved quote
// @Description  Returns a persisted quote with its resolved configuration and calculation
// @Tags         Quotes
// @Produce      json
// @Param        id path string true "Quote id"
// @Success      200 {object} dto.SuccessResponse{data=model.Quote} "Saved quote"
// @Failure      404 {object} dto.ErrorResponse "Quote not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable - quote storage not configured"
// @Router       /api/quotes/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	builder := NewResponseBuilder(c)

	quote, err := h.quotes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(builder, err)
		return
	}

	builder.SuccessOK(quote)
}

// List handles GET /api/quotes requests.
//
// @Summary      List saved quotes
// @Description  Returns the saved quotes of the account carried by the broker token, newest first
// @Tags         Quotes
// @Produce      json
// @Param        Authorization header string true "Broker bearer token"
// @Param        limit query int false "Maximum number of quotes (1-50)"
// @Success      200 {object} dto.SuccessResponse{data=dto.QuoteListResponse} "Saved quotes"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - account required"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable - quote storage not configured"
// @Security     BearerAuth
// @Router       /api/quotes [get]
func (h *Handler) List(c *gin.Context) {
	builder := NewResponseBuilder(c)

	identity := middleware.GetBrokerIdentity(c)
	if identity.AccountID == "" {
		builder.Error(http.StatusUnauthorized, i18n.ErrKeyAccountRequired, nil)
		return
	}

	quotes, err := h.quotes.ListByAccount(c.Request.Context(), identity.AccountID, queryInt(c, "limit"))
	if err != nil {
		writeServiceError(builder, err)
		return
	}

	builder.SuccessOK(dto.QuoteListResponse{Quotes: quotes, Count: len(quotes)})
}

// GetCatalog handles GET /api/catalog requests.
//
// @Summary      Get the active catalog
// @Description  Returns the paper stocks, sizes, turnaround times and broker discounts quotes are priced against
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=model.Catalog} "Active catalog"
// @Router       /api/catalog [get]
func (h *Handler) GetCatalog(c *gin.Context) {
	NewResponseBuilder(c).SuccessOK(h.catalog.GetCatalog(c.Request.Context()))
}

// bindQuoteRequest decodes and validates a quote request, writing the error response on failure.
func bindQuoteRequest(c *gin.Context, builder *ResponseBuilder) (*dto.QuoteRequest, bool) {
	req, err := decodeJSON[dto.QuoteRequest](c)
	if err != nil {
		if fieldErrors(err) != nil {
			metrics.RecordRejectedCalculation(metrics.CalculationValidationError)
		}
		writeBindError(builder, i18n.ErrKeyValidationQuote, err)
		return nil, false
	}
	return req, true
}

// isCatalogError reports whether err rejects the request's catalog references.
func isCatalogError(err error) bool {
	return errors.Is(err, service.ErrPaperStockNotFound) ||
		errors.Is(err, service.ErrSizeNotFound) ||
		errors.Is(err, service.ErrTurnaroundNotFound) ||
		errors.Is(err, service.ErrCategoryNotFound) ||
		errors.Is(err, service.ErrCategoryMismatch)
}

// recordRejected counts requests the catalog refused. The engine counts everything it prices.
func recordRejected(err error) {
	if isCatalogError(err) {
		metrics.RecordRejectedCalculation(metrics.CalculationInvalid)
	}
}

// writeServiceError maps service errors onto HTTP responses.
func writeServiceError(builder *ResponseBuilder, err error) {
	switch {
	case errors.Is(err, service.ErrPaperStockNotFound):
		builder.Error(http.StatusBadRequest, i18n.ErrKeyPaperStockNotFound, err)
	case errors.Is(err, service.ErrSizeNotFound):
		builder.Error(http.StatusBadRequest, i18n.ErrKeySizeNotFound, err)
	case errors.Is(err, service.ErrTurnaroundNotFound):
		builder.Error(http.StatusBadRequest, i18n.ErrKeyTurnaroundNotFound, err)
	case errors.Is(err, service.ErrCategoryNotFound):
		builder.Error(http.StatusBadRequest, i18n.ErrKeyCategoryNotFound, err)
	case errors.Is(err, service.ErrCategoryMismatch):
		builder.Error(http.StatusBadRequest, i18n.ErrKeyCategoryMismatch, err)
	case errors.Is(err, service.ErrQuoteNotFound):
		builder.Error(http.StatusNotFound, i18n.ErrKeyQuoteNotFound, err)
	case errors.Is(err, service.ErrBrokerDiscountNotFound):
		builder.Error(http.StatusNotFound, i18n.ErrKeyBrokerDiscountNotFound, err)
	case errors.Is(err, service.ErrRepositoryNotConfigured), errors.Is(err, circuitbreaker.ErrCircuitOpen):
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		builder.Error(http.StatusGatewayTimeout, i18n.ErrKeyTimeout, err)
	default:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

// loggingService returns the audit logging service stored on the context, if any.
func loggingService(c *gin.Context) service.LoggingService {
	v, exists := c.Get(loggingServiceKey)
	if !exists {
		return nil
	}
	ls, _ := v.(service.LoggingService)
	return ls
}

// queryInt parses a positive integer query parameter, returning 0 when absent or invalid.
func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
