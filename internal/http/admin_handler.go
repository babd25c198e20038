package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/print-pricing-service/internal/domain/dto"
	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/guttosm/print-pricing-service/internal/i18n"
	"github.com/guttosm/print-pricing-service/internal/middleware"
	"github.com/guttosm/print-pricing-service/internal/service"
)

const (
	defaultAuditLogLimit = 100
	maxAuditLogLimit     = 1000
)

// AdminHandler provides HTTP handlers for broker discount maintenance and audit log queries.
type AdminHandler struct {
	catalog service.CatalogService
	logs    service.LoggingService
}

// NewAdminHandler creates a new AdminHandler instance. logs may be nil when
// MongoDB is not configured; audit log queries then answer 503.
func NewAdminHandler(catalog service.CatalogService, logs service.LoggingService) *AdminHandler {
	return &AdminHandler{
		catalog: catalog,
		logs:    logs,
	}
}

// ListBrokerDiscounts handles GET /api/admin/broker-discounts requests.
//
// @Summary      List broker discounts
// @Description  Returns the active per-category broker discounts
// @Tags         Admin
// @Produce      json
// @Param        X-API-Key header string false "API key (required if auth enabled)"
// @Success      200 {object} dto.SuccessResponse{data=dto.BrokerDiscountsResponse} "Broker discounts"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid API key"
// @Security     ApiKeyAuth
// @Router       /api/admin/broker-discounts [get]
func (h *AdminHandler) ListBrokerDiscounts(c *gin.Context) {
	discounts := h.catalog.ListBrokerDiscounts(c.Request.Context())
	if discounts == nil {
		discounts = []model.BrokerDiscount{}
	}
	NewResponseBuilder(c).SuccessOK(dto.BrokerDiscountsResponse{Discounts: discounts})
}

// UpsertBrokerDiscount handles PUT /api/admin/broker-discounts/:category requests.
//
// @Summary      Set a broker discount
// @Description  Creates or replaces the broker discount of a product category. Cached price calculations are invalidated.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        X-API-Key header string false "API key (required if auth enabled)"
// @Param        category path string true "Product category id"
// @Param        request body dto.UpdateBrokerDiscountRequest true "Discount percentage"
// @Success      200 {object} dto.SuccessResponse{data=model.BrokerDiscount} "Stored discount"
// @Failure      400 {object} dto.ErrorResponse "Bad request - discount out of range"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid API key"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable - storage not configured"
// @Security     ApiKeyAuth
// @Router       /api/admin/broker-discounts/{category} [put]
func (h *AdminHandler) UpsertBrokerDiscount(c *gin.Context) {
	builder := NewResponseBuilder(c)
	category := c.Param("category")

	req, err := decodeJSON[dto.UpdateBrokerDiscountRequest](c)
	if err != nil {
		writeBindError(builder, i18n.ErrKeyValidationDiscount, err)
		return
	}

	discount, err := h.catalog.UpsertBrokerDiscount(c.Request.Context(), category, req.DiscountPercent, req.UpdatedBy)
	if err != nil {
		middleware.AuditLogError(loggingService(c), c, middleware.ActionUpdateBrokerDiscount,
			"Broker discount update failed", err, map[string]interface{}{"category_id": category})
		writeServiceError(builder, err)
		return
	}

	middleware.AuditLog(loggingService(c), c, middleware.ActionUpdateBrokerDiscount, "Broker discount updated", map[string]interface{}{
		"category_id":      category,
		"discount_percent": discount.DiscountPercent.String(),
		"updated_by":       req.UpdatedBy,
	})

	builder.SuccessOK(discount)
}

// DeleteBrokerDiscount handles DELETE /api/admin/broker-discounts/:category requests.
//
// @Summary      Remove a broker discount
// @Description  Removes the broker discount of a product category. Cached price calculations are invalidated.
// @Tags         Admin
// @Param        X-API-Key header string false "API key (required if auth enabled)"
// @Param        category path string true "Product category id"
// @Success      204 "Discount removed"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid API key"
// @Failure      404 {object} dto.ErrorResponse "No discount for this category"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable - storage not configured"
// @Security     ApiKeyAuth
// @Router       /api/admin/broker-discounts/{category} [delete]
func (h *AdminHandler) DeleteBrokerDiscount(c *gin.Context) {
	category := c.Param("category")

	if err := h.catalog.DeleteBrokerDiscount(c.Request.Context(), category); err != nil {
		writeServiceError(NewResponseBuilder(c), err)
		return
	}

	middleware.AuditLog(loggingService(c), c, middleware.ActionDeleteBrokerDiscount, "Broker discount removed", map[string]interface{}{
		"category_id": category,
	})

	c.Status(http.StatusNoContent)
}

// QueryAuditLogs handles GET /api/admin/audit-logs requests.
//
// @Summary      Query audit logs
// @Description  Returns persisted request and audit log entries, newest first
// @Tags         Admin
// @Produce      json
// @Param        X-API-Key header string false "API key (required if auth enabled)"
// @Param        level query string false "Log level"
// @Param        action_type query string false "Audit action (quote, save_quote, update_broker_discount, delete_broker_discount)"
// @Param        account_id query string false "Account id"
// @Param        request_id query string false "Request id"
// @Param        from query string false "Start time (RFC 3339)"
// @Param        to query string false "End time (RFC 3339)"
// @Param        limit query int false "Maximum entries (default 100, max 1000)"
// @Param        skip query int false "Entries to skip"
// @Success      200 {object} dto.SuccessResponse{data=dto.AuditLogsResponse} "Log entries"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid time filter"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid API key"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable - storage not configured"
// @Security     ApiKeyAuth
// @Router       /api/admin/audit-logs [get]
func (h *AdminHandler) QueryAuditLogs(c *gin.Context) {
	builder := NewResponseBuilder(c)

	if h.logs == nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, service.ErrRepositoryNotConfigured)
		return
	}

	opts, details := auditLogQuery(c)
	if details != nil {
		builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, details, nil)
		return
	}

	ctx := c.Request.Context()
	entries, err := h.logs.QueryLogs(ctx, opts)
	if err != nil {
		writeServiceError(builder, err)
		return
	}

	total, err := h.logs.CountLogs(ctx, opts)
	if err != nil {
		writeServiceError(builder, err)
		return
	}

	if entries == nil {
		entries = []model.LogEntry{}
	}
	builder.SuccessOK(dto.AuditLogsResponse{Logs: entries, Total: total})
}

// auditLogQuery reads the audit log filters from the query string.
// It returns per-field details when a time filter cannot be parsed.
func auditLogQuery(c *gin.Context) (model.LogQueryOptions, map[string]string) {
	opts := model.LogQueryOptions{
		Level:      c.Query("level"),
		ActionType: c.Query("action_type"),
		AccountID:  c.Query("account_id"),
		RequestID:  c.Query("request_id"),
		Limit:      queryInt(c, "limit"),
		Skip:       queryInt(c, "skip"),
	}
	if opts.Limit == 0 {
		opts.Limit = defaultAuditLogLimit
	}
	if opts.Limit > maxAuditLogLimit {
		opts.Limit = maxAuditLogLimit
	}

	var details map[string]string
	parseTime := func(name string) *time.Time {
		raw := c.Query(name)
		if raw == "" {
			return nil
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			if details == nil {
				details = make(map[string]string)
			}
			details[name] = "must be an RFC 3339 timestamp"
			return nil
		}
		return &t
	}
	opts.StartTime = parseTime("from")
	opts.EndTime = parseTime("to")

	return opts, details
}
