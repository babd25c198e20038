// Package middleware provides audit logging utilities.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/guttosm/print-pricing-service/internal/service"
)

// Audit action types recorded in LogEntry.ActionType.
const (
	ActionQuote                = "quote"
	ActionSaveQuote            = "save_quote"
	ActionUpdateBrokerDiscount = "update_broker_discount"
	ActionDeleteBrokerDiscount = "delete_broker_discount"
)

// AuditLog records a pricing action for audit purposes.
// Use it for quotes, saved quotes and broker discount changes.
func AuditLog(loggingService service.LoggingService, c *gin.Context, actionType string, message string, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}

	entry := newAuditEntry(c, "info", actionType, message, fields)
	storeAuditEntry(loggingService, entry)
}

// AuditLogError records a failed pricing action for audit purposes.
func AuditLogError(loggingService service.LoggingService, c *gin.Context, actionType string, message string, err error, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}

	entry := newAuditEntry(c, "error", actionType, message, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	storeAuditEntry(loggingService, entry)
}

func newAuditEntry(c *gin.Context, level, actionType, message string, fields map[string]interface{}) *model.LogEntry {
	identity := GetBrokerIdentity(c)
	return &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		AccountID:  identity.AccountID,
		IsBroker:   identity.IsBroker,
		ActionType: actionType,
		Fields:     fields,
	}
}

// storeAuditEntry writes the entry without blocking the request.
func storeAuditEntry(loggingService service.LoggingService, entry *model.LogEntry) {
	shipLogEntry(loggingService, entry)
}
