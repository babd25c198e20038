package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/guttosm/print-pricing-service/internal/logger"
	"github.com/guttosm/print-pricing-service/internal/service"
)

// unstoredPaths are polled by the orchestrator and Prometheus. They are logged
// to the console but never written to the logs collection.
var unstoredPaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
}

// RequestLogger writes one line per request and, when loggingService is set,
// ships the same entry to the logs collection tagged with the broker account.
func RequestLogger(loggingService service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := requestEntry(c, start)
		logRequest(entry)

		if loggingService != nil && !unstoredPaths[entry.Path] && !strings.HasPrefix(entry.Path, "/swagger/") {
			shipLogEntry(loggingService, entry)
		}
	}
}

func requestEntry(c *gin.Context, start time.Time) *model.LogEntry {
	status := c.Writer.Status()
	identity := GetBrokerIdentity(c)

	entry := &model.LogEntry{
		Timestamp:  start.UTC(),
		Level:      getLogLevel(status),
		Message:    "HTTP request",
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		StatusCode: status,
		Duration:   time.Since(start).Milliseconds(),
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		AccountID:  identity.AccountID,
		IsBroker:   identity.IsBroker,
	}
	if last := c.Errors.Last(); last != nil {
		entry.Error = last.Error()
	}
	return entry
}

func logRequest(entry *model.LogEntry) {
	l := logger.Logger()
	event := l.Info()
	switch entry.Level {
	case "error":
		event = l.Error()
	case "warn":
		event = l.Warn()
	}

	event.
		Str("request_id", entry.RequestID).
		Str("method", entry.Method).
		Str("path", entry.Path).
		Int("status_code", entry.StatusCode).
		Int64("duration_ms", entry.Duration).
		Str("ip", entry.IP)
	if entry.AccountID != "" {
		event.Str("account_id", entry.AccountID).Bool("is_broker", entry.IsBroker)
	}
	if entry.Error != "" {
		event.Str("error", entry.Error)
	}
	event.Msg(entry.Message)
}

// getLogLevel maps a response status to the entry level.
func getLogLevel(statusCode int) string {
	switch {
	case statusCode >= 500:
		return "error"
	case statusCode >= 400:
		return "warn"
	default:
		return "info"
	}
}
