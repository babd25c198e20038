package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/print-pricing-service/internal/domain/dto"
	"github.com/guttosm/print-pricing-service/internal/i18n"
	"github.com/guttosm/print-pricing-service/internal/logger"
)

// ErrorHandler answers 500 when a handler recorded an error without writing a
// response. Errors that already have a response are left to RequestLogger.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}

		l := logger.Logger()
		l.Error().
			Err(last.Err).
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("errors", len(c.Errors)).
			Msg("Handler failed without a response")

		writeInternalError(c)
	}
}

// writeInternalError aborts with the translated internal_error envelope.
func writeInternalError(c *gin.Context) {
	message := i18n.Message(c, i18n.ErrKeyInternalError)
	c.AbortWithStatusJSON(http.StatusInternalServerError,
		dto.NewError(dto.ErrCodeInternal, message).WithRequestID(GetRequestID(c)))
}
