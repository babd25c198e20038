package middleware

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/print-pricing-service/internal/logger"
)

// Recovery turns a panic in a handler into a 500 and logs the stack.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			l := logger.Logger()
			l.Error().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("Panic recovered")

			if c.Writer.Written() {
				c.Abort()
				return
			}
			writeInternalError(c)
		}()
		c.Next()
	}
}
