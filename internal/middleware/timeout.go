package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/print-pricing-service/internal/domain/dto"
	"github.com/guttosm/print-pricing-service/internal/i18n"
)

// RequestDeadline bounds how long an API request may spend on catalog reads,
// discount lookups and quote storage. The handler runs on the request goroutine
// with a deadline on its context; Mongo calls made with that context give up
// when it passes. If the handler wrote nothing by then the client gets 504.
// A non-positive d leaves requests unbounded.
func RequestDeadline(d time.Duration) gin.HandlerFunc {
	if d <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			msg := i18n.Message(c, i18n.ErrKeyTimeout)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout,
				dto.NewError(dto.ErrCodeTimeout, msg).WithRequestID(GetRequestID(c)))
		}
	}
}
