package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/print-pricing-service/internal/domain/dto"
	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/guttosm/print-pricing-service/internal/i18n"
	"github.com/guttosm/print-pricing-service/internal/service"
)

const (
	// AuthorizationHeader carries the optional broker bearer token.
	AuthorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "

	// Context keys set by BrokerAuth.
	contextKeyAccountID = "account_id"
	contextKeyIsBroker  = "is_broker"
)

// BrokerAuth returns a middleware that resolves the caller's broker identity.
// Requests without an Authorization header continue as anonymous retail customers.
// A header that is present but malformed or fails verification is rejected with 401.
func BrokerAuth(tokens service.BrokerTokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(AuthorizationHeader)
		if header == "" || tokens == nil {
			c.Next()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if !strings.HasPrefix(header, bearerPrefix) || tokenString == "" {
			abortInvalidToken(c)
			return
		}

		identity, err := tokens.Verify(tokenString)
		if err != nil {
			_ = c.Error(err)
			abortInvalidToken(c)
			return
		}

		SetBrokerIdentity(c, identity)
		c.Next()
	}
}

func abortInvalidToken(c *gin.Context) {
	message := i18n.Message(c, i18n.ErrKeyInvalidToken)
	errorResp := dto.NewError(dto.ErrCodeUnauthorized, message).
		WithRequestID(GetRequestID(c))
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
}

// SetBrokerIdentity stores the caller's identity in the gin context.
func SetBrokerIdentity(c *gin.Context, identity model.BrokerIdentity) {
	c.Set(contextKeyAccountID, identity.AccountID)
	c.Set(contextKeyIsBroker, identity.IsBroker)
}

// GetBrokerIdentity returns the caller's identity, or the zero (retail) identity.
func GetBrokerIdentity(c *gin.Context) model.BrokerIdentity {
	return model.BrokerIdentity{
		AccountID: c.GetString(contextKeyAccountID),
		IsBroker:  c.GetBool(contextKeyIsBroker),
	}
}
