package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/print-pricing-service/internal/domain/dto"
	"github.com/guttosm/print-pricing-service/internal/i18n"
	"golang.org/x/crypto/bcrypt"
)

// Admin routes accept the key in the header or, for browser use, the query string.
const (
	APIKeyHeader = "X-API-Key"
	APIKeyQuery  = "api_key"
)

// IsBcryptHash reports whether a configured key is a bcrypt hash.
func IsBcryptHash(key string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// keyring holds the enabled admin keys. Plain keys compare in constant time;
// hashes are checked only when no plain key matched.
type keyring struct {
	plain  [][]byte
	hashed [][]byte
}

func newKeyring(configured map[string]bool) keyring {
	var kr keyring
	for key, enabled := range configured {
		switch {
		case !enabled || key == "":
		case IsBcryptHash(key):
			kr.hashed = append(kr.hashed, []byte(key))
		default:
			kr.plain = append(kr.plain, []byte(key))
		}
	}
	return kr
}

func (kr keyring) size() int { return len(kr.plain) + len(kr.hashed) }

func (kr keyring) accepts(presented string) bool {
	p := []byte(presented)
	for _, k := range kr.plain {
		if subtle.ConstantTimeCompare(k, p) == 1 {
			return true
		}
	}
	for _, h := range kr.hashed {
		if bcrypt.CompareHashAndPassword(h, p) == nil {
			return true
		}
	}
	return false
}

func presentedKey(c *gin.Context) string {
	if key := c.GetHeader(APIKeyHeader); key != "" {
		return key
	}
	return c.Query(APIKeyQuery)
}

// APIKeyAuth guards the admin routes (catalog reload, broker discounts, audit
// log). Keys may be plain or bcrypt hashes as printed by `pricectl keys`.
// With no enabled key the guard lets everything through.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	kr := newKeyring(validKeys)

	return func(c *gin.Context) {
		if kr.size() == 0 {
			c.Next()
			return
		}

		key := presentedKey(c)
		switch {
		case key == "":
			rejectAdmin(c, i18n.ErrKeyAPIKeyRequired)
		case !kr.accepts(key):
			rejectAdmin(c, i18n.ErrKeyInvalidAPIKey)
		default:
			c.Next()
		}
	}
}

func rejectAdmin(c *gin.Context, messageKey string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewError(dto.ErrCodeUnauthorized, i18n.Message(c, messageKey)).WithRequestID(GetRequestID(c)))
}
