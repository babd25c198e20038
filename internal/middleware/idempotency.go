package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/print-pricing-service/internal/domain/dto"
	"github.com/guttosm/print-pricing-service/internal/i18n"
)

const (
	// IdempotencyKeyHeader carries the client's idempotency key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader is set on responses served from a stored outcome.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long an outcome can be replayed.
	IdempotencyKeyTTL = 15 * time.Minute
	// maxIdempotencyKeyLen bounds the accepted key length.
	maxIdempotencyKeyLen = 255
)

// IdempotencyConfig holds configuration for the idempotency middleware.
type IdempotencyConfig struct {
	Store   *replayStore
	Enabled bool
}

// DefaultIdempotencyConfig returns an enabled config with its own store.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		Store:   newReplayStore(IdempotencyKeyTTL),
		Enabled: true,
	}
}

// Idempotency replays the stored response when a POST is retried with the same
// Idempotency-Key, body and broker token. Retrying a quote save this way returns
// the first saved quote instead of saving a second one. A retry that arrives while
// the first request is still running gets 409. Only 2xx outcomes are stored.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Store == nil {
		return func(c *gin.Context) { c.Next() }
	}
	store := cfg.Store

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if c.Request.Method != http.MethodPost || key == "" {
			c.Next()
			return
		}

		if len(key) > maxIdempotencyKeyLen {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewError(dto.ErrCodeInvalidRequest, i18n.Message(c, i18n.ErrKeyInvalidRequest)).
					WithRequestID(GetRequestID(c)))
			return
		}

		fingerprint := requestFingerprint(key, c.Request)
		if rec, reserved := store.reserve(fingerprint); !reserved {
			if rec.pending {
				c.AbortWithStatusJSON(http.StatusConflict,
					dto.NewError(dto.ErrCodeConflict, i18n.Message(c, i18n.ErrKeyConflict)).
						WithRequestID(GetRequestID(c)))
				return
			}
			if rec.location != "" {
				c.Header("Location", rec.location)
			}
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(rec.status, rec.contentType, rec.body)
			c.Abort()
			return
		}

		stored := false
		defer func() {
			if !stored {
				store.release(fingerprint)
			}
		}()

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder
		c.Next()

		status := recorder.Status()
		if status < 200 || status >= 300 {
			return
		}
		store.complete(fingerprint, replayRecord{
			status:      status,
			contentType: recorder.Header().Get("Content-Type"),
			location:    recorder.Header().Get("Location"),
			body:        recorder.body.Bytes(),
		})
		stored = true
	}
}

// requestFingerprint ties a key to the route, the caller's token and the body,
// so a key reused with a different quote configuration is handled afresh.
func requestFingerprint(key string, req *http.Request) string {
	h := sha256.New()
	for _, part := range []string{key, req.Method, req.URL.Path, req.Header.Get(AuthorizationHeader)} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewReader(body))
		h.Write(body)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// bodyRecorder keeps a copy of the response body while writing it through.
type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
