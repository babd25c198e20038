package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
	"github.com/guttosm/print-pricing-service/internal/domain/dto"
	"github.com/guttosm/print-pricing-service/internal/i18n"
)

// limiterPartitions is how many independently locked counter maps a limiter keeps.
const limiterPartitions = 16

// RateLimiter admits at most limit requests per client in each fixed window.
// A client is a broker account or, for anonymous quotes, an IP address.
type RateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	partitions [limiterPartitions]counterPartition

	stop     chan struct{}
	stopOnce sync.Once
}

type counterPartition struct {
	mu      sync.Mutex
	windows map[string]*clientWindow
}

type clientWindow struct {
	opened time.Time
	used   int
}

// verdict is the outcome of one admission check.
type verdict struct {
	allowed   bool
	remaining int
	resetIn   time.Duration
}

// NewRateLimiter starts a limiter and its background pruning of idle clients.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limit:  limit,
		window: window,
		now:    time.Now,
		stop:   make(chan struct{}),
	}
	for i := range rl.partitions {
		rl.partitions[i].windows = make(map[string]*clientWindow)
	}
	go rl.pruneLoop()
	return rl
}

// admit counts one request from client against its current window.
func (rl *RateLimiter) admit(client string) verdict {
	p := &rl.partitions[xxhash.Sum64String(client)%limiterPartitions]
	now := rl.now()

	p.mu.Lock()
	defer p.mu.Unlock()

	w, ok := p.windows[client]
	if !ok || now.Sub(w.opened) >= rl.window {
		w = &clientWindow{opened: now}
		p.windows[client] = w
	}
	resetIn := w.opened.Add(rl.window).Sub(now)

	if w.used >= rl.limit {
		return verdict{resetIn: resetIn}
	}
	w.used++
	return verdict{allowed: true, remaining: rl.limit - w.used, resetIn: resetIn}
}

// ByIP limits every caller by client IP.
func (rl *RateLimiter) ByIP() gin.HandlerFunc {
	return rl.handler(func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	})
}

// ByAccount limits brokers by account so a broker behind a shared address keeps
// its own allowance. Anonymous callers are limited by IP.
func (rl *RateLimiter) ByAccount() gin.HandlerFunc {
	return rl.handler(func(c *gin.Context) string {
		if accountID := GetBrokerIdentity(c).AccountID; accountID != "" {
			return "account:" + accountID
		}
		return "ip:" + c.ClientIP()
	})
}

func (rl *RateLimiter) handler(clientOf func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := rl.admit(clientOf(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(v.remaining))

		if !v.allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(v.resetIn.Seconds()))))
			msg := i18n.Message(c, i18n.ErrKeyRateLimitExceeded)
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewError(dto.ErrCodeRateLimit, msg).WithRequestID(GetRequestID(c)))
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) pruneLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.prune()
		case <-rl.stop:
			return
		}
	}
}

// prune forgets clients whose window has closed.
func (rl *RateLimiter) prune() {
	now := rl.now()
	for i := range rl.partitions {
		p := &rl.partitions[i]
		p.mu.Lock()
		for client, w := range p.windows {
			if now.Sub(w.opened) >= rl.window {
				delete(p.windows, client)
			}
		}
		p.mu.Unlock()
	}
}

// Clients returns how many clients have an open window.
func (rl *RateLimiter) Clients() int {
	n := 0
	for i := range rl.partitions {
		p := &rl.partitions[i]
		p.mu.Lock()
		n += len(p.windows)
		p.mu.Unlock()
	}
	return n
}

// Stop ends background pruning. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}
