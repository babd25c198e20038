// Package service contains the business logic for the print pricing service.
package service

import (
	"container/list"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/guttosm/print-pricing-service/internal/metrics"
	"github.com/guttosm/print-pricing-service/internal/service/cache"
)

// sweepInterval is how often expired quotes are dropped in the background.
const sweepInterval = time.Minute

// quoteCache memoizes price calculations by configuration fingerprint.
// Entries expire after ttl; past capacity the least recently priced
// configuration is dropped first.
type quoteCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	byKey    map[string]*list.Element
	recency  *list.List // front is most recent; values are *quoteEntry

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64

	stop     chan struct{}
	stopOnce sync.Once
}

type quoteEntry struct {
	fingerprint string
	calc        model.PriceCalculation
	expiresAt   time.Time
}

func newQuoteCache(capacity int, ttl time.Duration) *quoteCache {
	if capacity < 1 {
		capacity = 1
	}
	c := &quoteCache{
		capacity: capacity,
		ttl:      ttl,
		byKey:    make(map[string]*list.Element, capacity),
		recency:  list.New(),
		stop:     make(chan struct{}),
	}
	go c.sweepLoop()
	return c
}

// Get returns the calculation stored for fingerprint, if still fresh.
func (c *quoteCache) Get(fingerprint string) (model.PriceCalculation, bool) {
	c.mu.Lock()
	el, ok := c.byKey[fingerprint]
	if !ok {
		c.mu.Unlock()
		c.misses.Add(1)
		metrics.RecordCacheOperation("get", "miss")
		return model.PriceCalculation{}, false
	}

	entry := el.Value.(*quoteEntry)
	if time.Now().After(entry.expiresAt) {
		c.drop(el)
		c.mu.Unlock()
		c.misses.Add(1)
		metrics.RecordCacheOperation("get", "expired")
		return model.PriceCalculation{}, false
	}

	c.recency.MoveToFront(el)
	calc := entry.calc
	c.mu.Unlock()

	c.hits.Add(1)
	metrics.RecordCacheOperation("get", "hit")
	return calc, true
}

// Set stores calc under fingerprint and restarts its TTL.
func (c *quoteCache) Set(fingerprint string, calc model.PriceCalculation) {
	expiresAt := time.Now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.byKey[fingerprint]; ok {
		entry := el.Value.(*quoteEntry)
		entry.calc = calc
		entry.expiresAt = expiresAt
		c.recency.MoveToFront(el)
		return
	}

	c.byKey[fingerprint] = c.recency.PushFront(&quoteEntry{
		fingerprint: fingerprint,
		calc:        calc,
		expiresAt:   expiresAt,
	})
	metrics.RecordCacheOperation("set", "success")

	for c.recency.Len() > c.capacity {
		c.drop(c.recency.Back())
		c.evictions.Add(1)
		metrics.RecordCacheOperation("evict", "capacity")
	}
}

// Invalidate forgets a single configuration.
func (c *quoteCache) Invalidate(fingerprint string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.byKey[fingerprint]; ok {
		c.drop(el)
		metrics.RecordCacheOperation("invalidate", "success")
	}
}

// Clear forgets every configuration and resets the counters.
// It runs whenever catalog prices or broker discounts change.
func (c *quoteCache) Clear() {
	c.mu.Lock()
	c.byKey = make(map[string]*list.Element, c.capacity)
	c.recency.Init()
	c.mu.Unlock()

	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
	metrics.RecordCacheOperation("clear", "success")
}

// Stop ends the background sweep. It is safe to call more than once.
func (c *quoteCache) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// Metrics reports hit, miss and eviction counts with the current size.
func (c *quoteCache) Metrics() cache.Metrics {
	c.mu.Lock()
	size := c.recency.Len()
	c.mu.Unlock()

	return cache.Metrics{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      size,
		Capacity:  c.capacity,
	}
}

func (c *quoteCache) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			c.sweep(now)
		case <-c.stop:
			return
		}
	}
}

// sweep drops every entry expired at now.
func (c *quoteCache) sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for el := c.recency.Back(); el != nil; {
		prev := el.Prev()
		if now.After(el.Value.(*quoteEntry).expiresAt) {
			c.drop(el)
			dropped++
		}
		el = prev
	}
	return dropped
}

// drop removes el from both indexes. The caller holds mu.
func (c *quoteCache) drop(el *list.Element) {
	delete(c.byKey, el.Value.(*quoteEntry).fingerprint)
	c.recency.Remove(el)
}

// ShardedCache spreads quotes over independently locked quoteCaches so
// concurrent quote traffic does not serialize on one mutex.
type ShardedCache struct {
	shards []*quoteCache
}

// NewShardedCache splits capacity evenly over shards. A non-positive shard
// count uses 16.
func NewShardedCache(capacity int, ttl time.Duration, shards int) *ShardedCache {
	if shards <= 0 {
		shards = 16
	}
	perShard := capacity / shards
	if perShard < 1 {
		perShard = 1
	}

	sc := &ShardedCache{shards: make([]*quoteCache, shards)}
	for i := range sc.shards {
		sc.shards[i] = newQuoteCache(perShard, ttl)
	}
	return sc
}

func (sc *ShardedCache) shardFor(fingerprint string) *quoteCache {
	return sc.shards[xxhash.Sum64String(fingerprint)%uint64(len(sc.shards))]
}

// Get returns the calculation stored for fingerprint, if still fresh.
func (sc *ShardedCache) Get(fingerprint string) (model.PriceCalculation, bool) {
	return sc.shardFor(fingerprint).Get(fingerprint)
}

// Set stores calc under fingerprint.
func (sc *ShardedCache) Set(fingerprint string, calc model.PriceCalculation) {
	sc.shardFor(fingerprint).Set(fingerprint, calc)
}

// Invalidate forgets a single configuration.
func (sc *ShardedCache) Invalidate(fingerprint string) {
	sc.shardFor(fingerprint).Invalidate(fingerprint)
}

// Clear forgets every configuration in every shard.
func (sc *ShardedCache) Clear() {
	for _, shard := range sc.shards {
		shard.Clear()
	}
}

// Stop ends the background sweep of every shard.
func (sc *ShardedCache) Stop() {
	for _, shard := range sc.shards {
		shard.Stop()
	}
}

// Metrics sums the metrics of all shards.
func (sc *ShardedCache) Metrics() cache.Metrics {
	var total cache.Metrics
	for _, shard := range sc.shards {
		m := shard.Metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}
