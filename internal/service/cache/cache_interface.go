package cache

import "github.com/guttosm/print-pricing-service/internal/domain/model"

// Cache defines the interface for price calculation cache operations.
// Keys are configuration fingerprints.
type Cache interface {
	Get(key string) (model.PriceCalculation, bool)
	Set(key string, value model.PriceCalculation)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
