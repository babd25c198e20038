package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/guttosm/print-pricing-service/internal/metrics"
	"github.com/guttosm/print-pricing-service/internal/service/cache"
	"github.com/shopspring/decimal"
)

var (
	// TaglineDiscountPercent is granted when the printer's tagline is placed on the product.
	TaglineDiscountPercent = decimal.NewFromFloat(5.0)
	// ExactSizeMarkupPercent is charged for exact (non-standard-rounded) cut dimensions.
	ExactSizeMarkupPercent = decimal.NewFromFloat(12.5)

	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// PricingEngine defines the interface for price calculation operations.
type PricingEngine interface {
	CalculatePrice(cfg model.ProductConfiguration) model.PriceCalculation
	// InvalidateCache drops memoized results (call when catalog data changes).
	InvalidateCache()
}

// EngineOption configures a PricingEngineService.
type EngineOption func(*PricingEngineService)

// PricingEngineService implements PricingEngine on top of CalculatePrice,
// adding optional memoization and metrics.
type PricingEngineService struct {
	cache cache.Cache
}

// NewPricingEngineService creates a new PricingEngineService with the given options.
func NewPricingEngineService(opts ...EngineOption) *PricingEngineService {
	s := &PricingEngineService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithCache enables result caching with the specified capacity and TTL.
func WithCache(capacity int, ttl time.Duration) EngineOption {
	return func(s *PricingEngineService) {
		if capacity > 0 {
			s.cache = newQuoteCache(capacity, ttl)
		}
	}
}

// WithShardedCache enables result caching spread over shards to reduce lock contention
// under concurrent quote traffic.
func WithShardedCache(capacity int, ttl time.Duration, shards int) EngineOption {
	return func(s *PricingEngineService) {
		if capacity > 0 {
			s.cache = NewShardedCache(capacity, ttl, shards)
		}
	}
}

// WithCacheInterface allows injecting a custom cache implementation.
func WithCacheInterface(c cache.Cache) EngineOption {
	return func(s *PricingEngineService) {
		s.cache = c
	}
}

// CalculatePrice runs the pricing pipeline, serving repeated configurations from cache.
// Cached results are copied on the way in and out, so callers may modify what they get.
// This is the only place calculations are counted in metrics.
func (s *PricingEngineService) CalculatePrice(cfg model.ProductConfiguration) model.PriceCalculation {
	start := time.Now()

	var key string
	if s.cache != nil {
		key = Fingerprint(cfg)
		if result, ok := s.cache.Get(key); key != "" && ok {
			metrics.RecordPriceCalculation(time.Since(start), metrics.CalculationCached)
			return result.Clone()
		}
	}

	result := CalculatePrice(cfg)

	if s.cache != nil && key != "" {
		s.cache.Set(key, result.Clone())
	}

	metrics.RecordPriceCalculation(time.Since(start), metrics.CalculationSuccess)
	metrics.ObserveQuoteSubtotal(result.CalculatedProductSubtotal)
	return result
}

// InvalidateCache clears the calculation cache.
func (s *PricingEngineService) InvalidateCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

// Fingerprint returns a stable cache key for a configuration.
func Fingerprint(cfg model.ProductConfiguration) string {
	// Struct fields marshal in declaration order and decimals as strings,
	// so equal configurations always produce equal bytes.
	data, err := json.Marshal(cfg)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// CalculatePrice computes an itemized price for a fully resolved configuration.
//
// The pipeline runs in five fixed stages: base paper/print price, broker or tagline
// discount, exact-size markup, turnaround markup, add-on costs. It performs no
// validation; zero or negative inputs yield zero or negative amounts.
func CalculatePrice(cfg model.ProductConfiguration) model.PriceCalculation {
	quantity := decimal.NewFromInt(int64(cfg.Quantity))
	area := cfg.Size.Area()

	// 1. Base paper/print price
	sidesFactor := one
	if cfg.Sides == model.SidesDouble {
		sidesFactor = one.Add(percentOf(cfg.PaperStock.SecondSideMarkupPercent))
	}
	base := quantity.Mul(area).Mul(cfg.PaperStock.PricePerSqInch).Mul(sidesFactor)

	calc := model.PriceCalculation{
		Quantity:               cfg.Quantity,
		EffectiveArea:          area,
		SidesFactor:            sidesFactor,
		BasePaperPrintPrice:    base,
		BrokerDiscountPercent:  decimal.Zero,
		BrokerDiscountAmount:   decimal.Zero,
		TaglineDiscountPercent: decimal.Zero,
		TaglineDiscountAmount:  decimal.Zero,
		ExactSizeMarkupPercent: decimal.Zero,
		ExactSizeMarkupAmount:  decimal.Zero,
	}

	// 2. Broker discount wins over the tagline discount
	adjusted := base
	if discount, ok := applicableBrokerDiscount(cfg); ok {
		adjusted = base.Mul(one.Sub(percentOf(discount.DiscountPercent)))
		calc.BrokerDiscountApplied = true
		calc.BrokerDiscountPercent = discount.DiscountPercent
		calc.BrokerDiscountAmount = base.Sub(adjusted)
	} else if cfg.AddOns.Tagline {
		savings := base.Mul(percentOf(TaglineDiscountPercent))
		adjusted = base.Sub(savings)
		calc.TaglineDiscountApplied = true
		calc.TaglineDiscountPercent = TaglineDiscountPercent
		calc.TaglineDiscountAmount = savings
	}
	calc.AdjustedBasePrice = adjusted

	// 3. Percentage modifiers on the adjusted base
	afterModifiers := adjusted
	if cfg.AddOns.ExactSize {
		markup := adjusted.Mul(percentOf(ExactSizeMarkupPercent))
		afterModifiers = afterModifiers.Add(markup)
		calc.ExactSizeMarkupApplied = true
		calc.ExactSizeMarkupPercent = ExactSizeMarkupPercent
		calc.ExactSizeMarkupAmount = markup
	}
	calc.PriceAfterBaseModifiers = afterModifiers

	// 4. Turnaround markup
	afterTurnaround := afterModifiers.Mul(one.Add(percentOf(cfg.Turnaround.MarkupPercent)))
	calc.TurnaroundMarkupPercent = cfg.Turnaround.MarkupPercent
	calc.TurnaroundMarkupAmount = afterTurnaround.Sub(afterModifiers)
	calc.PriceAfterTurnaround = afterTurnaround

	// 5. Add-on services
	calc.AddOnCosts = CalculateAddOnCosts(cfg)
	calc.TotalAddOnCost = decimal.Zero
	for _, line := range calc.AddOnCosts {
		calc.TotalAddOnCost = calc.TotalAddOnCost.Add(line.Cost)
	}

	calc.CalculatedProductSubtotal = afterTurnaround.Add(calc.TotalAddOnCost)
	calc.Breakdown = buildBreakdown(calc)

	return calc
}

// applicableBrokerDiscount returns the broker's discount for the configuration's category.
func applicableBrokerDiscount(cfg model.ProductConfiguration) (model.BrokerDiscount, bool) {
	if !cfg.IsBroker {
		return model.BrokerDiscount{}, false
	}
	return cfg.BrokerDiscountFor()
}

func buildBreakdown(calc model.PriceCalculation) model.PriceBreakdown {
	b := model.PriceBreakdown{
		BasePrintingCost:       calc.BasePaperPrintPrice,
		TurnaroundMarkupAmount: calc.TurnaroundMarkupAmount,
		TotalAddOnCost:         calc.TotalAddOnCost,
		Total:                  calc.CalculatedProductSubtotal,
	}
	if calc.BrokerDiscountApplied {
		amount := calc.BrokerDiscountAmount
		b.BrokerDiscountAmount = &amount
	}
	if calc.TaglineDiscountApplied {
		amount := calc.TaglineDiscountAmount
		b.TaglineDiscountAmount = &amount
	}
	if calc.ExactSizeMarkupApplied {
		amount := calc.ExactSizeMarkupAmount
		b.ExactSizeMarkupAmount = &amount
	}
	return b
}

func percentOf(p decimal.Decimal) decimal.Decimal {
	return p.Div(hundred)
}
