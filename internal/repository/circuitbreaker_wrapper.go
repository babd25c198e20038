package repository

import (
	"context"
	"errors"

	"github.com/guttosm/print-pricing-service/internal/circuitbreaker"
	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// guarded is embedded by every store wrapper below.
type guarded struct {
	cb *circuitbreaker.CircuitBreaker
}

// GetCircuitBreaker exposes the breaker to the readiness handler.
func (g guarded) GetCircuitBreaker() *circuitbreaker.CircuitBreaker { return g.cb }

// through runs fn under cb and hands back its result.
func through[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var out T
	err := cb.Execute(ctx, func() error {
		var err error
		out, err = fn()
		return err
	})
	return out, err
}

// shedWhenOpen reports success for a rejected call. Only stores with an
// in-memory fallback, or whose writes may be dropped, use it.
func shedWhenOpen(err error) error {
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// CatalogRepositoryWithCircuitBreaker reads the catalog through a breaker. An
// open breaker returns a nil catalog so pricing keeps the built-in one.
type CatalogRepositoryWithCircuitBreaker struct {
	guarded
	repo CatalogRepositoryInterface
}

// NewCatalogRepositoryWithCircuitBreaker wraps repo with cb.
func NewCatalogRepositoryWithCircuitBreaker(repo CatalogRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *CatalogRepositoryWithCircuitBreaker {
	return &CatalogRepositoryWithCircuitBreaker{guarded: guarded{cb: cb}, repo: repo}
}

func (r *CatalogRepositoryWithCircuitBreaker) GetCatalog(ctx context.Context) (*model.Catalog, error) {
	cat, err := through(ctx, r.cb, func() (*model.Catalog, error) { return r.repo.GetCatalog(ctx) })
	if err = shedWhenOpen(err); err != nil {
		return nil, err
	}
	return cat, nil
}

// SaveCatalog reports an open breaker; a seed that was not written is retried on the next start.
func (r *CatalogRepositoryWithCircuitBreaker) SaveCatalog(ctx context.Context, cat model.Catalog) error {
	return r.cb.Execute(ctx, func() error { return r.repo.SaveCatalog(ctx, cat) })
}

// BrokerDiscountsRepositoryWithCircuitBreaker guards the broker discount table.
// List falls back to the built-in discounts when the breaker is open; writes
// report it.
type BrokerDiscountsRepositoryWithCircuitBreaker struct {
	guarded
	repo BrokerDiscountsRepositoryInterface
}

// NewBrokerDiscountsRepositoryWithCircuitBreaker wraps repo with cb.
func NewBrokerDiscountsRepositoryWithCircuitBreaker(repo BrokerDiscountsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *BrokerDiscountsRepositoryWithCircuitBreaker {
	return &BrokerDiscountsRepositoryWithCircuitBreaker{guarded: guarded{cb: cb}, repo: repo}
}

func (r *BrokerDiscountsRepositoryWithCircuitBreaker) List(ctx context.Context) ([]BrokerDiscountDocument, error) {
	docs, err := through(ctx, r.cb, func() ([]BrokerDiscountDocument, error) { return r.repo.List(ctx) })
	if err = shedWhenOpen(err); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *BrokerDiscountsRepositoryWithCircuitBreaker) Upsert(ctx context.Context, categoryID string, percent decimal.Decimal, updatedBy string) (*BrokerDiscountDocument, error) {
	return through(ctx, r.cb, func() (*BrokerDiscountDocument, error) {
		return r.repo.Upsert(ctx, categoryID, percent, updatedBy)
	})
}

func (r *BrokerDiscountsRepositoryWithCircuitBreaker) Delete(ctx context.Context, categoryID string) (bool, error) {
	return through(ctx, r.cb, func() (bool, error) { return r.repo.Delete(ctx, categoryID) })
}

// QuotesRepositoryWithCircuitBreaker guards saved quotes. There is nothing to
// fall back to, so an open breaker surfaces as ErrCircuitOpen.
type QuotesRepositoryWithCircuitBreaker struct {
	guarded
	repo QuotesRepositoryInterface
}

// NewQuotesRepositoryWithCircuitBreaker wraps repo with cb.
func NewQuotesRepositoryWithCircuitBreaker(repo QuotesRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *QuotesRepositoryWithCircuitBreaker {
	return &QuotesRepositoryWithCircuitBreaker{guarded: guarded{cb: cb}, repo: repo}
}

func (r *QuotesRepositoryWithCircuitBreaker) Create(ctx context.Context, quote *model.Quote) error {
	return r.cb.Execute(ctx, func() error { return r.repo.Create(ctx, quote) })
}

func (r *QuotesRepositoryWithCircuitBreaker) GetByID(ctx context.Context, id string) (*model.Quote, error) {
	return through(ctx, r.cb, func() (*model.Quote, error) { return r.repo.GetByID(ctx, id) })
}

func (r *QuotesRepositoryWithCircuitBreaker) ListByAccount(ctx context.Context, accountID string, limit int) ([]model.Quote, error) {
	return through(ctx, r.cb, func() ([]model.Quote, error) { return r.repo.ListByAccount(ctx, accountID, limit) })
}

// LogsRepositoryWithCircuitBreaker guards the logs collection. Writes are
// dropped while the breaker is open; reads for the audit endpoint report it.
type LogsRepositoryWithCircuitBreaker struct {
	guarded
	repo LogsRepositoryInterface
}

// NewLogsRepositoryWithCircuitBreaker wraps repo with cb.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{guarded: guarded{cb: cb}, repo: repo}
}

func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	return shedWhenOpen(r.cb.Execute(ctx, func() error { return r.repo.Create(ctx, entry) }))
}

func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	return shedWhenOpen(r.cb.Execute(ctx, func() error { return r.repo.CreateMany(ctx, entries) }))
}

func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	return through(ctx, r.cb, func() ([]*LogEntryDocument, error) { return r.repo.Query(ctx, opts) })
}

func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return through(ctx, r.cb, func() (int64, error) { return r.repo.Count(ctx, opts) })
}
