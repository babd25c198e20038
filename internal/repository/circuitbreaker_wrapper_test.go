//go:build !integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/print-pricing-service/internal/circuitbreaker"
	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBackend = errors.New("backend unavailable")

type fakeCatalogRepo struct {
	catalog *model.Catalog
	err     error
	calls   int
}

func (f *fakeCatalogRepo) GetCatalog(context.Context) (*model.Catalog, error) {
	f.calls++
	return f.catalog, f.err
}

func (f *fakeCatalogRepo) SaveCatalog(context.Context, model.Catalog) error {
	f.calls++
	return f.err
}

type fakeDiscountsRepo struct {
	docs []BrokerDiscountDocument
	err  error
}

func (f *fakeDiscountsRepo) List(context.Context) ([]BrokerDiscountDocument, error) {
	return f.docs, f.err
}

func (f *fakeDiscountsRepo) Upsert(_ context.Context, categoryID string, percent decimal.Decimal, updatedBy string) (*BrokerDiscountDocument, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &BrokerDiscountDocument{CategoryID: categoryID, DiscountPercent: percent, UpdatedBy: updatedBy}, nil
}

func (f *fakeDiscountsRepo) Delete(context.Context, string) (bool, error) {
	return f.err == nil, f.err
}

type fakeQuotesRepo struct {
	err error
}

func (f *fakeQuotesRepo) Create(context.Context, *model.Quote) error { return f.err }

func (f *fakeQuotesRepo) GetByID(_ context.Context, id string) (*model.Quote, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.Quote{ID: id}, nil
}

func (f *fakeQuotesRepo) ListByAccount(context.Context, string, int) ([]model.Quote, error) {
	return nil, f.err
}

func newTestBreaker(threshold int) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: threshold,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
		Name:             "test",
	})
}

func TestCatalogRepositoryWithCircuitBreaker_GetCatalog(t *testing.T) {
	tests := []struct {
		name     string
		repo     *fakeCatalogRepo
		calls    int
		validate func(*testing.T, *model.Catalog, error, *fakeCatalogRepo)
	}{
		{
			name: "passes through stored catalog",
			repo: &fakeCatalogRepo{catalog: &model.Catalog{PaperStocks: []model.PaperStock{{ID: "14pt"}}}},
			validate: func(t *testing.T, cat *model.Catalog, err error, _ *fakeCatalogRepo) {
				require.NoError(t, err)
				require.NotNil(t, cat)
				assert.Equal(t, "14pt", cat.PaperStocks[0].ID)
			},
		},
		{
			name:  "returns nil catalog once circuit opens",
			repo:  &fakeCatalogRepo{err: errBackend},
			calls: 2,
			validate: func(t *testing.T, cat *model.Catalog, err error, repo *fakeCatalogRepo) {
				assert.NoError(t, err)
				assert.Nil(t, cat)
				assert.Equal(t, 1, repo.calls, "open circuit must not reach the backend")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := NewCatalogRepositoryWithCircuitBreaker(tt.repo, newTestBreaker(1))

			var (
				cat *model.Catalog
				err error
			)
			for i := 0; i < max(tt.calls, 1); i++ {
				cat, err = wrapped.GetCatalog(context.Background())
			}
			tt.validate(t, cat, err, tt.repo)
		})
	}
}

func TestCatalogRepositoryWithCircuitBreaker_SaveCatalogReportsOpenCircuit(t *testing.T) {
	repo := &fakeCatalogRepo{err: errBackend}
	wrapped := NewCatalogRepositoryWithCircuitBreaker(repo, newTestBreaker(1))

	assert.ErrorIs(t, wrapped.SaveCatalog(context.Background(), model.Catalog{}), errBackend)
	assert.ErrorIs(t, wrapped.SaveCatalog(context.Background(), model.Catalog{}), circuitbreaker.ErrCircuitOpen)
	assert.True(t, wrapped.GetCircuitBreaker().IsOpen())
}

func TestBrokerDiscountsRepositoryWithCircuitBreaker(t *testing.T) {
	t.Run("list falls back to nil when open", func(t *testing.T) {
		wrapped := NewBrokerDiscountsRepositoryWithCircuitBreaker(&fakeDiscountsRepo{err: errBackend}, newTestBreaker(1))

		_, err := wrapped.List(context.Background())
		assert.ErrorIs(t, err, errBackend)

		docs, err := wrapped.List(context.Background())
		assert.NoError(t, err)
		assert.Nil(t, docs)
	})

	t.Run("upsert passes through", func(t *testing.T) {
		wrapped := NewBrokerDiscountsRepositoryWithCircuitBreaker(&fakeDiscountsRepo{}, newTestBreaker(1))

		doc, err := wrapped.Upsert(context.Background(), "postcards", decimal.NewFromInt(10), "admin")
		require.NoError(t, err)
		assert.Equal(t, "postcards", doc.CategoryID)
		assert.True(t, doc.DiscountPercent.Equal(decimal.NewFromInt(10)))

		removed, err := wrapped.Delete(context.Background(), "postcards")
		assert.NoError(t, err)
		assert.True(t, removed)
	})
}

func TestQuotesRepositoryWithCircuitBreaker(t *testing.T) {
	t.Run("open circuit is reported", func(t *testing.T) {
		wrapped := NewQuotesRepositoryWithCircuitBreaker(&fakeQuotesRepo{err: errBackend}, newTestBreaker(1))

		assert.ErrorIs(t, wrapped.Create(context.Background(), &model.Quote{}), errBackend)
		_, err := wrapped.GetByID(context.Background(), "q-1")
		assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	})

	t.Run("reads pass through", func(t *testing.T) {
		wrapped := NewQuotesRepositoryWithCircuitBreaker(&fakeQuotesRepo{}, newTestBreaker(1))

		quote, err := wrapped.GetByID(context.Background(), "q-1")
		require.NoError(t, err)
		assert.Equal(t, "q-1", quote.ID)
		assert.Equal(t, circuitbreaker.StateClosed, wrapped.GetCircuitBreaker().State())
	})
}

func TestBrokerDiscountDocument_ToModel(t *testing.T) {
	doc := BrokerDiscountDocument{CategoryID: "flyers", DiscountPercent: decimal.RequireFromString("12.5")}

	d := doc.ToModel()
	assert.Equal(t, "flyers", d.CategoryID)
	assert.Equal(t, "12.5", d.DiscountPercent.String())
}

type fakeLogsRepo struct {
	err     error
	written int
}

func (f *fakeLogsRepo) Create(context.Context, *LogEntryDocument) error {
	if f.err != nil {
		return f.err
	}
	f.written++
	return nil
}

func (f *fakeLogsRepo) CreateMany(_ context.Context, entries []*LogEntryDocument) error {
	if f.err != nil {
		return f.err
	}
	f.written += len(entries)
	return nil
}

func (f *fakeLogsRepo) Query(context.Context, LogQueryOptions) ([]*LogEntryDocument, error) {
	return []*LogEntryDocument{{RequestID: "req-1"}}, f.err
}

func (f *fakeLogsRepo) Count(context.Context, LogQueryOptions) (int64, error) {
	return int64(f.written), f.err
}

func TestLogsRepositoryWithCircuitBreaker(t *testing.T) {
	t.Run("writes are dropped while open", func(t *testing.T) {
		repo := &fakeLogsRepo{err: errBackend}
		wrapped := NewLogsRepositoryWithCircuitBreaker(repo, newTestBreaker(1))

		assert.ErrorIs(t, wrapped.Create(context.Background(), &LogEntryDocument{}), errBackend)
		assert.NoError(t, wrapped.CreateMany(context.Background(), []*LogEntryDocument{{}, {}}))
		assert.True(t, wrapped.GetCircuitBreaker().IsOpen())

		_, err := wrapped.Count(context.Background(), LogQueryOptions{})
		assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	})

	t.Run("closed breaker passes through", func(t *testing.T) {
		repo := &fakeLogsRepo{}
		wrapped := NewLogsRepositoryWithCircuitBreaker(repo, newTestBreaker(1))

		require.NoError(t, wrapped.CreateMany(context.Background(), []*LogEntryDocument{{}, {}}))
		n, err := wrapped.Count(context.Background(), LogQueryOptions{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		entries, err := wrapped.Query(context.Background(), LogQueryOptions{})
		require.NoError(t, err)
		assert.Equal(t, "req-1", entries[0].RequestID)
	})
}
