// Package repository provides interfaces for repository operations.
package repository

import (
	"context"

	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// CatalogRepositoryInterface defines the interface for catalog repository operations.
type CatalogRepositoryInterface interface {
	GetCatalog(ctx context.Context) (*model.Catalog, error)
	SaveCatalog(ctx context.Context, cat model.Catalog) error
}

// BrokerDiscountsRepositoryInterface defines the interface for broker discount repository operations.
type BrokerDiscountsRepositoryInterface interface {
	List(ctx context.Context) ([]BrokerDiscountDocument, error)
	Upsert(ctx context.Context, categoryID string, percent decimal.Decimal, updatedBy string) (*BrokerDiscountDocument, error)
	Delete(ctx context.Context, categoryID string) (bool, error)
}

// QuotesRepositoryInterface defines the interface for quote repository operations.
type QuotesRepositoryInterface interface {
	Create(ctx context.Context, quote *model.Quote) error
	GetByID(ctx context.Context, id string) (*model.Quote, error)
	ListByAccount(ctx context.Context, accountID string, limit int) ([]model.Quote, error)
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}
