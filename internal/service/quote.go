package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/print-pricing-service/internal/domain/dto"
	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/guttosm/print-pricing-service/internal/repository"
)

// ErrQuoteNotFound is returned when a saved quote does not exist.
var ErrQuoteNotFound = errors.New("quote not found")

// DefaultQuoteListLimit caps ListByAccount when no limit is given.
const DefaultQuoteListLimit = 50

// QuoteService prices quote requests and manages saved quotes.
type QuoteService interface {
	// Calculate resolves and prices a request without persisting it.
	Calculate(ctx context.Context, req dto.QuoteRequest, identity model.BrokerIdentity) (model.ProductConfiguration, model.PriceCalculation, error)
	// Save prices a request and persists the result.
	Save(ctx context.Context, req dto.QuoteRequest, identity model.BrokerIdentity) (*model.Quote, error)
	// Get returns a saved quote by id.
	Get(ctx context.Context, id string) (*model.Quote, error)
	// ListByAccount returns an account's saved quotes, newest first.
	ListByAccount(ctx context.Context, accountID string, limit int) ([]model.Quote, error)
}

// QuoteServiceImpl implements QuoteService.
type QuoteServiceImpl struct {
	catalog    CatalogService
	engine     PricingEngine
	quotesRepo repository.QuotesRepositoryInterface
	newID      func() string
	now        func() time.Time
}

// NewQuoteService creates a new quote service. quotesRepo may be nil,
// in which case only Calculate is available.
func NewQuoteService(catalog CatalogService, engine PricingEngine, quotesRepo repository.QuotesRepositoryInterface) *QuoteServiceImpl {
	return &QuoteServiceImpl{
		catalog:    catalog,
		engine:     engine,
		quotesRepo: quotesRepo,
		newID:      uuid.NewString,
		now:        time.Now,
	}
}

// Calculate resolves and prices a request without persisting it.
func (s *QuoteServiceImpl) Calculate(ctx context.Context, req dto.QuoteRequest, identity model.BrokerIdentity) (model.ProductConfiguration, model.PriceCalculation, error) {
	cfg, err := s.catalog.Resolve(ctx, req, identity)
	if err != nil {
		return model.ProductConfiguration{}, model.PriceCalculation{}, err
	}
	return cfg, s.engine.CalculatePrice(cfg), nil
}

// Save prices a request and persists the result.
func (s *QuoteServiceImpl) Save(ctx context.Context, req dto.QuoteRequest, identity model.BrokerIdentity) (*model.Quote, error) {
	if s.quotesRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	cfg, calc, err := s.Calculate(ctx, req, identity)
	if err != nil {
		return nil, err
	}

	quote := &model.Quote{
		ID:            s.newID(),
		AccountID:     identity.AccountID,
		IsBroker:      identity.IsBroker,
		Configuration: cfg,
		Calculation:   calc,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.quotesRepo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("save quote: %w", err)
	}
	return quote, nil
}

// Get returns a saved quote by id.
func (s *QuoteServiceImpl) Get(ctx context.Context, id string) (*model.Quote, error) {
	if s.quotesRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	quote, err := s.quotesRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quote %s: %w", id, err)
	}
	if quote == nil {
		return nil, ErrQuoteNotFound
	}
	return quote, nil
}

// ListByAccount returns an account's saved quotes, newest first.
func (s *QuoteServiceImpl) ListByAccount(ctx context.Context, accountID string, limit int) ([]model.Quote, error) {
	if s.quotesRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if limit <= 0 || limit > DefaultQuoteListLimit {
		limit = DefaultQuoteListLimit
	}

	quotes, err := s.quotesRepo.ListByAccount(ctx, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("list quotes for %s: %w", accountID, err)
	}
	return quotes, nil
}
