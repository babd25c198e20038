//go:build !integration

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/print-pricing-service/internal/domain/dto"
	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/guttosm/print-pricing-service/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestQuoteService(repo *mocks.MockQuotesRepositoryInterface) *QuoteServiceImpl {
	catalog := NewCatalogService(nil, nil, fallbackCatalog())
	svc := NewQuoteService(catalog, NewPricingEngineService(), repo)
	svc.newID = func() string { return "quote-1" }
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC) }
	return svc
}

func TestQuoteService_Calculate(t *testing.T) {
	tests := []struct {
		name      string
		identity  model.BrokerIdentity
		wantTotal string
		wantErr   error
		mutate    func(*dto.QuoteRequest)
	}{
		{
			name:      "retail quote",
			wantTotal: "120",
		},
		{
			name:      "broker quote gets category discount",
			identity:  model.BrokerIdentity{AccountID: "acct-1", IsBroker: true},
			wantTotal: "108",
		},
		{
			name:    "unknown paper stock",
			wantErr: ErrPaperStockNotFound,
			mutate:  func(r *dto.QuoteRequest) { r.PaperStockID = "vinyl" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestQuoteService(nil)
			req := quoteRequest()
			if tt.mutate != nil {
				tt.mutate(&req)
			}

			cfg, calc, err := svc.Calculate(context.Background(), req, tt.identity)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.identity.IsBroker, cfg.IsBroker)
			assertDecimal(t, tt.wantTotal, calc.CalculatedProductSubtotal)
		})
	}
}

func TestQuoteService_Save(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*mocks.MockQuotesRepositoryInterface)
		wantErr   bool
		validate  func(*testing.T, *model.Quote)
	}{
		{
			name: "persists priced quote",
			setupMock: func(m *mocks.MockQuotesRepositoryInterface) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(q *model.Quote) bool {
					return q.ID == "quote-1" && q.AccountID == "acct-1" && q.IsBroker
				})).Return(nil).Once()
			},
			validate: func(t *testing.T, q *model.Quote) {
				assert.Equal(t, "quote-1", q.ID)
				assert.Equal(t, "acct-1", q.AccountID)
				assert.Equal(t, "14pt-matte", q.Configuration.PaperStock.ID)
				assertDecimal(t, "108", q.Calculation.CalculatedProductSubtotal)
				assert.Equal(t, time.UTC, q.CreatedAt.Location())
			},
		},
		{
			name: "repository error",
			setupMock: func(m *mocks.MockQuotesRepositoryInterface) {
				m.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockQuotesRepositoryInterface)
			tt.setupMock(repo)
			svc := newTestQuoteService(repo)

			quote, err := svc.Save(context.Background(), quoteRequest(), model.BrokerIdentity{AccountID: "acct-1", IsBroker: true})
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, quote)
			} else {
				require.NoError(t, err)
				tt.validate(t, quote)
			}
			repo.AssertExpectations(t)
		})
	}

	t.Run("without repository", func(t *testing.T) {
		svc := NewQuoteService(NewCatalogService(nil, nil, fallbackCatalog()), NewPricingEngineService(), nil)
		_, err := svc.Save(context.Background(), quoteRequest(), model.BrokerIdentity{})
		assert.ErrorIs(t, err, ErrRepositoryNotConfigured)
	})
}

func TestQuoteService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*mocks.MockQuotesRepositoryInterface)
		wantErr   error
	}{
		{
			name: "found",
			setupMock: func(m *mocks.MockQuotesRepositoryInterface) {
				m.On("GetByID", mock.Anything, "quote-1").Return(&model.Quote{ID: "quote-1"}, nil).Once()
			},
		},
		{
			name: "not found",
			setupMock: func(m *mocks.MockQuotesRepositoryInterface) {
				m.On("GetByID", mock.Anything, "quote-1").Return(nil, nil).Once()
			},
			wantErr: ErrQuoteNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockQuotesRepositoryInterface)
			tt.setupMock(repo)
			svc := newTestQuoteService(repo)

			quote, err := svc.Get(context.Background(), "quote-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "quote-1", quote.ID)
			repo.AssertExpectations(t)
		})
	}
}

func TestQuoteService_ListByAccount(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{name: "explicit limit", limit: 10, wantLimit: 10},
		{name: "zero uses default", limit: 0, wantLimit: DefaultQuoteListLimit},
		{name: "over max is clamped", limit: 500, wantLimit: DefaultQuoteListLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockQuotesRepositoryInterface)
			repo.On("ListByAccount", mock.Anything, "acct-1", tt.wantLimit).Return([]model.Quote{{ID: "quote-1"}}, nil).Once()
			svc := newTestQuoteService(repo)

			quotes, err := svc.ListByAccount(context.Background(), "acct-1", tt.limit)
			require.NoError(t, err)
			assert.Len(t, quotes, 1)
			repo.AssertExpectations(t)
		})
	}
}
