// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"
	"time"

	"github.com/guttosm/print-pricing-service/internal/domain/dto"
	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type MockQuoteService struct {
	mock.Mock
}

// NewMockQuoteService creates a MockQuoteService that asserts its expectations when the test ends.
func NewMockQuoteService(t testingT) *MockQuoteService {
	m := &MockQuoteService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockQuoteService) Calculate(ctx context.Context, req dto.QuoteRequest, identity model.BrokerIdentity) (model.ProductConfiguration, model.PriceCalculation, error) {
	args := m.Called(ctx, req, identity)
	cfg, _ := args.Get(0).(model.ProductConfiguration)
	calc, _ := args.Get(1).(model.PriceCalculation)
	return cfg, calc, args.Error(2)
}

func (m *MockQuoteService) Save(ctx context.Context, req dto.QuoteRequest, identity model.BrokerIdentity) (*model.Quote, error) {
	args := m.Called(ctx, req, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quote), args.Error(1)
}

func (m *MockQuoteService) Get(ctx context.Context, id string) (*model.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quote), args.Error(1)
}

func (m *MockQuoteService) ListByAccount(ctx context.Context, accountID string, limit int) ([]model.Quote, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Quote), args.Error(1)
}

type MockCatalogService struct {
	mock.Mock
}

// NewMockCatalogService creates a MockCatalogService that asserts its expectations when the test ends.
func NewMockCatalogService(t testingT) *MockCatalogService {
	m := &MockCatalogService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCatalogService) GetCatalog(ctx context.Context) model.Catalog {
	args := m.Called(ctx)
	cat, _ := args.Get(0).(model.Catalog)
	return cat
}

func (m *MockCatalogService) Resolve(ctx context.Context, req dto.QuoteRequest, identity model.BrokerIdentity) (model.ProductConfiguration, error) {
	args := m.Called(ctx, req, identity)
	cfg, _ := args.Get(0).(model.ProductConfiguration)
	return cfg, args.Error(1)
}

func (m *MockCatalogService) ListBrokerDiscounts(ctx context.Context) []model.BrokerDiscount {
	args := m.Called(ctx)
	discounts, _ := args.Get(0).([]model.BrokerDiscount)
	return discounts
}

func (m *MockCatalogService) UpsertBrokerDiscount(ctx context.Context, categoryID string, percent decimal.Decimal, updatedBy string) (model.BrokerDiscount, error) {
	args := m.Called(ctx, categoryID, percent, updatedBy)
	discount, _ := args.Get(0).(model.BrokerDiscount)
	return discount, args.Error(1)
}

func (m *MockCatalogService) DeleteBrokerDiscount(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

func (m *MockCatalogService) Invalidate() {
	m.Called()
}

type MockBrokerTokenService struct {
	mock.Mock
}

// NewMockBrokerTokenService creates a MockBrokerTokenService that asserts its expectations when the test ends.
func NewMockBrokerTokenService(t testingT) *MockBrokerTokenService {
	m := &MockBrokerTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBrokerTokenService) Verify(tokenString string) (model.BrokerIdentity, error) {
	args := m.Called(tokenString)
	identity, _ := args.Get(0).(model.BrokerIdentity)
	return identity, args.Error(1)
}

func (m *MockBrokerTokenService) IssueToken(identity model.BrokerIdentity, ttl time.Duration) (string, error) {
	args := m.Called(identity, ttl)
	return args.String(0), args.Error(1)
}

type MockLoggingService struct {
	mock.Mock
}

// NewMockLoggingService creates a MockLoggingService that asserts its expectations when the test ends.
func NewMockLoggingService(t testingT) *MockLoggingService {
	m := &MockLoggingService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLoggingService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLoggingService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLoggingService) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LogEntry), args.Error(1)
}

func (m *MockLoggingService) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	count, _ := args.Get(0).(int64)
	return count, args.Error(1)
}
