// Code generated manually. DO NOT EDIT.

package mocks

import (
	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/guttosm/print-pricing-service/internal/service/cache"
	"github.com/stretchr/testify/mock"
)

type MockCache struct {
	mock.Mock
}

// NewMockCache creates a MockCache that asserts its expectations when the test ends.
func NewMockCache(t testingT) *MockCache {
	m := &MockCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCache) Get(key string) (model.PriceCalculation, bool) {
	args := m.Called(key)
	calc, _ := args.Get(0).(model.PriceCalculation)
	return calc, args.Bool(1)
}

func (m *MockCache) Set(key string, value model.PriceCalculation) {
	m.Called(key, value)
}

func (m *MockCache) Invalidate(key string) {
	m.Called(key)
}

func (m *MockCache) Clear() {
	m.Called()
}

func (m *MockCache) Stop() {
	m.Called()
}

func (m *MockCache) Metrics() cache.Metrics {
	args := m.Called()
	metrics, _ := args.Get(0).(cache.Metrics)
	return metrics
}
