//go:build !integration

package app

import (
	"context"
	"errors"
	"testing"

	"github.com/guttosm/print-pricing-service/config"
	"github.com/guttosm/print-pricing-service/internal/catalog"
	"github.com/guttosm/print-pricing-service/internal/mocks"
	"github.com/guttosm/print-pricing-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSeedCatalog(t *testing.T) {
	seed := catalog.Default()

	tests := []struct {
		name       string
		setupMocks func(*mocks.MockCatalogRepositoryInterface, *mocks.MockBrokerDiscountsRepositoryInterface)
		wantSeeded bool
		wantError  bool
	}{
		{
			name: "empty database is seeded",
			setupMocks: func(c *mocks.MockCatalogRepositoryInterface, d *mocks.MockBrokerDiscountsRepositoryInterface) {
				c.On("GetCatalog", mock.Anything).Return(nil, nil).Once()
				c.On("SaveCatalog", mock.Anything, seed).Return(nil).Once()
				for _, bd := range seed.BrokerDiscounts {
					d.On("Upsert", mock.Anything, bd.CategoryID, bd.DiscountPercent, "system").
						Return(&repository.BrokerDiscountDocument{CategoryID: bd.CategoryID, DiscountPercent: bd.DiscountPercent}, nil).Once()
				}
			},
			wantSeeded: true,
		},
		{
			name: "stored catalog is left alone",
			setupMocks: func(c *mocks.MockCatalogRepositoryInterface, d *mocks.MockBrokerDiscountsRepositoryInterface) {
				stored := catalog.Default()
				c.On("GetCatalog", mock.Anything).Return(&stored, nil).Once()
			},
			wantSeeded: false,
		},
		{
			name: "read error",
			setupMocks: func(c *mocks.MockCatalogRepositoryInterface, d *mocks.MockBrokerDiscountsRepositoryInterface) {
				c.On("GetCatalog", mock.Anything).Return(nil, errors.New("database error")).Once()
			},
			wantError: true,
		},
		{
			name: "save error",
			setupMocks: func(c *mocks.MockCatalogRepositoryInterface, d *mocks.MockBrokerDiscountsRepositoryInterface) {
				c.On("GetCatalog", mock.Anything).Return(nil, nil).Once()
				c.On("SaveCatalog", mock.Anything, mock.Anything).Return(errors.New("database error")).Once()
			},
			wantError: true,
		},
		{
			name: "discount error",
			setupMocks: func(c *mocks.MockCatalogRepositoryInterface, d *mocks.MockBrokerDiscountsRepositoryInterface) {
				c.On("GetCatalog", mock.Anything).Return(nil, nil).Once()
				c.On("SaveCatalog", mock.Anything, mock.Anything).Return(nil).Once()
				d.On("Upsert", mock.Anything, mock.Anything, mock.Anything, "system").
					Return(nil, errors.New("database error")).Once()
			},
			wantSeeded: true,
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalogRepo := new(mocks.MockCatalogRepositoryInterface)
			catalogRepo.Test(t)
			discountsRepo := new(mocks.MockBrokerDiscountsRepositoryInterface)
			discountsRepo.Test(t)
			tt.setupMocks(catalogRepo, discountsRepo)

			seeded, err := SeedCatalog(context.Background(), catalogRepo, discountsRepo, seed)

			assert.Equal(t, tt.wantSeeded, seeded)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			catalogRepo.AssertExpectations(t)
			discountsRepo.AssertExpectations(t)
		})
	}
}

func TestSeedCatalog_WithoutDiscountsRepository(t *testing.T) {
	catalogRepo := new(mocks.MockCatalogRepositoryInterface)
	catalogRepo.Test(t)
	catalogRepo.On("GetCatalog", mock.Anything).Return(nil, nil).Once()
	catalogRepo.On("SaveCatalog", mock.Anything, mock.Anything).Return(nil).Once()

	seeded, err := SeedCatalog(context.Background(), catalogRepo, nil, catalog.Default())

	assert.NoError(t, err)
	assert.True(t, seeded)
	catalogRepo.AssertExpectations(t)
}

func TestInitializeDatabase_Disabled(t *testing.T) {
	assert.Nil(t, InitializeDatabase(config.DatabaseConfig{Enabled: false}, catalog.Default()))
}
