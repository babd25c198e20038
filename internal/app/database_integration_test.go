//go:build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/print-pricing-service/config"
	"github.com/guttosm/print-pricing-service/internal/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func databaseConfig(uri, dbName string) config.DatabaseConfig {
	return config.DatabaseConfig{
		URI:                            uri,
		DatabaseName:                   dbName,
		LogsTTL:                        30 * 24 * time.Hour,
		Enabled:                        true,
		CircuitBreakerFailureThreshold: 5,
		CircuitBreakerSuccessThreshold: 2,
		CircuitBreakerTimeout:          30 * time.Second,
	}
}

func TestInitializeDatabase_Integration(t *testing.T) {
	ctx := context.Background()

	// Use shared container with unique database names for each subtest
	uri := getSharedContainerURI()

	t.Run("initialize with enabled database", func(t *testing.T) {
		components := InitializeDatabase(databaseConfig(uri, sanitizeDBNameForApp(t.Name())), catalog.Default())

		require.NotNil(t, components)
		defer func() { _ = components.DB.Close(ctx) }()
		assert.NotNil(t, components.CatalogRepo)
		assert.NotNil(t, components.DiscountsRepo)
		assert.NotNil(t, components.QuotesRepo)
		assert.NotNil(t, components.LoggingService)
		assert.Len(t, components.CircuitBreakers, 4)
	})

	t.Run("initialize with disabled database", func(t *testing.T) {
		components := InitializeDatabase(config.DatabaseConfig{Enabled: false}, catalog.Default())
		assert.Nil(t, components)
	})

	t.Run("seed catalog is stored once", func(t *testing.T) {
		seed := catalog.Default()
		components := InitializeDatabase(databaseConfig(uri, sanitizeDBNameForApp(t.Name())), seed)
		require.NotNil(t, components)
		defer func() { _ = components.DB.Close(ctx) }()

		stored, err := components.CatalogRepo.GetCatalog(ctx)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Len(t, stored.PaperStocks, len(seed.PaperStocks))
		assert.Len(t, stored.Sizes, len(seed.Sizes))
		assert.Len(t, stored.Turnarounds, len(seed.Turnarounds))

		discounts, err := components.DiscountsRepo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, discounts, len(seed.BrokerDiscounts))

		// A removed discount stays removed on the next start
		removed, err := components.DiscountsRepo.Delete(ctx, seed.BrokerDiscounts[0].CategoryID)
		require.NoError(t, err)
		require.True(t, removed)

		seeded, err := SeedCatalog(ctx, components.CatalogRepo, components.DiscountsRepo, seed)
		require.NoError(t, err)
		assert.False(t, seeded)

		discounts, err = components.DiscountsRepo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, discounts, len(seed.BrokerDiscounts)-1)
	})

	t.Run("circuit breaker integration", func(t *testing.T) {
		cfg := databaseConfig(uri, sanitizeDBNameForApp(t.Name()))
		cfg.CircuitBreakerFailureThreshold = 2
		cfg.CircuitBreakerSuccessThreshold = 1
		cfg.CircuitBreakerTimeout = 100 * time.Millisecond

		components := InitializeDatabase(cfg, catalog.Default())
		require.NotNil(t, components)
		defer func() { _ = components.DB.Close(ctx) }()

		for name, cb := range components.CircuitBreakers {
			stats := cb.GetStats()
			assert.Equal(t, "closed", stats.State, name)
			assert.True(t, stats.IsHealthy, name)
		}
	})

	t.Run("services read the stored catalog", func(t *testing.T) {
		components := InitializeDatabase(databaseConfig(uri, sanitizeDBNameForApp(t.Name())), catalog.Default())
		require.NotNil(t, components)
		defer func() { _ = components.DB.Close(ctx) }()

		services := InitializeServices(config.Config{}, catalog.Default(), components)

		_, err := services.Catalog.UpsertBrokerDiscount(ctx, "flyers", decimal.NewFromInt(15), "integration")
		require.NoError(t, err)

		found := false
		for _, d := range services.Catalog.ListBrokerDiscounts(ctx) {
			if d.CategoryID == "flyers" {
				found = true
				assert.Equal(t, "15", d.DiscountPercent.String())
			}
		}
		assert.True(t, found)
	})
}
