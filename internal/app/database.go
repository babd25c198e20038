package app

import (
	"context"
	"time"

	"github.com/guttosm/print-pricing-service/config"
	"github.com/guttosm/print-pricing-service/internal/circuitbreaker"
	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/guttosm/print-pricing-service/internal/metrics"
	"github.com/guttosm/print-pricing-service/internal/middleware"
	"github.com/guttosm/print-pricing-service/internal/repository"
	"github.com/guttosm/print-pricing-service/internal/service"
	"github.com/rs/zerolog/log"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB             *repository.MongoDB
	CatalogRepo    repository.CatalogRepositoryInterface
	DiscountsRepo  repository.BrokerDiscountsRepositoryInterface
	QuotesRepo     repository.QuotesRepositoryInterface
	LoggingService service.LoggingService
	// CircuitBreakers is keyed by the name reported on /readyz.
	CircuitBreakers map[string]*circuitbreaker.CircuitBreaker
}

// InitializeDatabase initializes MongoDB connection and creates required repositories and services.
// The seed catalog is written on first start. Returns nil if database is disabled or connection fails.
func InitializeDatabase(cfg config.DatabaseConfig, seed model.Catalog) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Msg("Connected to MongoDB")

	if err := db.SetLogsTTL(context.Background(), cfg.LogsTTL); err != nil {
		log.Warn().Err(err).Dur("ttl", cfg.LogsTTL).Msg("Failed to set logs TTL index")
	}

	newBreaker := func(name string) *circuitbreaker.CircuitBreaker {
		return circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: cfg.CircuitBreakerFailureThreshold,
			SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
			Timeout:          cfg.CircuitBreakerTimeout,
			Name:             "mongodb-" + name,
			OnStateChange: func(name string, _, to circuitbreaker.State) {
				metrics.SetCircuitBreakerState(name, int(to))
			},
		})
	}
	catalogCB := newBreaker("catalog")
	discountsCB := newBreaker("broker-discounts")
	quotesCB := newBreaker("quotes")
	logsCB := newBreaker("logs")

	catalogRepo := repository.NewCatalogRepositoryWithCircuitBreaker(repository.NewCatalogRepository(db), catalogCB)
	discountsRepo := repository.NewBrokerDiscountsRepositoryWithCircuitBreaker(repository.NewBrokerDiscountsRepository(db), discountsCB)
	quotesRepo := repository.NewQuotesRepositoryWithCircuitBreaker(repository.NewQuotesRepository(db), quotesCB)

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)
	loggingService := service.NewLoggingService(logsRepo)
	middleware.InitAsyncLogger(loggingService, middleware.DefaultAsyncLoggerConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := SeedCatalog(ctx, catalogRepo, discountsRepo, seed); err != nil {
		log.Warn().Err(err).Msg("Failed to seed catalog")
	}

	return &DatabaseComponents{
		DB:             db,
		CatalogRepo:    catalogRepo,
		DiscountsRepo:  discountsRepo,
		QuotesRepo:     quotesRepo,
		LoggingService: loggingService,
		CircuitBreakers: map[string]*circuitbreaker.CircuitBreaker{
			"mongodb_catalog":          catalogCB,
			"mongodb_broker_discounts": discountsCB,
			"mongodb_quotes":           quotesCB,
			"mongodb_logs":             logsCB,
		},
	}
}

// SeedCatalog stores seed when no catalog has been stored yet.
// Broker discounts are seeded together with the catalog only, so discounts removed
// by an operator are not restored on restart. It reports whether anything was written.
func SeedCatalog(
	ctx context.Context,
	catalogRepo repository.CatalogRepositoryInterface,
	discountsRepo repository.BrokerDiscountsRepositoryInterface,
	seed model.Catalog,
) (bool, error) {
	stored, err := catalogRepo.GetCatalog(ctx)
	if err != nil {
		return false, err
	}
	if stored != nil {
		return false, nil
	}

	if err := catalogRepo.SaveCatalog(ctx, seed); err != nil {
		return false, err
	}

	if discountsRepo != nil {
		for _, d := range seed.BrokerDiscounts {
			if _, err := discountsRepo.Upsert(ctx, d.CategoryID, d.DiscountPercent, "system"); err != nil {
				return true, err
			}
		}
	}

	log.Info().
		Int("paper_stocks", len(seed.PaperStocks)).
		Int("sizes", len(seed.Sizes)).
		Int("turnarounds", len(seed.Turnarounds)).
		Int("categories", len(seed.Categories)).
		Int("broker_discounts", len(seed.BrokerDiscounts)).
		Msg("Seeded catalog")
	return true, nil
}
