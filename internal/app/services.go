package app

import (
	"github.com/guttosm/print-pricing-service/config"
	"github.com/guttosm/print-pricing-service/internal/catalog"
	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/guttosm/print-pricing-service/internal/repository"
	"github.com/guttosm/print-pricing-service/internal/service"
	"github.com/rs/zerolog/log"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Engine       *service.PricingEngineService
	Catalog      service.CatalogService
	Quotes       service.QuoteService
	BrokerTokens service.BrokerTokenService
}

// LoadSeedCatalog returns the catalog from cfg.File, or the built-in catalog when no file is configured.
func LoadSeedCatalog(cfg config.CatalogConfig) (model.Catalog, error) {
	if cfg.File == "" {
		return catalog.Default(), nil
	}

	cat, err := catalog.Load(cfg.File)
	if err != nil {
		return model.Catalog{}, err
	}
	log.Info().Str("file", cfg.File).Msg("Loaded catalog file")
	return cat, nil
}

// InitializeServices initializes business logic services.
// db may be nil, in which case the seed catalog is served from memory and quotes are not persisted.
func InitializeServices(cfg config.Config, seed model.Catalog, db *DatabaseComponents) *ServiceComponents {
	var engineOpts []service.EngineOption
	switch {
	case cfg.Cache.Size > 0 && cfg.Cache.Shards > 1:
		engineOpts = append(engineOpts, service.WithShardedCache(cfg.Cache.Size, cfg.Cache.TTL, cfg.Cache.Shards))
	case cfg.Cache.Size > 0:
		engineOpts = append(engineOpts, service.WithCache(cfg.Cache.Size, cfg.Cache.TTL))
	}
	engine := service.NewPricingEngineService(engineOpts...)

	var (
		catalogRepo   repository.CatalogRepositoryInterface
		discountsRepo repository.BrokerDiscountsRepositoryInterface
		quotesRepo    repository.QuotesRepositoryInterface
	)
	if db != nil {
		catalogRepo = db.CatalogRepo
		discountsRepo = db.DiscountsRepo
		quotesRepo = db.QuotesRepo
	}

	catalogOpts := []service.CatalogOption{service.WithOnDiscountChange(engine.InvalidateCache)}
	if cfg.Catalog.CacheTTL > 0 {
		catalogOpts = append(catalogOpts, service.WithCatalogCacheTTL(cfg.Catalog.CacheTTL))
	}
	catalogService := service.NewCatalogService(catalogRepo, discountsRepo, seed, catalogOpts...)

	var tokens service.BrokerTokenService
	if cfg.Auth.BrokerTokenSecret != "" {
		tokens = service.NewBrokerTokenService(service.BrokerTokenConfig{
			Secret: cfg.Auth.BrokerTokenSecret,
			Issuer: cfg.Auth.BrokerTokenIssuer,
		})
	} else {
		log.Warn().Msg("BROKER_TOKEN_SECRET not set - all quotes are priced at retail")
	}

	return &ServiceComponents{
		Engine:       engine,
		Catalog:      catalogService,
		Quotes:       service.NewQuoteService(catalogService, engine, quotesRepo),
		BrokerTokens: tokens,
	}
}
