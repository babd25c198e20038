// Package app wires configuration, storage, services and the HTTP router
// into a runnable pricing service.
package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/print-pricing-service/config"
	"github.com/guttosm/print-pricing-service/internal/http"
	"github.com/guttosm/print-pricing-service/internal/middleware"
)

// Application is the wired service: its router plus the resources released on shutdown.
type Application struct {
	Router   *gin.Engine
	Services *ServiceComponents
	db       *DatabaseComponents
}

// InitializeApp builds the service bottom-up. Only an unreadable catalog file
// is fatal; MongoDB being down leaves pricing on the seed catalog.
func InitializeApp(cfg config.Config) (*Application, error) {
	InitializeLogger(cfg.Log)

	seed, err := LoadSeedCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}

	db := InitializeDatabase(cfg.Database, seed)
	services := InitializeServices(cfg, seed, db)
	routing := InitializeRouter(services, db, cfg)

	return &Application{
		Router:   http.NewRouter(routing.HealthHandler, routing.Config),
		Services: services,
		db:       db,
	}, nil
}

// Close flushes queued log entries, then disconnects from MongoDB.
func (a *Application) Close(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	middleware.StopAsyncLogger()
	return a.db.DB.Close(ctx)
}
