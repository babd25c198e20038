// Package main is the entry point for the print-pricing-service application.
//
// @title           Print Pricing Service API
// @version         1.0.0
// @description     API for pricing custom print products.
//
//	Quotes run a fixed pipeline: area-based base price, broker or tagline discount,
//	exact-size markup, turnaround markup and itemized add-ons.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/print-pricing-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for the admin routes. Required if authentication is enabled.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Broker token as "Bearer <token>". Optional; quotes without it are priced at retail.
//
// @tag.name        Quotes
// @tag.description Price calculation and saved quotes
//
// @tag.name        Catalog
// @tag.description Paper stocks, sizes and turnaround times
//
// @tag.name        Admin
// @tag.description Broker discount maintenance and audit logs
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"time"

	_ "github.com/guttosm/print-pricing-service/docs" // swagger docs

	"github.com/guttosm/print-pricing-service/config"
	"github.com/guttosm/print-pricing-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	application, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	server := app.NewServer(application.Router, cfg.Server)
	runErr := server.Run(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := application.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to release resources")
	}

	if runErr != nil {
		log.Fatal().Err(runErr).Msg("Server error")
	}
}
