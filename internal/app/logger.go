package app

import (
	"github.com/guttosm/print-pricing-service/config"
	"github.com/guttosm/print-pricing-service/internal/logger"
	"github.com/rs/zerolog/log"
)

// InitializeLogger installs the global logger from LOG_LEVEL and LOG_PRETTY.
func InitializeLogger(cfg config.LogConfig) {
	logger.Init(cfg.Level, cfg.Pretty)
	log.Debug().Str("level", logger.ParseLevel(cfg.Level).String()).Msg("Logger initialized")
}
