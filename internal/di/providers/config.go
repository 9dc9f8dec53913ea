// Package providers contains dependency injection providers for the book recommender.
package providers

import (
	"os"

	"github.com/samber/do/v2"

	"github.com/listenupapp/bookrec/internal/config"
	"github.com/listenupapp/bookrec/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(_ do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger. Logs go to stderr so that
// stdout stays reserved for console output.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Writer:      os.Stderr,
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting book recommender",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"catalog_backend", cfg.Catalog.Backend,
		"catalog_path", cfg.Catalog.SourcePath,
		"data_path", cfg.Catalog.DataPath,
	)

	return log, nil
}
