package providers

import (
	"github.com/samber/do/v2"

	"github.com/desperati0n/ismism/internal/config"
	"github.com/desperati0n/ismism/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting ismism server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_path", cfg.Data.BasePath,
		"backend", cfg.Data.Backend,
		"catalog_path", cfg.Catalog.Path,
		"search", cfg.Search.Enabled,
	)

	return log, nil
}
