// Package providers contains dependency injection providers for the storefront admin client.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/storefront/storefront-admin/internal/config"
	"github.com/storefront/storefront-admin/internal/logger"
)

// ProvideConfig provides the application configuration. Command-line
// overrides are read from the container when present.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	overrides, err := do.Invoke[config.Overrides](i)
	if err != nil {
		overrides = config.Overrides{}
	}
	return config.Load(overrides)
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development" && cfg.Logger.Level == "debug",
		Environment: cfg.App.Environment,
	})

	log.WithFields(map[string]any{
		"environment":    cfg.App.Environment,
		"log_level":      cfg.Logger.Level,
		"api_base_url":   cfg.API.BaseURL,
		"storage_driver": cfg.Storage.Driver,
	}).Debug("Starting storefront admin")

	return log, nil
}
