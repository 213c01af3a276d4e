// Package di provides dependency injection configuration for the storefront admin client.
package di

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/storefront/storefront-admin/internal/config"
	"github.com/storefront/storefront-admin/internal/di/providers"
	"github.com/storefront/storefront-admin/internal/logger"
	"github.com/storefront/storefront-admin/internal/resource"
	"github.com/storefront/storefront-admin/internal/session"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer(overrides config.Overrides) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, overrides)
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage and transport
	do.Provide(injector, providers.ProvideStorage)
	do.Provide(injector, providers.ProvideClient)

	// Stores
	do.Provide(injector, providers.ProvideSession)
	do.Provide(injector, providers.ProvideCatalog)

	// Console
	do.Provide(injector, providers.ProvideConsoleServer)

	return injector
}

// Bootstrap initializes the core services and rehydrates the persisted
// session. The console server is only started when invoked.
func Bootstrap(ctx context.Context, injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	log := do.MustInvoke[*logger.Logger](injector)
	if _, err := do.Invoke[*providers.StorageHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.ClientHandle](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*resource.Catalog](injector)

	sess := do.MustInvoke[*session.Store](injector)
	if err := sess.LoadSession(ctx); err != nil {
		log.WithError(err).Warn("Failed to load session")
	}

	return nil
}
