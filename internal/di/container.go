// Package di provides dependency injection configuration for the
// ismism server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/desperati0n/ismism/internal/config"
	"github.com/desperati0n/ismism/internal/di/providers"
	"github.com/desperati0n/ismism/internal/logger"
	"github.com/desperati0n/ismism/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)

	// Catalog and search
	do.Provide(injector, providers.ProvideCatalog)
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideCatalogWatcher)

	// Business services
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideInteractionService)

	// Server
	do.Provide(injector, providers.ProvideWriteLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once everything is
// running. This triggers lazy initialization in dependency order.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SearchIndexHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.CatalogWatcherHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.CatalogService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.InteractionService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}

	return nil
}
