// Package di provides dependency injection configuration for the book recommender.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/bookrec/internal/config"
	"github.com/listenupapp/bookrec/internal/di/providers"
	"github.com/listenupapp/bookrec/internal/logger"
	"github.com/listenupapp/bookrec/internal/recommend"
)

// NewContainer creates and configures the DI container with all providers.
// Services are lazy; each binary invokes only what it needs.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Catalog layer
	do.Provide(injector, providers.ProvideCatalog)
	do.Provide(injector, providers.ProvideRecommender)

	// Front ends
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)
	do.Provide(injector, providers.ProvideConsole)

	return injector
}

// Bootstrap initializes configuration, logging and the catalog.
// Catalog failures surface here, before any request is served.
func Bootstrap(injector do.Injector) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.CatalogHandle](injector); err != nil {
		return err
	}
	_, err := do.Invoke[*recommend.Recommender](injector)
	return err
}
