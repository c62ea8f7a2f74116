// Package di provides dependency injection configuration for the stackqa server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/stackqa/internal/api"
	"github.com/listenupapp/stackqa/internal/config"
	"github.com/listenupapp/stackqa/internal/di/providers"
)

// NewContainer creates and configures the DI container with all providers.
// The HTTP listener is registered but only started by Bootstrap.
func NewContainer(cfg *config.Config) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, cfg)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideMetrics)

	// Data layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideRepository)
	do.Provide(injector, providers.ProvideSearchService)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideQuestionService)
	do.Provide(injector, providers.ProvideQueryService)
	do.Provide(injector, providers.ProvideTagService)

	// Server
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideAPIServer)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server.
func Bootstrap(injector *do.RootScope) error {
	if _, err := Handler(injector); err != nil {
		return err
	}

	_, err := do.Invoke[*providers.HTTPServerHandle](injector)
	return err
}

// Handler builds everything up to the HTTP handler without listening.
// Provider failures, such as an invalid seed file, are returned as errors.
func Handler(injector *do.RootScope) (*api.Server, error) {
	return do.Invoke[*api.Server](injector)
}
