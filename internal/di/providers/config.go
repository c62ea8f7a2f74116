// Package providers contains dependency injection providers for the stackqa server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/stackqa/internal/config"
	"github.com/listenupapp/stackqa/internal/logger"
	"github.com/listenupapp/stackqa/internal/metrics"
)

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting StackQA server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"seed", seedLabel(cfg.Seed.Path),
		"id_scheme", string(cfg.Store.IDScheme),
	)

	return log, nil
}

// ProvideMetrics provides the Prometheus metrics. It returns nil when metrics
// are disabled; every consumer accepts a nil *metrics.Metrics.
func ProvideMetrics(i do.Injector) (*metrics.Metrics, error) {
	cfg := do.MustInvoke[*config.Config](i)
	if !cfg.Metrics.Enabled {
		return nil, nil
	}
	return metrics.New(), nil
}

func seedLabel(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}
