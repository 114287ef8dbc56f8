package core

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/go-drift/sparkle/pkg/config"
	"github.com/go-drift/sparkle/pkg/errors"
	"github.com/go-drift/sparkle/pkg/resource"
)

// Configure applies cfg process-wide: it builds the default fetcher and
// installs a logger for units, resources and error reports. Fetch metrics
// are registered with reg when enabled.
func Configure(cfg *config.Config, reg prometheus.Registerer) (*zap.Logger, error) {
	resolved, err := config.Resolve(cfg)
	if err != nil {
		return nil, err
	}

	logger, err := config.NewLogger(resolved.Log)
	if err != nil {
		return nil, err
	}

	f, err := resource.NewFetcher(resolved.Fetch, reg)
	if err != nil {
		return nil, err
	}

	SetDefaultFetcher(f)
	SetLogger(logger.Named("core"))
	resource.SetLogger(logger.Named("resource"))
	errors.SetHandler(&errors.LogHandler{Logger: logger.Named("errors")})

	logger.Debug("sparkle configured",
		zap.String("base_url", resolved.Fetch.BaseURL),
		zap.String("root", resolved.Fetch.Root),
		zap.String("timeout", resolved.Fetch.Timeout),
		zap.Bool("cache", resolved.Fetch.Cache))
	return logger, nil
}
