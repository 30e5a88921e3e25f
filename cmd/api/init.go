package main

import (
	"context"
	"errors"

	"mining-cost-calculator/internal/estimator"
	"mining-cost-calculator/internal/observability"
	"mining-cost-calculator/internal/ui"
)

// initTelemetry starts the OTLP trace, metric and log pipelines and returns
// one shutdown func for all of them.
func initTelemetry(ctx context.Context) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	for _, start := range []func(context.Context) (func(context.Context) error, error){
		observability.InitTracing,
		observability.InitMetrics,
		observability.InitLogging,
	} {
		stop, err := start(ctx)
		if err != nil {
			_ = shutdown(ctx)
			return nil, err
		}
		shutdowns = append(shutdowns, stop)
	}

	return shutdown, nil
}

// initMetrics registers application-specific metric instruments. Add new
// domain InitMetrics calls here as the project grows.
func initMetrics() error {
	if err := estimator.InitMetrics(); err != nil {
		return err
	}
	return ui.InitMetrics()
}
