package ui

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var apiErrorCounter metric.Int64Counter = noop.Int64Counter{}

// InitMetrics registers the instruments of the HTTP surface.
func InitMetrics() error {
	counter, err := otel.Meter("ui").Int64Counter("ui.request_errors.total",
		metric.WithDescription("Requests rejected before reaching the form controller"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating request error counter: %w", err)
	}
	apiErrorCounter = counter
	return nil
}
