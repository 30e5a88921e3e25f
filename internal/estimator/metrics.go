package estimator

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Metric instruments. They are no-ops until InitMetrics runs.
var (
	submissionCounter metric.Int64Counter     = noop.Int64Counter{}
	errorCounter      metric.Int64Counter     = noop.Int64Counter{}
	upstreamDuration  metric.Float64Histogram = noop.Float64Histogram{}
	breakevenGauge    metric.Float64Gauge     = noop.Float64Gauge{}
)

// InitMetrics registers the estimator's OTel instruments.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("estimator")

	var err error

	submissionCounter, err = meter.Int64Counter("estimator.submissions.total",
		metric.WithDescription("Validated submissions forwarded to the remote calculator"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return fmt.Errorf("creating submission counter: %w", err)
	}

	errorCounter, err = meter.Int64Counter("estimator.errors.total",
		metric.WithDescription("Failed submissions by kind"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	upstreamDuration, err = meter.Float64Histogram("estimator.upstream.duration",
		metric.WithDescription("Duration of remote calculation requests in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(10, 50, 100, 250, 500, 1000, 2500, 5000, 10000),
	)
	if err != nil {
		return fmt.Errorf("creating upstream histogram: %w", err)
	}

	breakevenGauge, err = meter.Float64Gauge("estimator.last_breakeven_months",
		metric.WithDescription("Breakeven timeline of the last successful calculation"),
		metric.WithUnit("mo"),
	)
	if err != nil {
		return fmt.Errorf("creating breakeven gauge: %w", err)
	}

	return nil
}
