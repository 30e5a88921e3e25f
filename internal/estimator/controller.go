package estimator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"mining-cost-calculator/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("estimator")

var (
	// ErrSubmitInFlight is returned when Submit is called while a previous
	// submission is still waiting on the remote calculator.
	ErrSubmitInFlight = errors.New("submission already in progress")

	// ErrUnknownField is returned by Change for names outside Fields.
	ErrUnknownField = errors.New("unknown form field")
)

// Calculator performs the remote profitability calculation.
type Calculator interface {
	Calculate(ctx context.Context, req CalculateRequest) (ResultData, error)
}

// Controller owns the form state for one user session.
type Controller struct {
	calc Calculator

	mu    sync.Mutex
	state State
}

func NewController(calc Calculator) *Controller {
	return &Controller{calc: calc}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Change overwrites the raw value of the named field. It does not validate.
func (c *Controller) Change(name, raw string) error {
	f, ok := ParseField(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	c.dispatch(FieldChanged{Field: f, Value: raw})
	return nil
}

// Submit validates the current input and, when valid, sends exactly one
// calculation request. The returned state is the state after the cycle.
// The error is the cause of a failed cycle: a *ValidationError, the
// upstream error, or ErrSubmitInFlight when a cycle is already running.
func (c *Controller) Submit(ctx context.Context) (State, error) {
	c.mu.Lock()
	if c.state.Loading {
		s := c.state
		c.mu.Unlock()
		return s, ErrSubmitInFlight
	}
	c.state = Reduce(c.state, SubmitStarted{})
	input := c.state.Input
	c.mu.Unlock()

	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "estimator.submit",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	req, err := Validate(input)
	if err != nil {
		var verr *ValidationError
		errors.As(err, &verr)

		recordFailure(ctx, span, KindValidation, err)
		logger.Info("form validation failed",
			zap.String("field", string(verr.Field)),
			zap.String("request_id", requestID),
		)
		return c.dispatch(ValidationFailed{Err: verr}), err
	}

	submissionCounter.Add(ctx, 1)
	span.SetAttributes(
		attribute.Float64("estimator.hash_rate", req.HashRate),
		attribute.Float64("estimator.power_consumption", req.PowerConsumption),
		attribute.Float64("estimator.electricity_cost", req.ElectricityCost),
		attribute.Float64("estimator.initial_investment", req.InitialInvestment),
	)

	start := time.Now()
	result, err := c.calc.Calculate(ctx, req)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	if err != nil {
		kind := classify(err)
		upstreamDuration.Record(ctx, elapsed, metric.WithAttributes(attribute.Bool("success", false)))
		recordFailure(ctx, span, kind, err)
		logger.Error("calculation request failed",
			zap.String("kind", string(kind)),
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.Float64("duration_ms", elapsed),
		)
		return c.dispatch(RequestFailed{Err: err}), err
	}

	upstreamDuration.Record(ctx, elapsed, metric.WithAttributes(attribute.Bool("success", true)))
	breakevenGauge.Record(ctx, result.BreakevenTimeline)

	span.AddEvent("calculation.complete", trace.WithAttributes(
		attribute.Float64("breakeven_months", result.BreakevenTimeline),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculation completed",
		zap.Float64("monthly_profit_usd", result.MonthlyProfitUSD),
		zap.Float64("breakeven_months", result.BreakevenTimeline),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	return c.dispatch(RequestSucceeded{Result: result}), nil
}

func (c *Controller) dispatch(ev Event) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Reduce(c.state, ev)
	return c.state
}

func recordFailure(ctx context.Context, span trace.Span, kind Kind, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(kind))
	errorCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", string(kind))))
}
