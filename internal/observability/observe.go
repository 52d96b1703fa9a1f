package observability

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Observer bundles the telemetry collaborators a service module needs.
type Observer struct {
	Logger  *slog.Logger
	Metrics *Metrics
	Tracer  trace.Tracer
}

// NewNoOpObserver returns an Observer that records nothing. Used in tests.
func NewNoOpObserver() Observer {
	return Observer{
		Logger:  slog.New(slog.DiscardHandler),
		Metrics: NewNoOpMetrics(),
		Tracer:  noop.NewTracerProvider().Tracer("noop"),
	}
}

// Observe wraps a service operation with tracing, metrics, logging and panic
// recovery. The returned error is wrapped with the operation name.
func Observe[T any](
	ctx context.Context,
	o Observer,
	module, operation string,
	fn func(ctx context.Context) (T, error),
) (result T, err error) {
	ctx, span := o.Tracer.Start(ctx, module+"."+operation, trace.WithAttributes(
		attribute.String("module", module),
		attribute.String("operation", operation),
	))
	defer span.End()

	o.Metrics.RecordAttempt(module, operation)
	start := time.Now()
	defer func() {
		o.Metrics.RecordDuration(module, operation, time.Since(start))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s.%s: %v", module, operation, r)
			o.Logger.ErrorContext(ctx, "panic recovered",
				slog.String("module", module),
				slog.String("operation", operation),
				slog.Any("panic", r),
			)
			o.Metrics.RecordFailure(module, operation)
			span.RecordError(err)
		}
	}()

	result, err = fn(ctx)
	if err != nil {
		err = fmt.Errorf("%s.%s: %w", module, operation, err)
		o.Metrics.RecordFailure(module, operation)
		span.RecordError(err)
		o.Logger.ErrorContext(ctx, "operation failed",
			slog.String("module", module),
			slog.String("operation", operation),
			slog.Any("error", err),
		)
		return result, err
	}

	return result, nil
}
