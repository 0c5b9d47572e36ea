package lint

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("uxlint/lint")
	meter  = otel.Meter("uxlint/lint")
)

var (
	linterDuration metric.Float64Histogram
	linterRuns     metric.Int64Counter
	linterResults  metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		linterDuration, err = meter.Float64Histogram(
			"uxlint_linter_duration_seconds",
			metric.WithDescription("Duration of a single linter operation"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		linterRuns, err = meter.Int64Counter(
			"uxlint_linter_runs_total",
			metric.WithDescription("Linter operations by linter, operation and outcome"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		linterResults, err = meter.Int64Counter(
			"uxlint_results_total",
			metric.WithDescription("Results produced by linter and type"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func startLinterSpan(ctx context.Context, linter string, op Op) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Linter."+op.String(),
		trace.WithAttributes(
			attribute.String("uxlint.linter", linter),
			attribute.String("uxlint.op", op.String()),
		),
	)
}

func endLinterSpan(span trace.Span, results int, err error) {
	span.SetAttributes(attribute.Int("uxlint.results", results))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func recordLinterMetrics(ctx context.Context, linter string, op Op, elapsed time.Duration, stats LinterStats, err error) {
	if initMetrics() != nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("linter", linter),
		attribute.String("op", op.String()),
		attribute.Bool("success", err == nil),
	)
	linterDuration.Record(ctx, elapsed.Seconds(), attrs)
	linterRuns.Add(ctx, 1, attrs)
	if stats.Errors > 0 {
		linterResults.Add(ctx, int64(stats.Errors), metric.WithAttributes(
			attribute.String("linter", linter), attribute.String("type", string(TypeError))))
	}
	if stats.Warnings > 0 {
		linterResults.Add(ctx, int64(stats.Warnings), metric.WithAttributes(
			attribute.String("linter", linter), attribute.String("type", string(TypeWarning))))
	}
}
