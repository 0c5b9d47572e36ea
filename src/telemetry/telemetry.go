// Package telemetry installs OpenTelemetry providers that export spans and
// metrics from a lint run as JSON on a writer, normally stderr.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ErrNilWriter is returned when Init has nowhere to export to.
var ErrNilWriter = errors.New("telemetry: nil writer")

// Config controls what Init installs.
type Config struct {
	// Writer receives exported spans and metrics.
	Writer io.Writer
	// Version is recorded as service.version.
	Version string
	// Metrics also installs a meter provider that is flushed on shutdown.
	Metrics bool
}

// Init sets the global tracer provider (and meter provider when
// cfg.Metrics) and returns a shutdown func that flushes and stops them.
// The shutdown func must be called before the process exits.
func Init(ctx context.Context, cfg Config) (shutdown func(context.Context) error, err error) {
	if cfg.Writer == nil {
		return nil, ErrNilWriter
	}

	var shutdownFuncs []func(context.Context) error
	shutdown = func(ctx context.Context) error {
		var errs []error
		for _, fn := range shutdownFuncs {
			errs = append(errs, fn(ctx))
		}
		return errors.Join(errs...)
	}

	res := resource.NewWithAttributes(
		"",
		attribute.String("service.name", "uxlint"),
		attribute.String("service.version", cfg.Version),
	)

	traceExporter, err := stdouttrace.New(stdouttrace.WithWriter(cfg.Writer))
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}
	// Spans export synchronously so nothing is pending at exit.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(traceExporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	shutdownFuncs = append(shutdownFuncs, tp.Shutdown)

	if cfg.Metrics {
		metricExporter, err := stdoutmetric.New(stdoutmetric.WithWriter(cfg.Writer))
		if err != nil {
			return nil, errors.Join(fmt.Errorf("create metric exporter: %w", err), shutdown(ctx))
		}
		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		)
		otel.SetMeterProvider(mp)
		shutdownFuncs = append(shutdownFuncs, mp.Shutdown)
	}

	return shutdown, nil
}
