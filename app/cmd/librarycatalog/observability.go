package main

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/AntonStoeckl/library-catalog-go/app/shell"
	"github.com/AntonStoeckl/library-catalog-go/app/shell/config"
	"github.com/AntonStoeckl/library-catalog-go/app/shell/oteladapters"
)

const instrumentationName = "github.com/AntonStoeckl/library-catalog-go"

// setupObservability installs global OpenTelemetry providers and returns the matching service options.
// Exporters are attached by the deployment through the global providers, none are configured here.
func setupObservability(
	ctx context.Context,
	cfg config.ObservabilityConfig,
	logger *slog.Logger,
) ([]shell.Option, func(context.Context) error, error) {
	if !cfg.Enabled {
		return nil, func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceNameKey.String(cfg.ServiceName)))
	if err != nil {
		return nil, nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithResource(res))
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithResource(res))

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	options := []shell.Option{
		shell.WithTracing(oteladapters.NewTracingCollector(tracerProvider.Tracer(instrumentationName))),
		shell.WithMetrics(oteladapters.NewMetricsCollector(meterProvider.Meter(instrumentationName))),
		shell.WithContextualLogging(oteladapters.NewSlogBridgeLoggerTee(logger.Handler(), instrumentationName)),
	}

	shutdown := func(ctx context.Context) error {
		return errors.Join(tracerProvider.Shutdown(ctx), meterProvider.Shutdown(ctx))
	}

	return options, shutdown, nil
}
