package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"

	"github.com/Ramsey-B/fern/pkg/tracing/exporters"
)

// Init builds the trace provider, registers it globally, and installs the
// package tracer. When disabled it installs a no-op console exporter so span
// calls stay cheap. The returned shutdown flushes pending spans.
func Init(ctx context.Context, serviceName string, config exporters.OTLPConfig, enabled bool) (func(context.Context) error, error) {
	var exporter sdktrace.SpanExporter
	if enabled {
		otlp, err := exporters.NewOTLPExporter(ctx, config)
		if err != nil {
			return nil, err
		}
		exporter = otlp
	} else {
		exporter = &exporters.ConsoleExporter{}
	}

	res, err := sdkresource.Merge(
		sdkresource.Default(),
		sdkresource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	SetTracer(provider.Tracer(serviceName))

	return provider.Shutdown, nil
}
