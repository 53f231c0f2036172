package tracing

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"succession-backend/internal/shared/telemetry"
)

const (
	ServiceName = "succession-backend"

	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Options selects the span exporter.
type Options struct {
	Exporter    string
	Endpoint    string
	Environment string
	// Writer receives stdout spans; defaults to os.Stdout.
	Writer io.Writer
}

// Init installs a global tracer provider and returns its shutdown func.
// With ExporterNone spans are still created but never exported.
func Init(ctx context.Context, opts Options) (func(context.Context) error, error) {
	res, err := resource.New(ctx, resource.WithAttributes(
		attribute.String("service.name", ServiceName),
		attribute.String("deployment.environment", strings.TrimSpace(opts.Environment)),
	))
	if err != nil {
		telemetry.Warn("tracing.resource_failed", map[string]any{"error": err})
	}

	exporter, err := buildExporter(ctx, opts)
	if err != nil {
		return nil, err
	}

	providerOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if exporter != nil {
		providerOpts = append(providerOpts, sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)))
	}
	tp := sdktrace.NewTracerProvider(providerOpts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	telemetry.Info("tracing.init", map[string]any{"exporter": exporterName(opts.Exporter)})
	return tp.Shutdown, nil
}

func buildExporter(ctx context.Context, opts Options) (sdktrace.SpanExporter, error) {
	switch exporterName(opts.Exporter) {
	case ExporterStdout:
		w := opts.Writer
		if w == nil {
			w = os.Stdout
		}
		return stdouttrace.New(stdouttrace.WithWriter(w))
	case ExporterOTLP:
		var otlpOpts []otlptracehttp.Option
		if endpoint := strings.TrimSpace(opts.Endpoint); endpoint != "" {
			otlpOpts = append(otlpOpts, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, otlpOpts...)
	default:
		return nil, nil
	}
}

func exporterName(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ExporterStdout:
		return ExporterStdout
	case ExporterOTLP:
		return ExporterOTLP
	default:
		return ExporterNone
	}
}

// Tracer returns the named tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(ServiceName + "/" + name)
}
