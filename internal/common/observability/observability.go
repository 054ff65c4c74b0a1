// internal/common/observability/observability.go
package observability

import (
	"context"
	"time"

	"portfolio-backend/internal/common/logger"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

type Config struct {
	ServiceName    string
	JaegerEndpoint string
	// Registerer receives the OTel collector; nil means the default registry.
	Registerer promclient.Registerer
}

type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	meter          otelmetric.Meter
	tracer         trace.Tracer

	recommendLatency otelmetric.Float64Histogram
	inquiryCounter   otelmetric.Int64Counter
}

// New wires the OTel meter provider to Prometheus and, when an endpoint is
// given, a Jaeger span exporter. Failures degrade to no-op instruments.
func New(cfg Config, log logger.Logger) *Observability {
	o := &Observability{
		tracer: otel.Tracer(cfg.ServiceName),
	}

	opts := []prometheus.Option{}
	if cfg.Registerer != nil {
		opts = append(opts, prometheus.WithRegisterer(cfg.Registerer))
	}
	exporter, err := prometheus.New(opts...)
	if err != nil {
		log.Warn("Failed to create Prometheus exporter", map[string]interface{}{"error": err})
	} else {
		o.meterProvider = metric.NewMeterProvider(metric.WithReader(exporter))
		otel.SetMeterProvider(o.meterProvider)
		o.meter = o.meterProvider.Meter(cfg.ServiceName)

		o.recommendLatency, _ = o.meter.Float64Histogram(
			"recommend.duration",
			otelmetric.WithDescription("Recommendation computation duration"),
			otelmetric.WithUnit("ms"),
		)
		o.inquiryCounter, _ = o.meter.Int64Counter(
			"inquiries.received",
			otelmetric.WithDescription("Number of inquiry submissions stored"),
		)
	}

	if cfg.JaegerEndpoint != "" {
		exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.JaegerEndpoint)))
		if err != nil {
			log.Warn("Failed to create Jaeger exporter, tracing disabled", map[string]interface{}{
				"error":    err,
				"endpoint": cfg.JaegerEndpoint,
			})
		} else {
			o.tracerProvider = sdktrace.NewTracerProvider(
				sdktrace.WithBatcher(exp),
				sdktrace.WithResource(resource.NewSchemaless(
					attribute.String("service.name", cfg.ServiceName),
				)),
			)
			otel.SetTracerProvider(o.tracerProvider)
			o.tracer = o.tracerProvider.Tracer(cfg.ServiceName)
		}
	}

	return o
}

// StartSpan starts a span on the configured tracer. Without Jaeger the
// global no-op provider is used.
func (o *Observability) StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return o.tracer.Start(ctx, name)
}

func (o *Observability) RecordRecommendation(ctx context.Context, duration time.Duration, outcome string) {
	if o.recommendLatency != nil {
		o.recommendLatency.Record(ctx, float64(duration.Microseconds())/1000, otelmetric.WithAttributes(
			attribute.String("outcome", outcome),
		))
	}
}

func (o *Observability) RecordInquiry(ctx context.Context, kind string) {
	if o.inquiryCounter != nil {
		o.inquiryCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("kind", kind),
		))
	}
}

func (o *Observability) Shutdown(ctx context.Context) {
	if o.tracerProvider != nil {
		_ = o.tracerProvider.Shutdown(ctx)
	}
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
}
