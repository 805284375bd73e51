package infrastructure

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
)

const (
	ServiceName    = "mdscli"
	ServiceVersion = "0.1.0"
	MeterName      = "mdscli"
)

// Metrics bundles the pipeline instruments.
type Metrics struct {
	Meter          metric.Meter
	PrometheusHTTP http.Handler

	FetchTotal    metric.Int64Counter
	FetchFailures metric.Int64Counter
	ParseFailures metric.Int64Counter
	CacheHits     metric.Int64Counter
	CacheMisses   metric.Int64Counter
}

// InitializeMetrics sets up the OTel meter provider with a Prometheus
// exporter and creates the pipeline counters.
func InitializeMetrics(logger *slog.Logger) (*Metrics, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(ServiceVersion),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(MeterName)
	m := &Metrics{
		Meter:          meter,
		PrometheusHTTP: promhttp.Handler(),
	}

	if m.FetchTotal, err = meter.Int64Counter("mdscli_fetch_total",
		metric.WithDescription("Source fetch attempts")); err != nil {
		return nil, err
	}
	if m.FetchFailures, err = meter.Int64Counter("mdscli_fetch_failures_total",
		metric.WithDescription("Source fetches that exhausted every URL pattern")); err != nil {
		return nil, err
	}
	if m.ParseFailures, err = meter.Int64Counter("mdscli_parse_failures_total",
		metric.WithDescription("Adapter parse failures")); err != nil {
		return nil, err
	}
	if m.CacheHits, err = meter.Int64Counter("mdscli_cache_hits_total",
		metric.WithDescription("Dataset cache hits")); err != nil {
		return nil, err
	}
	if m.CacheMisses, err = meter.Int64Counter("mdscli_cache_misses_total",
		metric.WithDescription("Dataset cache misses")); err != nil {
		return nil, err
	}

	logger.Info("metrics initialized",
		slog.String("service", ServiceName),
		slog.String("exporter", "prometheus"))
	return m, nil
}
