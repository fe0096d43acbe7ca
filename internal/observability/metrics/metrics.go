package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes portal instruments.
type Metrics struct {
	classified     metric.Int64Counter
	classifyErrors metric.Int64Counter
	queries        metric.Int64Counter
	sourceLoad     metric.Float64Histogram
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(newResource(cfg)),
	)
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the portal instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "client-portal"
	}
	meter := provider.Meter(name)

	classified, err := meter.Int64Counter("portal_subscriptions_classified_total",
		metric.WithDescription("Subscriptions classified, by derived status."))
	if err != nil {
		return nil, err
	}
	classifyErrors, err := meter.Int64Counter("portal_classify_errors_total",
		metric.WithDescription("Subscription records rejected by the classifier."))
	if err != nil {
		return nil, err
	}
	queries, err := meter.Int64Counter("portal_queries_total",
		metric.WithDescription("Subscription queries served, by sort key."))
	if err != nil {
		return nil, err
	}
	sourceLoad, err := meter.Float64Histogram("portal_source_load_seconds",
		metric.WithDescription("Time spent reading raw subscription records."),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		classified:     classified,
		classifyErrors: classifyErrors,
		queries:        queries,
		sourceLoad:     sourceLoad,
	}, nil
}

// RecordClassified increments the classified count for status.
func (m *Metrics) RecordClassified(ctx context.Context, status string, n int) {
	if m == nil || n <= 0 {
		return
	}
	attrs := FilterAttributes(attribute.String("status", strings.TrimSpace(status)))
	m.classified.Add(ctx, int64(n), metric.WithAttributes(attrs...))
}

// RecordClassifyError increments the rejected record count.
func (m *Metrics) RecordClassifyError(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("reason", strings.TrimSpace(reason)))
	m.classifyErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordQuery increments the query count for sortKey.
func (m *Metrics) RecordQuery(ctx context.Context, sortKey string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("sort_key", strings.TrimSpace(sortKey)))
	m.queries.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordSourceLoad observes how long a source read took.
func (m *Metrics) RecordSourceLoad(ctx context.Context, source string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("source", strings.TrimSpace(source)))
	m.sourceLoad.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attrs...))
}

func newResource(cfg Config) *resource.Resource {
	return resource.NewSchemaless(
		attribute.String("service.name", strings.TrimSpace(cfg.ServiceName)),
		attribute.String("deployment.environment", strings.TrimSpace(cfg.Environment)),
	)
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"status":   {},
	"reason":   {},
	"sort_key": {},
	"source":   {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
