package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("status", "active"),
		attribute.String("subscription_id", "sub-1"),
		attribute.String("sort_key", "name"),
	)
	require.Len(t, attrs, 2)
	assert.Equal(t, attribute.Key("status"), attrs[0].Key)
	assert.Equal(t, attribute.Key("sort_key"), attrs[1].Key)
}

func collectSums(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				out[m.Name] += dp.Value
			}
		}
	}
	return out
}

func TestMetricsRecord(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := New(Config{}, provider)
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordClassified(ctx, "active", 3)
	m.RecordClassified(ctx, "expired", 0)
	m.RecordClassifyError(ctx, "invalid_date")
	m.RecordQuery(ctx, "price")
	m.RecordQuery(ctx, "name")
	m.RecordSourceLoad(ctx, "demo", 5*time.Millisecond)

	sums := collectSums(t, reader)
	assert.Equal(t, int64(3), sums["portal_subscriptions_classified_total"])
	assert.Equal(t, int64(1), sums["portal_classify_errors_total"])
	assert.Equal(t, int64(2), sums["portal_queries_total"])
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordClassified(context.Background(), "active", 1)
		m.RecordClassifyError(context.Background(), "x")
		m.RecordQuery(context.Background(), "name")
		m.RecordSourceLoad(context.Background(), "demo", time.Second)
	})
}

func TestNewProviderDisabledIsNoop(t *testing.T) {
	provider, err := NewProvider(nil, Config{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	m, err := New(Config{ServiceName: "test"}, provider)
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestNewExporterRejectsUnknownProtocol(t *testing.T) {
	_, err := newExporter("carrier-pigeon", "")
	assert.Error(t, err)
}

func TestNewResourceCarriesServiceName(t *testing.T) {
	res := newResource(Config{ServiceName: " client-portal ", Environment: "test"})

	name, ok := res.Set().Value("service.name")
	require.True(t, ok)
	assert.Equal(t, "client-portal", name.AsString())

	env, ok := res.Set().Value("deployment.environment")
	require.True(t, ok)
	assert.Equal(t, "test", env.AsString())
}
