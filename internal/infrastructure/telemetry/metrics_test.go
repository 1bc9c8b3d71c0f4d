package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/hrapi/backend/internal/domain/tenancy"
	"github.com/hrapi/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zaptest"
)

func newTestMeter(t *testing.T) (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return reader, provider
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) (metricdata.Metrics, bool) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

func matches(set attribute.Set, attrs []attribute.KeyValue) bool {
	for _, kv := range attrs {
		v, ok := set.Value(kv.Key)
		if !ok || v != kv.Value {
			return false
		}
	}
	return true
}

// counterValue sums the data points of an int64 counter matching attrs.
func counterValue(t *testing.T, rm metricdata.ResourceMetrics, name string, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	m, ok := findMetric(rm, name)
	if !ok {
		return 0
	}
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "%s is not an int64 sum", name)

	var total int64
	for _, dp := range sum.DataPoints {
		if matches(dp.Attributes, attrs) {
			total += dp.Value
		}
	}
	return total
}

func TestNewMeterProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	mp, err := NewMeterProvider(ctx, MetricsConfig{ServiceName: "hrapi-test"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter(MeterName))
	assert.NoError(t, mp.ForceFlush(ctx))
	assert.NoError(t, mp.Shutdown(ctx))
}

func TestMetricsConfigFrom(t *testing.T) {
	cfg := MetricsConfigFrom(config.TelemetryConfig{
		Enabled:           true,
		CollectorEndpoint: "otel:4317",
		ServiceName:       "hrapi",
		MetricsInterval:   30 * time.Second,
	})
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 30*time.Second, cfg.ExportInterval)
	assert.Equal(t, "otel:4317", cfg.CollectorEndpoint)
}

func TestCounterAndHistogram(t *testing.T) {
	reader, provider := newTestMeter(t)
	meter := provider.Meter("test")
	ctx := context.Background()

	counter, err := NewCounter(meter, "requests_total", "Requests", "{request}")
	require.NoError(t, err)
	counter.Inc(ctx, AttrSource.String("header"))
	counter.Add(ctx, 4, AttrSource.String("header"))
	counter.Inc(ctx, AttrSource.String("claim"))

	hist, err := NewHistogram(meter, HistogramOpts{
		Name:       "latency_seconds",
		Unit:       "s",
		Boundaries: DBDurationBuckets,
	})
	require.NoError(t, err)
	hist.RecordDuration(ctx, 20*time.Millisecond)
	hist.Record(ctx, 2)

	rm := collect(t, reader)
	assert.Equal(t, int64(5), counterValue(t, rm, "requests_total", AttrSource.String("header")))
	assert.Equal(t, int64(1), counterValue(t, rm, "requests_total", AttrSource.String("claim")))

	m, ok := findMetric(rm, "latency_seconds")
	require.True(t, ok)
	h := m.Data.(metricdata.Histogram[float64])
	require.Len(t, h.DataPoints, 1)
	assert.Equal(t, uint64(2), h.DataPoints[0].Count)
	assert.Equal(t, DBDurationBuckets, h.DataPoints[0].Bounds)
}

func TestTenancyMetrics(t *testing.T) {
	reader, provider := newTestMeter(t)
	ctx := context.Background()

	m, err := NewTenancyMetrics(provider.Meter(MeterName))
	require.NoError(t, err)

	m.RecordCacheHit(ctx, "id")
	m.RecordCacheHit(ctx, "id")
	m.RecordCacheMiss(ctx, "subdomain")
	m.RecordResolution(ctx, "header")
	m.RecordLeaveTransition(ctx, hr.LeaveStatusPending, hr.LeaveStatusApproved)

	rm := collect(t, reader)
	assert.Equal(t, int64(2), counterValue(t, rm, "tenant_cache_lookup_total",
		AttrLookup.String("id"), AttrResult.String("hit")))
	assert.Equal(t, int64(1), counterValue(t, rm, "tenant_cache_lookup_total",
		AttrLookup.String("subdomain"), AttrResult.String("miss")))
	assert.Equal(t, int64(1), counterValue(t, rm, "tenant_resolution_total", AttrSource.String("header")))
	assert.Equal(t, int64(1), counterValue(t, rm, "leave_transition_total",
		AttrFromStatus.String(hr.LeaveStatusPending.String()),
		AttrToStatus.String(hr.LeaveStatusApproved.String())))
}

type fixedSelector struct {
	strategy tenancy.CustomizationStrategy
}

func (s fixedSelector) SelectStrategy(tenancy.TenantConfiguration) tenancy.CustomizationStrategy {
	return s.strategy
}

type namedStrategy struct {
	tenancy.CustomizationStrategy
	name string
}

func (s namedStrategy) Name() string { return s.name }

func TestInstrumentedSelector(t *testing.T) {
	reader, provider := newTestMeter(t)
	m, err := NewTenancyMetrics(provider.Meter(MeterName))
	require.NoError(t, err)

	strategy := namedStrategy{name: "company1"}
	selector := NewInstrumentedSelector(fixedSelector{strategy: strategy}, m)

	got := selector.SelectStrategy(tenancy.DefaultTenantConfiguration())
	selector.SelectStrategy(tenancy.DefaultTenantConfiguration())
	assert.Equal(t, "company1", got.Name())

	rm := collect(t, reader)
	assert.Equal(t, int64(2), counterValue(t, rm, "strategy_selection_total", AttrStrategy.String("company1")))
}
