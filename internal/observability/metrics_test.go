package observability_test

import (
	"context"
	"testing"

	"github.com/aelexs/watchface/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestInitMetrics_NoEndpoint(t *testing.T) {
	cfg := observability.MetricsConfig{
		Resource: observability.NewResource(observability.ResourceConfig{
			ServiceName:    "test-service",
			ServiceVersion: "0.0.1",
			Environment:    "test",
		}),
	}

	mp, err := observability.InitMetrics(context.Background(), cfg)

	require.NoError(t, err)
	require.NotNil(t, mp)
}

func TestMetricsProvider_ShutdownNilProvider(t *testing.T) {
	mp := &observability.MetricsProvider{}

	err := mp.Shutdown(context.Background())

	assert.NoError(t, err)
}

func TestMetricsProvider_Shutdown(t *testing.T) {
	cfg := observability.MetricsConfig{
		Resource: observability.NewResource(observability.ResourceConfig{
			ServiceName:    "test-service",
			ServiceVersion: "0.0.1",
			Environment:    "test",
		}),
	}

	mp, err := observability.InitMetrics(context.Background(), cfg)
	require.NoError(t, err)

	err = mp.Shutdown(context.Background())

	assert.NoError(t, err)
}

func TestWidgetMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp, err := observability.InitMetrics(context.Background(), observability.MetricsConfig{
		Resource: observability.NewResource(observability.ResourceConfig{
			ServiceName: "test-service",
			Environment: "test",
			Preset:      "strap",
		}),
		Reader: reader,
	})
	require.NoError(t, err)
	defer func() { _ = mp.Shutdown(context.Background()) }()

	wm, err := observability.NewWidgetMetrics(mp.Meter("watchface/test"))
	require.NoError(t, err)

	ctx := context.Background()
	wm.Mounted(ctx, "strap")
	wm.Mounted(ctx, "strap")
	wm.Frame(ctx, "strap", 83, true)
	wm.Frame(ctx, "strap", 83, true)
	wm.Frame(ctx, "strap", 83, false)
	wm.Unmounted(ctx, "strap")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	preset, ok := rm.Resource.Set().Value(observability.AttrPreset)
	require.True(t, ok)
	assert.Equal(t, "strap", preset.AsString())

	got := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			got[m.Name] = m.Data
		}
	}

	ticks, ok := got["watchface.ticks"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, ticks.DataPoints, 1)
	assert.Equal(t, int64(2), ticks.DataPoints[0].Value)
	pointPreset, ok := ticks.DataPoints[0].Attributes.Value(observability.AttrPreset)
	require.True(t, ok)
	assert.Equal(t, "strap", pointPreset.AsString())

	mounted, ok := got["watchface.widgets.mounted"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, mounted.DataPoints, 1)
	assert.Equal(t, int64(1), mounted.DataPoints[0].Value)

	prims, ok := got["watchface.render.primitives"].(metricdata.Histogram[int64])
	require.True(t, ok)
	require.Len(t, prims.DataPoints, 1)
	assert.Equal(t, uint64(3), prims.DataPoints[0].Count)
}

func TestWidgetMetrics_NilIsNoop(t *testing.T) {
	var wm *observability.WidgetMetrics

	assert.NotPanics(t, func() {
		wm.Mounted(context.Background(), "classic")
		wm.Frame(context.Background(), "classic", 10, true)
		wm.Unmounted(context.Background(), "classic")
	})
}
