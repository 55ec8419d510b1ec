package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// MetricsConfig holds configuration for the metrics provider.
type MetricsConfig struct {
	Resource     *resource.Resource // Nil means an empty resource
	OTLPEndpoint string             // Empty string disables OTLP export

	// Reader is an extra reader attached to the provider, e.g. a manual
	// reader in tests.
	Reader sdkmetric.Reader
}

// MetricsProvider wraps the OpenTelemetry meter provider with shutdown capabilities.
type MetricsProvider struct {
	provider *sdkmetric.MeterProvider
}

// InitMetrics initializes the OpenTelemetry meter provider.
// Returns a MetricsProvider that must be shut down on application exit.
func InitMetrics(ctx context.Context, cfg MetricsConfig) (*MetricsProvider, error) {
	res := cfg.Resource
	if res == nil {
		res = resource.Empty()
	}
	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}

	if cfg.OTLPEndpoint != "" {
		exporter, err := otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("create OTLP metric exporter: %w", err)
		}
		opts = append(opts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)))
	}
	if cfg.Reader != nil {
		opts = append(opts, sdkmetric.WithReader(cfg.Reader))
	}

	provider := sdkmetric.NewMeterProvider(opts...)

	otel.SetMeterProvider(provider)

	return &MetricsProvider{provider: provider}, nil
}

// Shutdown flushes any remaining metrics and shuts down the provider.
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}
	return mp.provider.Shutdown(ctx)
}

// Meter returns a meter from this provider, or from the global provider
// when mp has none.
func (mp *MetricsProvider) Meter(name string) metric.Meter {
	if mp == nil || mp.provider == nil {
		return Meter(name)
	}
	return mp.provider.Meter(name)
}

// Meter returns a meter for the given instrumentation name.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// WidgetMetrics records the lifecycle of mounted faces. A nil
// *WidgetMetrics records nothing.
type WidgetMetrics struct {
	ticks      metric.Int64Counter
	mounted    metric.Int64UpDownCounter
	primitives metric.Int64Histogram
}

// NewWidgetMetrics registers the widget instruments on m.
func NewWidgetMetrics(m metric.Meter) (*WidgetMetrics, error) {
	ticks, err := m.Int64Counter("watchface.ticks",
		metric.WithDescription("Time updates applied to mounted faces"),
		metric.WithUnit("{tick}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create ticks counter: %w", err)
	}
	mounted, err := m.Int64UpDownCounter("watchface.widgets.mounted",
		metric.WithDescription("Faces currently mounted"),
		metric.WithUnit("{widget}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create mounted counter: %w", err)
	}
	primitives, err := m.Int64Histogram("watchface.render.primitives",
		metric.WithDescription("Draw primitives emitted per frame"),
		metric.WithUnit("{primitive}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create primitives histogram: %w", err)
	}
	return &WidgetMetrics{ticks: ticks, mounted: mounted, primitives: primitives}, nil
}

func presetAttr(preset string) metric.MeasurementOption {
	return metric.WithAttributes(AttrPreset.String(preset))
}

// Mounted records a face being mounted.
func (w *WidgetMetrics) Mounted(ctx context.Context, preset string) {
	if w == nil {
		return
	}
	w.mounted.Add(ctx, 1, presetAttr(preset))
}

// Unmounted records a face being unmounted.
func (w *WidgetMetrics) Unmounted(ctx context.Context, preset string) {
	if w == nil {
		return
	}
	w.mounted.Add(ctx, -1, presetAttr(preset))
}

// Frame records one rendered frame; tick marks frames caused by a time
// update rather than an on-demand render.
func (w *WidgetMetrics) Frame(ctx context.Context, preset string, primitives int, tick bool) {
	if w == nil {
		return
	}
	if tick {
		w.ticks.Add(ctx, 1, presetAttr(preset))
	}
	w.primitives.Record(ctx, int64(primitives), presetAttr(preset))
}
