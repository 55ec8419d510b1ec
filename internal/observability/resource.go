// Package observability provides OpenTelemetry setup for tracing, metrics,
// and structured logging shared by the server and terminal hosts.
package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// Face attribute keys, used on the resource, on spans and on metric points.
const (
	AttrPreset = attribute.Key("watchface.preset")
	AttrMotion = attribute.Key("watchface.motion")
)

// ResourceConfig describes the process. Preset and Motion name the
// configured default face; empty values are left out.
type ResourceConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Preset         string
	Motion         string
}

// NewResource builds the resource shared by the tracer and meter providers.
// Only service and face attributes are set, so it never conflicts with the
// schema of resource.Default().
func NewResource(cfg ResourceConfig) *resource.Resource {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironment(cfg.Environment),
	}
	attrs = append(attrs, FaceAttributes(cfg.Preset, cfg.Motion)...)
	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}

// FaceAttributes returns the non-empty face attributes.
func FaceAttributes(preset, motion string) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if preset != "" {
		attrs = append(attrs, AttrPreset.String(preset))
	}
	if motion != "" {
		attrs = append(attrs, AttrMotion.String(motion))
	}
	return attrs
}

// AnnotateFace tags the span in ctx with the face being rendered.
func AnnotateFace(ctx context.Context, preset, motion string) {
	trace.SpanFromContext(ctx).SetAttributes(FaceAttributes(preset, motion)...)
}
