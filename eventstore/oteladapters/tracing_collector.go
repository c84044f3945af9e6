package oteladapters

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/openshelf/circulation-ledger-go/eventstore"
)

// TracingCollector implements eventstore.TracingCollector using the
// OpenTelemetry tracing API, creating spans for event store operations and
// propagating trace context.
type TracingCollector struct {
	tracer trace.Tracer
}

// NewTracingCollector creates a new OpenTelemetry tracing collector. The
// tracer should come from your TracerProvider.
func NewTracingCollector(tracer trace.Tracer) *TracingCollector {
	return &TracingCollector{tracer: tracer}
}

// StartSpan creates a new span with the given name and attributes.
func (t *TracingCollector) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, eventstore.SpanContext) {
	spanOptions := make([]trace.SpanStartOption, 0, len(attrs))
	for key, value := range attrs {
		spanOptions = append(spanOptions, trace.WithAttributes(attribute.String(key, value)))
	}

	spanCtx, span := t.tracer.Start(ctx, name, spanOptions...)

	return spanCtx, &otelSpanContext{span: span}
}

// FinishSpan completes a span with the given status and final attributes.
func (t *TracingCollector) FinishSpan(spanCtx eventstore.SpanContext, status string, attrs map[string]string) {
	otelSpanCtx, ok := spanCtx.(*otelSpanContext)
	if !ok {
		return
	}

	for key, value := range attrs {
		otelSpanCtx.span.SetAttributes(attribute.String(key, value))
	}

	otelSpanCtx.SetStatus(status)
	otelSpanCtx.span.End()
}

var _ eventstore.TracingCollector = (*TracingCollector)(nil)

// otelSpanContext implements eventstore.SpanContext by wrapping an
// OpenTelemetry span.
type otelSpanContext struct {
	span trace.Span
}

// SetStatus maps the engine's status strings onto OpenTelemetry status codes.
func (s *otelSpanContext) SetStatus(status string) {
	switch status {
	case eventstore.SpanStatusOK:
		s.span.SetStatus(codes.Ok, "")
	case eventstore.SpanStatusError, eventstore.SpanStatusConflict:
		s.span.SetStatus(codes.Error, status)
	default:
		s.span.SetStatus(codes.Unset, status)
	}
}

// AddAttribute sets a string attribute on the span.
func (s *otelSpanContext) AddAttribute(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}
