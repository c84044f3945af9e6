package eventstore

import (
	"context"
	"time"
)

// Logger is the interface for SQL query logging, operational metrics, warnings,
// and error reporting. It is satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger is the interface for context-aware logging with automatic
// trace correlation. Implemented by oteladapters.SlogBridgeLogger.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// MetricsCollector is the interface for collecting event store performance and
// operational metrics. Implementations map these calls onto their backend's
// instruments (histogram, counter, gauge).
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// ContextualMetricsCollector extends MetricsCollector with context-aware
// variants for trace-correlated metric recording.
type ContextualMetricsCollector interface {
	MetricsCollector
	RecordDurationContext(ctx context.Context, metric string, duration time.Duration, labels map[string]string)
	IncrementCounterContext(ctx context.Context, metric string, labels map[string]string)
}

// SpanContext represents an active tracing span that can be finished and
// updated with attributes.
type SpanContext interface {
	SetStatus(status string)
	AddAttribute(key, value string)
}

// TracingCollector is the interface for collecting distributed tracing
// information from event store operations. Dependency-free so users can
// integrate any tracing backend by implementing it.
type TracingCollector interface {
	StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext)
	FinishSpan(spanCtx SpanContext, status string, attrs map[string]string)
}

// Metric names recorded by the engines.
const (
	QueryDurationMetric       = "eventstore_query_duration_seconds"
	AppendDurationMetric      = "eventstore_append_duration_seconds"
	EventsQueriedMetric       = "eventstore_events_queried_total"
	EventsAppendedMetric      = "eventstore_events_appended_total"
	ConcurrencyConflictMetric = "eventstore_concurrency_conflicts_total"
	OperationErrorMetric      = "eventstore_operation_errors_total"
)

// Span and status names used by the engines.
const (
	QuerySpanName       = "eventstore.query"
	AppendSpanName      = "eventstore.append"
	SpanStatusOK        = "ok"
	SpanStatusError     = "error"
	SpanStatusConflict  = "conflict"
	LabelOperation      = "operation"
	LabelTable          = "table"
	OperationNameQuery  = "query"
	OperationNameAppend = "append"
)
