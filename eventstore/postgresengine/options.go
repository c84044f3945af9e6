package postgresengine

import (
	"github.com/openshelf/circulation-ledger-go/eventstore"
)

// Option defines a functional option for configuring the EventStore engine.
type Option func(*EventStore) error

// WithTableName sets the events table name for the engine.
func WithTableName(tableName string) Option {
	return func(es *EventStore) error {
		if tableName == "" {
			return eventstore.ErrEmptyEventsTableName
		}

		es.eventTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the engine.
//
// Debug level: SQL queries with execution timing (development use)
// Info level: event counts, durations, concurrency conflicts (production-safe)
// Warn level: non-critical issues like cleanup failures
// Error level: critical failures that cause operation failures.
func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) error {
		es.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the engine. Log messages
// carry the request context, giving automatic trace/span correlation when
// tracing is enabled.
func WithContextualLogger(logger eventstore.ContextualLogger) Option {
	return func(es *EventStore) error {
		es.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the engine. The collector
// receives query/append durations, event counts, concurrency conflicts, and
// database errors.
func WithMetrics(collector eventstore.MetricsCollector) Option {
	return func(es *EventStore) error {
		es.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the engine. The collector
// receives spans for query/append operations with error tracking.
func WithTracing(collector eventstore.TracingCollector) Option {
	return func(es *EventStore) error {
		es.tracingCollector = collector
		return nil
	}
}
