package postgresengine

import (
	"context"
	"time"

	"github.com/openshelf/circulation-ledger-go/eventstore"
)

// Logging helpers preferring the contextual logger when both are configured,
// so log records correlate with active spans.

func (es EventStore) logError(ctx context.Context, msg string, args ...any) {
	if es.contextualLogger != nil {
		es.contextualLogger.ErrorContext(ctx, msg, args...)
		return
	}

	if es.logger != nil {
		es.logger.Error(msg, args...)
	}
}

func (es EventStore) logWarn(ctx context.Context, msg string, args ...any) {
	if es.contextualLogger != nil {
		es.contextualLogger.WarnContext(ctx, msg, args...)
		return
	}

	if es.logger != nil {
		es.logger.Warn(msg, args...)
	}
}

// logOperation logs operational information at info level.
func (es EventStore) logOperation(ctx context.Context, action string, args ...any) {
	if es.contextualLogger != nil {
		es.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
		return
	}

	if es.logger != nil {
		es.logger.Info(logMsgOperation+action, args...)
	}
}

// logQueryWithDuration logs SQL queries with execution time at debug level.
func (es EventStore) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	args := []any{logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery}

	if es.contextualLogger != nil {
		es.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
		return
	}

	if es.logger != nil {
		es.logger.Debug(logMsgSQLExecuted+action, args...)
	}
}

func (es EventStore) recordDuration(ctx context.Context, metric string, operation string, duration time.Duration) {
	if es.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		eventstore.LabelOperation: operation,
		eventstore.LabelTable:     es.eventTableName,
	}

	if contextual, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	es.metricsCollector.RecordDuration(metric, duration, labels)
}

func (es EventStore) incrementCounter(ctx context.Context, metric string, operation string) {
	if es.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		eventstore.LabelOperation: operation,
		eventstore.LabelTable:     es.eventTableName,
	}

	if contextual, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metric, labels)
		return
	}

	es.metricsCollector.IncrementCounter(metric, labels)
}

func (es EventStore) recordError(ctx context.Context, operation string) {
	es.incrementCounter(ctx, eventstore.OperationErrorMetric, operation)
}

func (es EventStore) startSpan(ctx context.Context, name string) (context.Context, eventstore.SpanContext) {
	if es.tracingCollector == nil {
		return ctx, nil
	}

	return es.tracingCollector.StartSpan(ctx, name, map[string]string{
		eventstore.LabelTable: es.eventTableName,
	})
}

func (es EventStore) finishSpan(span eventstore.SpanContext, status string) {
	if es.tracingCollector == nil || span == nil {
		return
	}

	es.tracingCollector.FinishSpan(span, status, nil)
}
