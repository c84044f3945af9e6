package circulationreport

import (
	"context"
	"time"

	"github.com/openshelf/circulation-ledger-go/eventstore"
	"github.com/openshelf/circulation-ledger-go/ledger/shell"
)

// EventStore defines the interface needed by the QueryHandler for event store operations.
type EventStore interface {
	Query(ctx context.Context, filter eventstore.Filter) (
		eventstore.StorableEvents,
		eventstore.MaxSequenceNumberUint,
		error,
	)
}

// QueryHandler orchestrates the complete query processing workflow.
// It handles infrastructure concerns like event store interactions and observability
// instrumentation, and delegates projection logic to the pure core functions.
type QueryHandler struct {
	eventStore       EventStore
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
}

// NewQueryHandler creates a new QueryHandler with the provided EventStore dependency and options.
func NewQueryHandler(eventStore EventStore, opts ...Option) QueryHandler {
	h := QueryHandler{
		eventStore: eventStore,
	}

	for _, opt := range opts {
		opt(&h)
	}

	return h
}

// Handle executes the complete query processing workflow: Query -> Unmarshal -> Project.
func (h QueryHandler) Handle(ctx context.Context, query Query) (CirculationReport, error) {
	queryStart := time.Now()
	ctx, span := shell.StartQuerySpan(ctx, h.tracingCollector, queryType)
	shell.LogQueryStart(ctx, h.logger, h.contextualLogger, queryType)

	filter := BuildEventFilter(query)

	ctx = eventstore.WithEventualConsistency(ctx)

	storableEvents, _, err := h.eventStore.Query(ctx, filter)
	if err != nil {
		h.recordQueryError(ctx, err, time.Since(queryStart), span)
		return CirculationReport{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		h.recordQueryError(ctx, err, time.Since(queryStart), span)
		return CirculationReport{}, err
	}

	result := ProjectCirculationReport(history, query)

	h.recordQuerySuccess(ctx, time.Since(queryStart), span)

	return result, nil
}

// Option defines a functional option for configuring QueryHandler.
type Option func(*QueryHandler)

// WithMetrics sets the metrics collector for the QueryHandler.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(h *QueryHandler) {
		h.metricsCollector = collector
	}
}

// WithTracing sets the tracing collector for the QueryHandler.
func WithTracing(collector shell.TracingCollector) Option {
	return func(h *QueryHandler) {
		h.tracingCollector = collector
	}
}

// WithContextualLogging sets the contextual logger for the QueryHandler.
func WithContextualLogging(logger shell.ContextualLogger) Option {
	return func(h *QueryHandler) {
		h.contextualLogger = logger
	}
}

// WithLogging sets the basic logger for the QueryHandler.
func WithLogging(logger shell.Logger) Option {
	return func(h *QueryHandler) {
		h.logger = logger
	}
}

// recordQuerySuccess records successful query execution with observability.
func (h QueryHandler) recordQuerySuccess(ctx context.Context, duration time.Duration, span shell.SpanContext) {
	shell.RecordQueryMetrics(ctx, h.metricsCollector, queryType, shell.StatusSuccess, duration)
	shell.FinishQuerySpan(h.tracingCollector, span, shell.StatusSuccess, duration, nil)
	shell.LogQuerySuccess(ctx, h.logger, h.contextualLogger, queryType, shell.StatusSuccess, duration)
}

// recordQueryError records failed query execution with observability.
func (h QueryHandler) recordQueryError(ctx context.Context, err error, duration time.Duration, span shell.SpanContext) {
	status := shell.StatusError

	switch {
	case shell.IsCancellationError(err):
		status = shell.StatusCanceled
	case shell.IsTimeoutError(err):
		status = shell.StatusTimeout
	}

	shell.RecordQueryMetrics(ctx, h.metricsCollector, queryType, status, duration)
	shell.FinishQuerySpan(h.tracingCollector, span, status, duration, err)
	shell.LogQueryError(ctx, h.logger, h.contextualLogger, queryType, err)
}
