package shell

import (
	"context"

	"github.com/openshelf/circulation-ledger-go/eventstore"
	"github.com/openshelf/circulation-ledger-go/ledger/core"
)

// EventStore defines the event store operations the feature slices need.
// Both the Postgres engine and the in-memory engine satisfy it.
type EventStore interface {
	Query(ctx context.Context, filter eventstore.Filter) (
		eventstore.StorableEvents,
		eventstore.MaxSequenceNumberUint,
		error,
	)
	Append(
		ctx context.Context,
		filter eventstore.Filter,
		expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
		event eventstore.StorableEvent,
		additionalEvents ...eventstore.StorableEvent,
	) error
}

// Command represents the contract for all command types in the ledger.
// Each command encapsulates the intent and parameters needed to execute a
// specific circulation operation. The CommandType method enables polymorphic
// handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// CommandHandler defines the contract for components that process commands.
// Handlers orchestrate the complete command workflow: retrieving events,
// unmarshaling, business logic, and appending. The generic parameter C ensures
// type safety between commands and their corresponding handlers.
// Handlers return HandlerResult containing business outcomes (idempotency) and
// execution metadata (retry info).
type CommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// Query represents the contract for all query types in the ledger.
// Each query encapsulates the intent and parameters needed to retrieve a
// specific projection.
type Query interface {
	QueryType() string
}

// QueryHandler defines the contract for components that process queries and
// return projections. The generic parameters Q and R ensure type safety
// between queries and their corresponding results.
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// ProjectionFunc defines the signature for pure functions that transform
// events into projections. Functions must be deterministic - the same events
// always produce the same projection.
type ProjectionFunc[Q Query, R any] func(history core.DomainEvents, query Q) R

// FilterBuilderFunc constructs event store filters based on query parameters.
// For parameter-less queries, implementations return a filter without
// predicates (only filter by event types).
type FilterBuilderFunc[Q Query] func(query Q) eventstore.Filter
