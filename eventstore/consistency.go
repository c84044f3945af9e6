package eventstore

import "context"

// ConsistencyLevel defines the consistency requirements for event store operations.
type ConsistencyLevel int

const (
	// StrongConsistency requires reads from the primary database to guarantee
	// read-after-write consistency. This is the default: command handlers run a
	// read-check-write cycle and must see their own writes.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows reads from a replica, trading freshness for
	// reduced primary load. Suitable for pure query handlers and for the
	// analytics read path, which explicitly tolerates slightly stale data.
	EventualConsistency
)

// contextKey is a private type to prevent context key collisions.
type contextKey string

const consistencyLevelKey contextKey = "eventstore.consistency_level"

// WithStrongConsistency returns a context that signals operations should read
// from the primary database.
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, consistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency returns a context that signals operations may read
// from a replica.
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, consistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel extracts the consistency level from the context,
// defaulting to StrongConsistency.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(consistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

// String provides a string representation of ConsistencyLevel for logging.
func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
