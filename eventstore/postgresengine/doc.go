// Package postgresengine implements the event store contract on PostgreSQL.
//
// Appends are guarded by a CTE that re-evaluates the max sequence number of
// the filtered stream inside the INSERT: when a concurrent commit advanced the
// stream past the expected sequence, zero rows are inserted and the engine
// reports eventstore.ErrConcurrencyConflict. This is the per-item
// serialization point of the circulation ledger - two librarians racing on the
// same item cannot both commit.
//
// The engine accepts pgxpool.Pool, sql.DB, or sqlx.DB connections through the
// internal adapter seam, and takes optional Logger, ContextualLogger,
// MetricsCollector, and TracingCollector implementations via functional
// options.
package postgresengine
