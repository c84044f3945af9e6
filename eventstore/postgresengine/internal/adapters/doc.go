// Package adapters provides database adapter implementations for the
// PostgreSQL event store engine.
//
// The adapter pattern supports multiple PostgreSQL client libraries:
// pgxpool.Pool, sql.DB, and sqlx.DB. All adapters provide equivalent
// functionality through a common DBAdapter interface, so the engine works
// with whichever connection type the embedding application already uses.
package adapters
