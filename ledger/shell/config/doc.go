// Package config provides database configuration helpers for PostgreSQL
// connections used by the circulation ledger.
//
// This package contains factory functions for creating database connections
// using different PostgreSQL drivers (pgx.Pool, sql.DB, sqlx.DB). DSNs come
// from the environment (optionally via a .env file) with sensible local
// defaults.
//
// This package is part of the shell (infrastructure) layer, providing
// database connection configuration for the event sourcing system.
package config
