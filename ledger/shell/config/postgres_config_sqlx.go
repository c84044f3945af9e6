package config

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

// PostgresSQLXConfig creates a configured *sqlx.DB for the single-node database.
func PostgresSQLXConfig() *sqlx.DB {
	return buildSQLXConfig(PostgresDSN())
}

// PostgresSQLXPrimaryConfig creates a configured *sqlx.DB for the primary node
// of a replicated database.
func PostgresSQLXPrimaryConfig() *sqlx.DB {
	return buildSQLXConfig(PostgresPrimaryDSN())
}

// PostgresSQLXReplicaConfig creates a configured *sqlx.DB for the replica node
// of a replicated database.
func PostgresSQLXReplicaConfig() *sqlx.DB {
	return buildSQLXConfig(PostgresReplicaDSN())
}

func buildSQLXConfig(dsn string) *sqlx.DB {
	const defaultMaxOpenConnections = 50
	const defaultMaxIdleConnections = 10
	const defaultMaxConnLifetime = time.Hour
	const defaultMaxConnIdleTime = time.Minute * 5

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		log.Fatal("Failed to open database connection, error: ", err)
	}

	// Configure connection pool settings
	db.SetMaxOpenConns(defaultMaxOpenConnections)
	db.SetMaxIdleConns(defaultMaxIdleConnections)
	db.SetConnMaxLifetime(defaultMaxConnLifetime)
	db.SetConnMaxIdleTime(defaultMaxConnIdleTime)

	// Test the connection
	if pingErr := db.PingContext(context.Background()); pingErr != nil {
		log.Fatal("Failed to ping database, error: ", pingErr)
	}

	return db
}
