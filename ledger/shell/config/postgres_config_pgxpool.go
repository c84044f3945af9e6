package config

import (
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPGXPoolConfig creates a pgxpool.Config for the single-node database.
func PostgresPGXPoolConfig() *pgxpool.Config {
	return buildPGXPoolConfig(PostgresDSN())
}

// PostgresPGXPoolPrimaryConfig creates a pgxpool.Config for the primary node
// of a replicated database.
func PostgresPGXPoolPrimaryConfig() *pgxpool.Config {
	return buildPGXPoolConfig(PostgresPrimaryDSN())
}

// PostgresPGXPoolReplicaConfig creates a pgxpool.Config for the replica node
// of a replicated database.
func PostgresPGXPoolReplicaConfig() *pgxpool.Config {
	return buildPGXPoolConfig(PostgresReplicaDSN())
}

// PostgresPGXPoolTestConfig creates a pgxpool.Config for the test database.
func PostgresPGXPoolTestConfig() *pgxpool.Config {
	return buildPGXPoolConfig(PostgresTestDSN())
}

func buildPGXPoolConfig(dsn string) *pgxpool.Config {
	const defaultMaxConnections = int32(8)
	const defaultMinConnections = int32(2)
	const defaultMaxConnLifetime = time.Hour
	const defaultMaxConnIdleTime = time.Minute * 5
	const defaultHealthCheckPeriod = time.Minute
	const defaultConnectTimeout = time.Second * 5

	dbConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal("Failed to create a config, error: ", err)
	}

	dbConfig.MaxConns = defaultMaxConnections
	dbConfig.MinConns = defaultMinConnections
	dbConfig.MaxConnLifetime = defaultMaxConnLifetime
	dbConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	dbConfig.HealthCheckPeriod = defaultHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	return dbConfig
}
