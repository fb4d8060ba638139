// Package iodb opens PostgreSQL connection pools with pgxpool.
// It is used by the PostgreSQL fetch journal.
package iodb

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gnames/macrofitas/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DSN builds a connection string out of database settings.
func DSN(cfg config.DatabaseConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     "/" + cfg.Database,
		RawQuery: "sslmode=" + url.QueryEscape(cfg.SSLMode),
	}
	return u.String()
}

// Connect creates a connection pool and verifies it with a ping.
// The journal writes small rows, so pool settings are fixed.
func Connect(
	ctx context.Context,
	cfg config.DatabaseConfig,
) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, ConnectionError(cfg, err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = 0
	poolConfig.MaxConnIdleTime = 0

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, ConnectionError(cfg, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, ConnectionError(cfg, err)
	}

	return pool, nil
}

// TableExists checks if a table exists in the public schema.
func TableExists(
	ctx context.Context,
	pool *pgxpool.Pool,
	tableName string,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)
	`

	var exists bool
	err := pool.QueryRow(ctx, query, tableName).Scan(&exists)
	if err != nil {
		return false, TableCheckError(tableName, err)
	}

	return exists, nil
}
