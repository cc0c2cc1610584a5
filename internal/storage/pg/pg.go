// Package pg implements the relational store backing the live asset
// price list and per-user portfolios.
package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a pgx connection pool with a documented lifecycle: connect
// once at process start, inject into stores, close on shutdown.
type DB struct {
	Pool *pgxpool.Pool
}

// Connect opens a connection pool for the given Postgres URL.
func Connect(ctx context.Context, url string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 8
	cfg.MinConns = 1
	cfg.MaxConnIdleTime = 2 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &DB{Pool: pool}, nil
}

// Close releases the pool.
func (d *DB) Close() { d.Pool.Close() }

// Ping verifies connectivity.
func (d *DB) Ping(ctx context.Context) error { return d.Pool.Ping(ctx) }
