// Package db provides PostgreSQL persistence for interview records.
package db

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates a requested record does not exist. Callers wrap it
// with the record kind and id.
var ErrNotFound = errors.New("record not found")

// ErrVersionConflict indicates an optimistic-concurrency check failed:
// the planner state row was modified by a concurrent transition.
var ErrVersionConflict = errors.New("planner state version conflict")

// psql builds queries with PostgreSQL positional placeholders. Used where
// filters are dynamic; point lookups keep plain SQL.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}
