// Package db provides PostgreSQL database access for the ATS service.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentinel errors surfaced to callers that need to distinguish constraint
// violations from transport failures.
var (
	// ErrDuplicateEmail is returned when creating a user with an email that
	// already exists.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrDuplicateApplication is returned when a candidate applies to a job
	// they have already applied to.
	ErrDuplicateApplication = errors.New("application already exists for this job and candidate")

	// ErrStatusConflict is returned when a status transition races with a
	// concurrent update and the expected current status no longer matches.
	ErrStatusConflict = errors.New("application status changed concurrently")
)

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

// Ping verifies the database connection is alive
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}
