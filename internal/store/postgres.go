// Package store implements the relational persistence layer on PostgreSQL.
// Ownership-scoped mutations rely on the combined WHERE clause (row id +
// owning company by user) being atomic at the statement level; zero matched
// rows collapses "does not exist" and "not yours" into ErrNotFound.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentinel errors returned by the store.
var (
	// ErrNotFound is returned when a row is missing or does not belong to
	// the caller. Callers must not assume which occurred.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique constraint rejects an insert.
	ErrDuplicate = errors.New("record already exists")

	// ErrProfileConflict is returned when onboarding would give a user both
	// a company and a job seeker profile.
	ErrProfileConflict = errors.New("user already has a profile of the other kind")

	// ErrInvalidTransition is returned when a status change is rejected by
	// the job post state machine.
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// Store wraps a pgx connection pool with the application's queries.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by a verified pgxpool connection pool.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Ping verifies database connectivity (readiness probe).
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}
