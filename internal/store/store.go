package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store provides read access to the cost record tables. Every operation is a
// bounded, idempotent read; the ingestion pipeline owns all writes.
type Store struct {
	pool *pgxpool.Pool

	Spends *SpendStore
	Audit  *AuditStore
}

// New creates a new Store with all sub-stores initialized
func New(pool *pgxpool.Pool) *Store {
	s := &Store{
		pool: pool,
	}

	s.Spends = &SpendStore{pool: pool}
	s.Audit = &AuditStore{pool: pool}

	return s
}

// NewStore creates a new Store from a database URL
func NewStore(databaseURL string) (*Store, error) {
	pool, err := NewPool(context.Background(), DefaultConfig(databaseURL))
	if err != nil {
		return nil, err
	}
	return New(pool), nil
}

// Close closes the database connection pool
func (s *Store) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Stats returns database pool statistics
func (s *Store) Stats() *pgxpool.Stat {
	return s.pool.Stat()
}
