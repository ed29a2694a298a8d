package store

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// maxConns caps the shared pool. Each request borrows at most one connection
// and returns it before responding.
const maxConns = 5

// Timing reports how long an operation spent acquiring a pooled connection
// and running its query, in milliseconds. The values are advisory and only
// surface through Server-Timing headers.
type Timing struct {
	ConnMS  float64
	QueryMS float64
}

// Store executes parameterized queries against Postgres and maps rows onto
// model types. It holds no state beyond the pooled database handle, so a
// single value is shared by all request handlers.
type Store struct {
	db *sqlx.DB
}

// Open connects to databaseURL, verifies the connection and bounds the pool.
func Open(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	return &Store{db: db}, nil
}

// NewWithDB wraps an already-open handle. Used by tests.
func NewWithDB(db *sqlx.DB) *Store { return &Store{db: db} }

// Close releases the pool.
func (s *Store) Close() error { return s.db.Close() }

// Ping acquires a connection and runs a trivial query, timing both steps
// separately. It backs the /customers/ping latency probe.
func (s *Store) Ping(ctx context.Context) (Timing, error) {
	var tm Timing
	conn, err := s.acquire(ctx, &tm)
	if err != nil {
		return tm, err
	}
	defer conn.Close()

	t := time.Now()
	_, err = conn.ExecContext(ctx, "SELECT 1")
	tm.QueryMS = msSince(t)
	return tm, err
}

// acquire checks a dedicated connection out of the pool, recording how long
// the checkout took. Callers must Close it on every path.
func (s *Store) acquire(ctx context.Context, tm *Timing) (*sqlx.Conn, error) {
	t := time.Now()
	conn, err := s.db.Connx(ctx)
	tm.ConnMS = msSince(t)
	return conn, err
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t)) / float64(time.Millisecond)
}
