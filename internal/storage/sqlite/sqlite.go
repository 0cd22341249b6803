// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/geopins/internal/metrics"
	"github.com/mmynk/geopins/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithMetrics records every store operation on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *SQLiteStore) {
		s.metrics = m
	}
}

// New opens the database at dbPath, creating parent directories as needed.
// The schema is not created here; callers run EnsureSchema first.
func New(dbPath string, opts ...Option) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create database directory: %v", storage.ErrUnavailable, err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", storage.ErrUnavailable, err)
	}

	// Single connection, single writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to connect to database: %v", storage.ErrUnavailable, err)
	}

	s := &SQLiteStore{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the locations table if absent.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) (err error) {
	defer s.observe("ensure_schema", time.Now(), &err)

	if err := runMigrations(ctx, s.db); err != nil {
		return fmt.Errorf("%w: failed to run migrations: %v", storage.ErrUnavailable, err)
	}
	return nil
}

func (s *SQLiteStore) observe(operation string, start time.Time, err *error) {
	s.metrics.ObserveStore(operation, start, *err)
}
