// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/geopins/internal/models"
)

// ErrUnavailable wraps every failure of the underlying database: open, query or exec.
// Callers treat it as fatal for the current screen.
var ErrUnavailable = errors.New("storage unavailable")

// Store defines the interface for location storage operations.
// All methods are synchronous and block the caller.
type Store interface {
	// EnsureSchema creates the locations table if it does not exist.
	// It is idempotent and must be called before any other operation.
	EnsureSchema(ctx context.Context) error

	// InsertLocation persists a new location and returns the store-assigned ID.
	InsertLocation(ctx context.Context, name string, lat, lon float64) (int64, error)

	// UpdateLocationName changes the name of a location.
	// Unknown IDs are silently ignored.
	UpdateLocationName(ctx context.Context, id int64, name string) error

	// DeleteLocation removes a location. Unknown IDs are silently ignored.
	DeleteLocation(ctx context.Context, id int64) error

	// ListLocations returns every location in insertion (ID) order.
	ListLocations(ctx context.Context) ([]models.Location, error)

	// GetLocation retrieves a location by ID.
	// Returns nil and no error if the location does not exist.
	GetLocation(ctx context.Context, id int64) (*models.Location, error)

	// CountLocations returns the number of stored locations.
	CountLocations(ctx context.Context) (int, error)

	// Close releases any resources held by the store.
	Close() error
}
