package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/geopins/internal/models"
	"github.com/mmynk/geopins/internal/storage"
)

// ErrEmptyName is returned by Save when the name is empty. Nothing is written.
var ErrEmptyName = errors.New("location name is required")

// LocationService mediates between the screens and the store.
type LocationService struct {
	store storage.Store
	seed  models.Location
}

// NewLocationService creates a new LocationService with the given storage backend.
// seed is inserted by Bootstrap when the table is empty.
func NewLocationService(store storage.Store, seed models.Location) *LocationService {
	return &LocationService{store: store, seed: seed}
}

// DefaultSeed returns the location inserted on first run.
func DefaultSeed() models.Location {
	return models.Location{
		Name:      models.DefaultSeedName,
		Latitude:  models.DefaultSeedLatitude,
		Longitude: models.DefaultSeedLongitude,
	}
}

// Bootstrap ensures the schema exists, seeds one row into an empty table and
// returns every stored location.
func (s *LocationService) Bootstrap(ctx context.Context) ([]models.Location, error) {
	if err := s.store.EnsureSchema(ctx); err != nil {
		slog.Error("EnsureSchema failed", "error", err)
		return nil, err
	}

	count, err := s.store.CountLocations(ctx)
	if err != nil {
		slog.Error("CountLocations failed", "error", err)
		return nil, err
	}

	if count == 0 {
		id, err := s.store.InsertLocation(ctx, s.seed.Name, s.seed.Latitude, s.seed.Longitude)
		if err != nil {
			slog.Error("Seeding default location failed", "error", err)
			return nil, err
		}
		slog.Info("Seeded default location",
			"location_id", id,
			"name", s.seed.Name,
		)
	}

	return s.List(ctx)
}

// List returns every stored location in storage order.
func (s *LocationService) List(ctx context.Context) ([]models.Location, error) {
	locations, err := s.store.ListLocations(ctx)
	if err != nil {
		slog.Error("ListLocations failed", "error", err)
		return nil, err
	}

	slog.Debug("Locations loaded", "count", len(locations))
	return locations, nil
}

// Get returns the location with the given id, or nil if absent.
func (s *LocationService) Get(ctx context.Context, id int64) (*models.Location, error) {
	loc, err := s.store.GetLocation(ctx, id)
	if err != nil {
		slog.Error("GetLocation failed", "location_id", id, "error", err)
		return nil, err
	}
	if loc == nil {
		slog.Warn("Location not found", "location_id", id)
	}
	return loc, nil
}

// Delete removes the location with the given id. Unknown ids are a no-op.
func (s *LocationService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteLocation(ctx, id); err != nil {
		slog.Error("DeleteLocation failed", "location_id", id, "error", err)
		return err
	}

	slog.Info("Location deleted", "location_id", id)
	return nil
}

// SaveResult describes the outcome of Save.
type SaveResult struct {
	ID      int64
	Created bool
}

// Save commits the edit/create screen. A create request inserts a new row at the
// request's coordinate. An edit request renames the row and leaves its coordinate alone.
func (s *LocationService) Save(ctx context.Context, req models.EditRequest, name string) (SaveResult, error) {
	if name == "" {
		slog.Debug("Save rejected: empty name", "location_id", req.LocationID)
		return SaveResult{}, ErrEmptyName
	}

	if req.IsCreate() {
		id, err := s.store.InsertLocation(ctx, name, req.Latitude, req.Longitude)
		if err != nil {
			slog.Error("InsertLocation failed", "error", err)
			return SaveResult{}, fmt.Errorf("save location: %w", err)
		}

		slog.Info("Location created",
			"location_id", id,
			"name", name,
			"latitude", req.Latitude,
			"longitude", req.Longitude,
		)
		return SaveResult{ID: id, Created: true}, nil
	}

	if err := s.store.UpdateLocationName(ctx, req.LocationID, name); err != nil {
		slog.Error("UpdateLocationName failed", "location_id", req.LocationID, "error", err)
		return SaveResult{}, fmt.Errorf("rename location: %w", err)
	}

	slog.Info("Location renamed", "location_id", req.LocationID, "name", name)
	return SaveResult{ID: req.LocationID}, nil
}
