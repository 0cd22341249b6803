package service

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/mmynk/geopins/internal/geo"
	"github.com/mmynk/geopins/internal/models"
	"github.com/mmynk/geopins/internal/storage/sqlite"
)

// setupTestService creates a LocationService over a temporary SQLite database.
func setupTestService(t *testing.T) (*LocationService, *sqlite.SQLiteStore) {
	t.Helper()

	// Create temp database
	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
		os.Remove(tmpFile.Name())
	})

	return NewLocationService(store, DefaultSeed()), store
}

func TestBootstrap_SeedsEmptyStore(t *testing.T) {
	svc, _ := setupTestService(t)

	locations, err := svc.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	if len(locations) != 1 {
		t.Fatalf("expected 1 location, got %d", len(locations))
	}
	loc := locations[0]
	if loc.Name != "Facultad de Telemática" {
		t.Errorf("name: expected 'Facultad de Telemática', got '%s'", loc.Name)
	}
	if loc.Latitude != 19.24914 || loc.Longitude != -103.69740 {
		t.Errorf("coordinates: expected (19.24914, -103.69740), got (%v, %v)", loc.Latitude, loc.Longitude)
	}
}

func TestBootstrap_DoesNotReseed(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	if _, err := svc.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	locations, err := svc.Bootstrap(ctx)
	if err != nil {
		t.Fatalf("second Bootstrap failed: %v", err)
	}
	if len(locations) != 1 {
		t.Errorf("expected 1 location after second bootstrap, got %d", len(locations))
	}
}

func TestBootstrap_KeepsExistingRows(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := store.InsertLocation(ctx, "Home", 1, 2); err != nil {
		t.Fatal(err)
	}

	locations, err := svc.Bootstrap(ctx)
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	if len(locations) != 1 || locations[0].Name != "Home" {
		t.Errorf("expected only 'Home', got %+v", locations)
	}
}

func TestSave_EmptyNameIsRejected(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	if _, err := svc.Bootstrap(ctx); err != nil {
		t.Fatal(err)
	}
	before, _ := store.CountLocations(ctx)

	_, err := svc.Save(ctx, models.NewCreateRequest(geo.Point{Lat: 5, Lon: 6}), "")
	if !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}

	after, _ := store.CountLocations(ctx)
	if before != after {
		t.Errorf("row count changed from %d to %d", before, after)
	}
}

func TestSave_CreatesNewLocation(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	if _, err := svc.Bootstrap(ctx); err != nil {
		t.Fatal(err)
	}

	p := geo.Point{Lat: 19.2501, Lon: -103.7}
	res, err := svc.Save(ctx, models.NewCreateRequest(p), "X")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !res.Created {
		t.Error("expected Created to be true")
	}

	loc, err := svc.Get(ctx, res.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if loc == nil || loc.Name != "X" || loc.Latitude != p.Lat || loc.Longitude != p.Lon {
		t.Errorf("unexpected location: %+v", loc)
	}
}

func TestSave_EditRenamesOnly(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatal(err)
	}
	id, err := store.InsertLocation(ctx, "Before", 7, 8)
	if err != nil {
		t.Fatal(err)
	}

	// An edit request carrying different coordinates must not move the row.
	req := models.EditRequest{Latitude: 99, Longitude: 99, LocationID: id}
	res, err := svc.Save(ctx, req, "Y")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if res.Created || res.ID != id {
		t.Errorf("unexpected result: %+v", res)
	}

	loc, _ := svc.Get(ctx, id)
	if loc.Name != "Y" {
		t.Errorf("name: expected 'Y', got '%s'", loc.Name)
	}
	if loc.Latitude != 7 || loc.Longitude != 8 {
		t.Errorf("coordinates changed to (%v, %v)", loc.Latitude, loc.Longitude)
	}
}

func TestDelete(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	if _, err := svc.Bootstrap(ctx); err != nil {
		t.Fatal(err)
	}
	res, err := svc.Save(ctx, models.NewCreateRequest(geo.Point{Lat: 1, Lon: 1}), "Gone")
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, res.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(ctx, res.ID); err != nil {
		t.Errorf("second Delete should be a no-op, got %v", err)
	}

	locations, _ := svc.List(ctx)
	for _, loc := range locations {
		if loc.ID == res.ID {
			t.Errorf("deleted location %d still listed", res.ID)
		}
	}
}
