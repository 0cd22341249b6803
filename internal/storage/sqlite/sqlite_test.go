package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/geopins/internal/metrics"
	"github.com/mmynk/geopins/internal/models"
	"github.com/mmynk/geopins/internal/storage"
)

// newTestStore creates a store backed by a fresh database in a temp directory.
func newTestStore(t *testing.T, opts ...Option) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "geopins-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"), opts...)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	return store
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("InsertLocation round-trips through GetLocation", func(t *testing.T) {
		id, err := store.InsertLocation(ctx, "Park", 10.0, 20.0)
		if err != nil {
			t.Fatalf("InsertLocation failed: %v", err)
		}
		if id <= 0 {
			t.Errorf("Expected positive id, got %d", id)
		}

		loc, err := store.GetLocation(ctx, id)
		if err != nil {
			t.Fatalf("GetLocation failed: %v", err)
		}
		want := models.Location{ID: id, Name: "Park", Latitude: 10.0, Longitude: 20.0}
		if loc == nil || *loc != want {
			t.Errorf("GetLocation = %+v, want %+v", loc, want)
		}
	})

	t.Run("GetLocation returns nil for missing id", func(t *testing.T) {
		loc, err := store.GetLocation(ctx, 9999)
		if err != nil {
			t.Fatalf("GetLocation failed: %v", err)
		}
		if loc != nil {
			t.Errorf("Expected nil location, got %+v", loc)
		}
	})

	t.Run("ids increase monotonically", func(t *testing.T) {
		first, _ := store.InsertLocation(ctx, "A", 1, 1)
		second, _ := store.InsertLocation(ctx, "B", 2, 2)
		if second <= first {
			t.Errorf("Expected %d > %d", second, first)
		}
	})

	t.Run("UpdateLocationName changes only the name", func(t *testing.T) {
		id, _ := store.InsertLocation(ctx, "Old", 3.5, -7.25)
		if err := store.UpdateLocationName(ctx, id, "New"); err != nil {
			t.Fatalf("UpdateLocationName failed: %v", err)
		}

		loc, _ := store.GetLocation(ctx, id)
		if loc.Name != "New" {
			t.Errorf("Name = %q, want New", loc.Name)
		}
		if loc.Latitude != 3.5 || loc.Longitude != -7.25 {
			t.Errorf("Coordinates changed: %v, %v", loc.Latitude, loc.Longitude)
		}
	})

	t.Run("UpdateLocationName and DeleteLocation ignore missing ids", func(t *testing.T) {
		before, _ := store.CountLocations(ctx)
		if err := store.UpdateLocationName(ctx, 424242, "ghost"); err != nil {
			t.Errorf("UpdateLocationName on missing id returned %v", err)
		}
		if err := store.DeleteLocation(ctx, 424242); err != nil {
			t.Errorf("DeleteLocation on missing id returned %v", err)
		}
		after, _ := store.CountLocations(ctx)
		if before != after {
			t.Errorf("Row count changed from %d to %d", before, after)
		}
	})
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.InsertLocation(ctx, "Keep me", 1, 2)
	if err != nil {
		t.Fatalf("InsertLocation failed: %v", err)
	}

	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("second EnsureSchema failed: %v", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("third EnsureSchema failed: %v", err)
	}

	locations, err := store.ListLocations(ctx)
	if err != nil {
		t.Fatalf("ListLocations failed: %v", err)
	}
	if len(locations) != 1 || locations[0].ID != id {
		t.Errorf("Expected the single row to survive, got %+v", locations)
	}
}

// TestNetEffect applies a mixed sequence of operations and checks ListLocations
// against a model kept alongside.
func TestNetEffect(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	expected := map[int64]models.Location{}
	var order []int64

	insert := func(name string, lat, lon float64) int64 {
		id, err := store.InsertLocation(ctx, name, lat, lon)
		if err != nil {
			t.Fatalf("InsertLocation failed: %v", err)
		}
		if _, dup := expected[id]; dup {
			t.Fatalf("id %d reused", id)
		}
		expected[id] = models.Location{ID: id, Name: name, Latitude: lat, Longitude: lon}
		order = append(order, id)
		return id
	}

	a := insert("Alpha", 1, 1)
	b := insert("Bravo", 2, 2)
	c := insert("Charlie", 3, 3)

	if err := store.UpdateLocationName(ctx, b, "Bravo 2"); err != nil {
		t.Fatal(err)
	}
	loc := expected[b]
	loc.Name = "Bravo 2"
	expected[b] = loc

	if err := store.DeleteLocation(ctx, a); err != nil {
		t.Fatal(err)
	}
	delete(expected, a)

	d := insert("Delta", 4, 4)
	if d <= c {
		t.Errorf("id after delete = %d, want > %d", d, c)
	}

	got, err := store.ListLocations(ctx)
	if err != nil {
		t.Fatalf("ListLocations failed: %v", err)
	}

	var want []models.Location
	for _, id := range order {
		if l, ok := expected[id]; ok {
			want = append(want, l)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestClosedStoreReportsUnavailable(t *testing.T) {
	store := newTestStore(t)
	store.Close()

	_, err := store.ListLocations(context.Background())
	if !errors.Is(err, storage.ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
}

func TestStoreRecordsMetrics(t *testing.T) {
	m := metrics.New()
	store := newTestStore(t, WithMetrics(m))
	ctx := context.Background()

	store.InsertLocation(ctx, "x", 0, 0)
	store.ListLocations(ctx)

	count, err := testutil.GatherAndCount(m.Registry(), "geopins_store_operations_total")
	if err != nil {
		t.Fatalf("GatherAndCount failed: %v", err)
	}
	// ensure_schema, insert and select_all
	if count != 3 {
		t.Errorf("Expected 3 operation series, got %d", count)
	}
}
