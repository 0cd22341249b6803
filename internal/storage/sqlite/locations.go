package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/geopins/internal/models"
	"github.com/mmynk/geopins/internal/storage"
)

// InsertLocation inserts a new location and returns its AUTOINCREMENT id.
func (s *SQLiteStore) InsertLocation(ctx context.Context, name string, lat, lon float64) (id int64, err error) {
	defer s.observe("insert", time.Now(), &err)

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO locations (locationName, aLatitude, aLongitude) VALUES (?, ?, ?)",
		name, lat, lon,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to insert location: %v", storage.ErrUnavailable, err)
	}

	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read inserted id: %v", storage.ErrUnavailable, err)
	}
	return id, nil
}

// UpdateLocationName renames a location. Coordinates are never touched.
func (s *SQLiteStore) UpdateLocationName(ctx context.Context, id int64, name string) (err error) {
	defer s.observe("update", time.Now(), &err)

	_, err = s.db.ExecContext(ctx,
		"UPDATE locations SET locationName = ? WHERE id = ?",
		name, id,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to update location: %v", storage.ErrUnavailable, err)
	}
	return nil
}

// DeleteLocation removes the location with the given id.
func (s *SQLiteStore) DeleteLocation(ctx context.Context, id int64) (err error) {
	defer s.observe("delete", time.Now(), &err)

	if _, err = s.db.ExecContext(ctx, "DELETE FROM locations WHERE id = ?", id); err != nil {
		return fmt.Errorf("%w: failed to delete location: %v", storage.ErrUnavailable, err)
	}
	return nil
}

// ListLocations returns all locations ordered by id.
func (s *SQLiteStore) ListLocations(ctx context.Context) (locations []models.Location, err error) {
	defer s.observe("select_all", time.Now(), &err)

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, locationName, aLatitude, aLongitude FROM locations ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list locations: %v", storage.ErrUnavailable, err)
	}
	defer rows.Close()

	locations = []models.Location{}
	for rows.Next() {
		var (
			loc  models.Location
			name sql.NullString
		)
		if err := rows.Scan(&loc.ID, &name, &loc.Latitude, &loc.Longitude); err != nil {
			return nil, fmt.Errorf("%w: failed to scan location: %v", storage.ErrUnavailable, err)
		}
		loc.Name = name.String
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate locations: %v", storage.ErrUnavailable, err)
	}

	return locations, nil
}

// GetLocation retrieves a location by id.
func (s *SQLiteStore) GetLocation(ctx context.Context, id int64) (loc *models.Location, err error) {
	defer s.observe("select_by_id", time.Now(), &err)

	var name sql.NullString
	loc = &models.Location{}
	err = s.db.QueryRowContext(ctx,
		"SELECT id, locationName, aLatitude, aLongitude FROM locations WHERE id = ?",
		id,
	).Scan(&loc.ID, &name, &loc.Latitude, &loc.Longitude)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Location not found
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get location: %v", storage.ErrUnavailable, err)
	}

	loc.Name = name.String
	return loc, nil
}

// CountLocations returns the number of rows in the locations table.
func (s *SQLiteStore) CountLocations(ctx context.Context) (n int, err error) {
	defer s.observe("count", time.Now(), &err)

	if err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM locations").Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: failed to count locations: %v", storage.ErrUnavailable, err)
	}
	return n, nil
}
