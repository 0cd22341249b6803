package sqlite

import (
	"context"
	"database/sql"
)

// schema is the single locations table. Column names match the
// gps_locations.db layout used by existing database files.
const schema = `
CREATE TABLE IF NOT EXISTS locations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    locationName TEXT,
    aLatitude DOUBLE,
    aLongitude DOUBLE
);
`

// runMigrations executes the schema setup.
func runMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
