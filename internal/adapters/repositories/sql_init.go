package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"supplychain-service/internal/platform/db"
)

// The schema sticks to types both SQLite and Postgres accept. Decimals are
// stored as TEXT and timestamps as RFC 3339 TEXT so values round-trip exactly
// on either engine. seq is assigned by the database and orders listings by
// insertion; {{seq}} expands to the engine's identity column.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS routes (
		{{seq}},
		id TEXT NOT NULL UNIQUE,
		route_number TEXT NOT NULL,
		driver_name TEXT NOT NULL,
		vehicle_id TEXT NOT NULL,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL DEFAULT 0,
		temperature_c DOUBLE PRECISION NOT NULL DEFAULT 0,
		scheduled_date TEXT NOT NULL,
		estimated_time TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		gps_available BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS route_products (
		route_id TEXT NOT NULL REFERENCES routes(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		product_name TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		PRIMARY KEY (route_id, position)
	);`,
	`CREATE TABLE IF NOT EXISTS products (
		{{seq}},
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		breed TEXT NOT NULL DEFAULT '',
		weight_kg DOUBLE PRECISION NOT NULL,
		retail_price TEXT NOT NULL,
		wholesale_price TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		fcr DOUBLE PRECISION NOT NULL DEFAULT 0,
		rearing_days INTEGER NOT NULL DEFAULT 0,
		district TEXT NOT NULL,
		image TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS vendors (
		{{seq}},
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS orders (
		{{seq}},
		id TEXT NOT NULL UNIQUE,
		vendor_id TEXT NOT NULL,
		vendor_name TEXT NOT NULL,
		product_id TEXT NOT NULL,
		product_name TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		unit_price TEXT NOT NULL,
		total_amount TEXT NOT NULL,
		status TEXT NOT NULL,
		order_date TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT ''
	);`,
	`CREATE TABLE IF NOT EXISTS distance_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_meters INTEGER NOT NULL,
		duration_seconds INTEGER NOT NULL,
		PRIMARY KEY (origin, destination)
	);`,
	`CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_routes_scheduled_date ON routes(scheduled_date);`,
	`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);`,
	`CREATE INDEX IF NOT EXISTS idx_distance_cache_destination_origin ON distance_cache(destination, origin);`,
}

// seqColumn is the auto-incrementing insertion-order key for driver.
func seqColumn(driver string) string {
	if driver == db.DriverPostgres {
		return "seq BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY"
	}
	return "seq INTEGER PRIMARY KEY AUTOINCREMENT"
}

// schemaFor returns the schema statements for driver.
func schemaFor(driver string) []string {
	out := make([]string, len(schema))
	for i, stmt := range schema {
		out[i] = strings.ReplaceAll(stmt, "{{seq}}", seqColumn(driver))
	}
	return out
}

// InitSchema creates every table and index if missing.
func InitSchema(ctx context.Context, d *db.DB) error {
	if d == nil || d.DB == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range schemaFor(d.Driver) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
