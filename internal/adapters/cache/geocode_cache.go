package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"supplychain-service/internal/domain"
	"supplychain-service/internal/platform/db"
	"supplychain-service/internal/platform/obs"
)

// SQLGeocodeCache maps place names (hubs, cities, warehouses) to coordinates.
type SQLGeocodeCache struct {
	DB *db.DB
}

func NewSQLGeocodeCache(d *db.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: d}
}

func (c *SQLGeocodeCache) GetMany(ctx context.Context, places []string) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "cache.geocode.GetMany")(&err)

	if c.DB == nil || c.DB.DB == nil {
		return nil, errors.New("geocode cache: DB is nil")
	}

	keys := uniqueKeys(places)
	if len(keys) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	q := c.DB.Rebind(`
	SELECT address, lon, lat
	FROM geocode_cache
	WHERE address IN (` + db.Placeholders(len(keys)) + `);`)

	rows, err := c.DB.QueryContext(ctx, q, toArgs(keys)...)
	if err != nil {
		return nil, fmt.Errorf("geocode cache get: query: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Coordinates, len(keys))
	for rows.Next() {
		var place string
		var xy domain.Coordinates
		if err := rows.Scan(&place, &xy.Lon, &xy.Lat); err != nil {
			return nil, fmt.Errorf("geocode cache get: scan: %w", err)
		}
		out[place] = xy
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("geocode cache get: rows: %w", err)
	}
	return out, nil
}

func (c *SQLGeocodeCache) PutMany(ctx context.Context, coords map[string]domain.Coordinates) (err error) {
	defer obs.Time(ctx, "cache.geocode.PutMany")(&err)

	if c.DB == nil || c.DB.DB == nil {
		return errors.New("geocode cache: DB is nil")
	}
	if len(coords) == 0 {
		return nil
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("geocode cache put: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, c.DB.Rebind(`
	INSERT INTO geocode_cache (address, lon, lat)
	VALUES (?, ?, ?)
	ON CONFLICT (address) DO UPDATE
	SET lon = excluded.lon,
		lat = excluded.lat;`))
	if err != nil {
		return fmt.Errorf("geocode cache put: prepare: %w", err)
	}
	defer stmt.Close()

	for place, xy := range coords {
		if strings.TrimSpace(place) == "" {
			return errors.New("geocode cache put: empty place key")
		}
		if _, err := stmt.ExecContext(ctx, place, xy.Lon, xy.Lat); err != nil {
			return fmt.Errorf("geocode cache put: place=%q: %w", place, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("geocode cache put: commit: %w", err)
	}
	return nil
}
