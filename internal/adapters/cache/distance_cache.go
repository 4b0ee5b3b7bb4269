package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"supplychain-service/internal/platform/db"
	"supplychain-service/internal/platform/obs"
	"supplychain-service/internal/ports"
)

// SQLDistanceCache stores origin -> destination lookups so repeated routes
// between the same places never hit the routing API twice.
type SQLDistanceCache struct {
	DB *db.DB
}

func NewSQLDistanceCache(d *db.DB) *SQLDistanceCache {
	return &SQLDistanceCache{DB: d}
}

// GetMany returns the cached results for origin, keyed by destination.
// Destinations without an entry are absent from the map.
func (c *SQLDistanceCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "cache.distance.GetMany")(&err)

	if c.DB == nil || c.DB.DB == nil {
		return nil, errors.New("distance cache: DB is nil")
	}
	if strings.TrimSpace(origin) == "" {
		return nil, errors.New("distance cache get: origin must not be empty")
	}

	keys := uniqueKeys(destinations)
	if len(keys) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	q := c.DB.Rebind(`
	SELECT destination, distance_meters, duration_seconds
	FROM distance_cache
	WHERE origin = ? AND destination IN (` + db.Placeholders(len(keys)) + `);`)

	args := append([]any{origin}, toArgs(keys)...)
	rows, err := c.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("distance cache get: query: %w", err)
	}
	defer rows.Close()

	out := make(map[string]ports.DistanceResult, len(keys))
	for rows.Next() {
		var dest string
		var r ports.DistanceResult
		if err := rows.Scan(&dest, &r.DistanceMeters, &r.DurationSeconds); err != nil {
			return nil, fmt.Errorf("distance cache get: scan: %w", err)
		}
		out[dest] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("distance cache get: rows: %w", err)
	}
	return out, nil
}

// PutMany upserts results for origin in one transaction.
func (c *SQLDistanceCache) PutMany(
	ctx context.Context,
	origin string,
	results map[string]ports.DistanceResult,
) (err error) {
	defer obs.Time(ctx, "cache.distance.PutMany")(&err)

	if c.DB == nil || c.DB.DB == nil {
		return errors.New("distance cache: DB is nil")
	}
	if strings.TrimSpace(origin) == "" {
		return errors.New("distance cache put: origin must not be empty")
	}
	if len(results) == 0 {
		return nil
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("distance cache put: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, c.DB.Rebind(`
	INSERT INTO distance_cache (origin, destination, distance_meters, duration_seconds)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_meters = excluded.distance_meters,
		duration_seconds = excluded.duration_seconds;`))
	if err != nil {
		return fmt.Errorf("distance cache put: prepare: %w", err)
	}
	defer stmt.Close()

	for dest, r := range results {
		if strings.TrimSpace(dest) == "" {
			return errors.New("distance cache put: empty destination key")
		}
		if _, err := stmt.ExecContext(ctx, origin, dest, r.DistanceMeters, r.DurationSeconds); err != nil {
			return fmt.Errorf("distance cache put: destination=%q: %w", dest, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("distance cache put: commit: %w", err)
	}
	return nil
}
