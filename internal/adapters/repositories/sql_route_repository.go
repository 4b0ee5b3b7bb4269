package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"supplychain-service/internal/domain"
	"supplychain-service/internal/platform/db"
	"supplychain-service/internal/platform/obs"
	"supplychain-service/internal/ports"
)

// SQLRouteRepository stores routes and their line items in SQLite or Postgres.
type SQLRouteRepository struct{ DB *db.DB }

var _ ports.RouteRepository = (*SQLRouteRepository)(nil)

func NewSQLRouteRepository(d *db.DB) *SQLRouteRepository {
	return &SQLRouteRepository{DB: d}
}

const routeColumns = `
	id, route_number, driver_name, vehicle_id, origin, destination,
	distance_km, temperature_c, scheduled_date, estimated_time, status,
	gps_available, created_at, updated_at`

func (s *SQLRouteRepository) CreateRoute(ctx context.Context, r domain.Route) (err error) {
	defer obs.Time(ctx, "routes.sql.Create")(&err)

	if s.DB == nil {
		return errors.New("sql route repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create route: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := s.DB.Rebind(`
	INSERT INTO routes (` + routeColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if _, err := tx.ExecContext(ctx, q,
		r.ID, r.RouteNumber, r.DriverName, r.VehicleID, r.Origin, r.Destination,
		r.DistanceKm, r.TemperatureC, formatDate(r.ScheduledDate), r.EstimatedTime, string(r.Status),
		r.GPSAvailable, formatTime(r.CreatedAt), formatTime(r.UpdatedAt),
	); err != nil {
		return fmt.Errorf("create route id=%q: insert route: %w", r.ID, err)
	}

	if err := s.insertProducts(ctx, tx, r); err != nil {
		return fmt.Errorf("create route id=%q: %w", r.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create route id=%q: commit tx: %w", r.ID, err)
	}
	return nil
}

// UpdateRoute replaces every column and the full line-item list of an existing route.
func (s *SQLRouteRepository) UpdateRoute(ctx context.Context, r domain.Route) (err error) {
	defer obs.Time(ctx, "routes.sql.Update")(&err)

	if s.DB == nil {
		return errors.New("sql route repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update route: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := s.DB.Rebind(`
	UPDATE routes SET
		route_number = ?, driver_name = ?, vehicle_id = ?, origin = ?, destination = ?,
		distance_km = ?, temperature_c = ?, scheduled_date = ?, estimated_time = ?, status = ?,
		gps_available = ?, created_at = ?, updated_at = ?
	WHERE id = ?;
	`)
	res, err := tx.ExecContext(ctx, q,
		r.RouteNumber, r.DriverName, r.VehicleID, r.Origin, r.Destination,
		r.DistanceKm, r.TemperatureC, formatDate(r.ScheduledDate), r.EstimatedTime, string(r.Status),
		r.GPSAvailable, formatTime(r.CreatedAt), formatTime(r.UpdatedAt),
		r.ID,
	)
	if err != nil {
		return fmt.Errorf("update route id=%q: %w", r.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update route id=%q: rows affected: %w", r.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("update route %q: %w", r.ID, domain.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, s.DB.Rebind(`DELETE FROM route_products WHERE route_id = ?;`), r.ID); err != nil {
		return fmt.Errorf("update route id=%q: clear products: %w", r.ID, err)
	}
	if err := s.insertProducts(ctx, tx, r); err != nil {
		return fmt.Errorf("update route id=%q: %w", r.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update route id=%q: commit tx: %w", r.ID, err)
	}
	return nil
}

func (s *SQLRouteRepository) insertProducts(ctx context.Context, tx *sql.Tx, r domain.Route) error {
	if len(r.Products) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, s.DB.Rebind(`
	INSERT INTO route_products (route_id, position, product_name, quantity)
	VALUES (?, ?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("prepare product insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range r.Products {
		if _, err := stmt.ExecContext(ctx, r.ID, i, p.ProductName, p.Quantity); err != nil {
			return fmt.Errorf("insert product #%d: %w", i+1, err)
		}
	}
	return nil
}

func (s *SQLRouteRepository) GetRoute(ctx context.Context, id string) (_ domain.Route, err error) {
	defer obs.Time(ctx, "routes.sql.Get")(&err)

	if s.DB == nil {
		return domain.Route{}, errors.New("sql route repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, s.DB.Rebind(`SELECT`+routeColumns+` FROM routes WHERE id = ?;`), id)
	r, err := scanRoute(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Route{}, fmt.Errorf("get route %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Route{}, fmt.Errorf("get route %q: %w", id, err)
	}

	items, err := s.loadProducts(ctx, `WHERE route_id = ?`, id)
	if err != nil {
		return domain.Route{}, fmt.Errorf("get route %q: %w", id, err)
	}
	r.Products = items[id]
	return r, nil
}

func (s *SQLRouteRepository) ListRoutes(ctx context.Context) (_ []domain.Route, err error) {
	defer obs.Time(ctx, "routes.sql.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql route repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT`+routeColumns+` FROM routes ORDER BY seq;`)
	if err != nil {
		return nil, fmt.Errorf("list routes: query routes table: %w", err)
	}
	defer rows.Close()

	routes := make([]domain.Route, 0, 32)
	for rows.Next() {
		r, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("list routes: scan row: %w", err)
		}
		routes = append(routes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes: row iteration: %w", err)
	}

	items, err := s.loadProducts(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	for i := range routes {
		routes[i].Products = items[routes[i].ID]
	}

	return routes, nil
}

// loadProducts returns line items grouped by route id, in position order.
func (s *SQLRouteRepository) loadProducts(ctx context.Context, where string, args ...any) (map[string][]domain.RouteProduct, error) {
	q := s.DB.Rebind(`
	SELECT route_id, product_name, quantity
	FROM route_products ` + where + `
	ORDER BY route_id, position;
	`)
	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query route_products table: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.RouteProduct)
	for rows.Next() {
		var routeID string
		var p domain.RouteProduct
		if err := rows.Scan(&routeID, &p.ProductName, &p.Quantity); err != nil {
			return nil, fmt.Errorf("scan route product: %w", err)
		}
		out[routeID] = append(out[routeID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("route product iteration: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoute(row rowScanner) (domain.Route, error) {
	var (
		r                    domain.Route
		status               string
		scheduled            string
		createdAt, updatedAt string
	)
	if err := row.Scan(
		&r.ID, &r.RouteNumber, &r.DriverName, &r.VehicleID, &r.Origin, &r.Destination,
		&r.DistanceKm, &r.TemperatureC, &scheduled, &r.EstimatedTime, &status,
		&r.GPSAvailable, &createdAt, &updatedAt,
	); err != nil {
		return domain.Route{}, err
	}

	var err error
	r.Status = domain.RouteStatus(status)
	if r.ScheduledDate, err = parseDate(scheduled); err != nil {
		return domain.Route{}, err
	}
	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Route{}, err
	}
	if r.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Route{}, err
	}
	return r, nil
}
