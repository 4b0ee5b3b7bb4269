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

type SQLVendorRepository struct{ DB *db.DB }

var _ ports.VendorRepository = (*SQLVendorRepository)(nil)

func NewSQLVendorRepository(d *db.DB) *SQLVendorRepository {
	return &SQLVendorRepository{DB: d}
}

const vendorColumns = ` id, name, email, phone, address, type, status, created_at`

func (s *SQLVendorRepository) CreateVendor(ctx context.Context, v domain.Vendor) (err error) {
	defer obs.Time(ctx, "vendors.sql.Create")(&err)

	if s.DB == nil {
		return errors.New("sql vendor repository: DB is nil")
	}

	q := s.DB.Rebind(`
	INSERT INTO vendors (` + vendorColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if _, err := s.DB.ExecContext(ctx, q,
		v.ID, v.Name, v.Email, v.Phone, v.Address, v.Type, v.Status, formatTime(v.CreatedAt),
	); err != nil {
		return fmt.Errorf("create vendor id=%q: %w", v.ID, err)
	}
	return nil
}

func (s *SQLVendorRepository) GetVendor(ctx context.Context, id string) (_ domain.Vendor, err error) {
	defer obs.Time(ctx, "vendors.sql.Get")(&err)

	if s.DB == nil {
		return domain.Vendor{}, errors.New("sql vendor repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, s.DB.Rebind(`SELECT`+vendorColumns+` FROM vendors WHERE id = ?;`), id)
	v, err := scanVendor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Vendor{}, fmt.Errorf("get vendor %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("get vendor %q: %w", id, err)
	}
	return v, nil
}

func (s *SQLVendorRepository) ListVendors(ctx context.Context) (_ []domain.Vendor, err error) {
	defer obs.Time(ctx, "vendors.sql.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql vendor repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT`+vendorColumns+` FROM vendors ORDER BY seq;`)
	if err != nil {
		return nil, fmt.Errorf("list vendors: query vendors table: %w", err)
	}
	defer rows.Close()

	vendors := make([]domain.Vendor, 0, 16)
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("list vendors: scan row: %w", err)
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vendors: row iteration: %w", err)
	}
	return vendors, nil
}

func scanVendor(row rowScanner) (domain.Vendor, error) {
	var v domain.Vendor
	var createdAt string
	if err := row.Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.Address, &v.Type, &v.Status, &createdAt); err != nil {
		return domain.Vendor{}, err
	}

	var err error
	if v.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Vendor{}, err
	}
	return v, nil
}
