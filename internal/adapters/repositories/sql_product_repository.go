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

// SQLProductRepository is the SQL-backed product catalog.
type SQLProductRepository struct{ DB *db.DB }

var _ ports.ProductRepository = (*SQLProductRepository)(nil)

func NewSQLProductRepository(d *db.DB) *SQLProductRepository {
	return &SQLProductRepository{DB: d}
}

const productColumns = `
	id, name, type, breed, weight_kg, retail_price, wholesale_price,
	description, fcr, rearing_days, district, image, status, created_at`

func (s *SQLProductRepository) CreateProduct(ctx context.Context, p domain.Product) (err error) {
	defer obs.Time(ctx, "products.sql.Create")(&err)

	if s.DB == nil {
		return errors.New("sql product repository: DB is nil")
	}

	q := s.DB.Rebind(`
	INSERT INTO products (` + productColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if _, err := s.DB.ExecContext(ctx, q,
		p.ID, p.Name, string(p.Type), p.Breed, p.WeightKg, p.RetailPrice, p.WholesalePrice,
		p.Description, p.FCR, p.RearingDays, p.District, p.Image, p.Status, formatTime(p.CreatedAt),
	); err != nil {
		return fmt.Errorf("create product id=%q: %w", p.ID, err)
	}
	return nil
}

func (s *SQLProductRepository) GetProduct(ctx context.Context, id string) (_ domain.Product, err error) {
	defer obs.Time(ctx, "products.sql.Get")(&err)

	if s.DB == nil {
		return domain.Product{}, errors.New("sql product repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, s.DB.Rebind(`SELECT`+productColumns+` FROM products WHERE id = ?;`), id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("get product %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product %q: %w", id, err)
	}
	return p, nil
}

func (s *SQLProductRepository) ListProducts(ctx context.Context) (_ []domain.Product, err error) {
	defer obs.Time(ctx, "products.sql.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql product repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT`+productColumns+` FROM products ORDER BY seq;`)
	if err != nil {
		return nil, fmt.Errorf("list products: query products table: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0, 32)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("list products: scan row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: row iteration: %w", err)
	}
	return products, nil
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p         domain.Product
		typ       string
		createdAt string
	)
	if err := row.Scan(
		&p.ID, &p.Name, &typ, &p.Breed, &p.WeightKg, &p.RetailPrice, &p.WholesalePrice,
		&p.Description, &p.FCR, &p.RearingDays, &p.District, &p.Image, &p.Status, &createdAt,
	); err != nil {
		return domain.Product{}, err
	}

	var err error
	p.Type = domain.ProductType(typ)
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}
