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

type SQLOrderRepository struct{ DB *db.DB }

var _ ports.OrderRepository = (*SQLOrderRepository)(nil)

func NewSQLOrderRepository(d *db.DB) *SQLOrderRepository {
	return &SQLOrderRepository{DB: d}
}

const orderColumns = `
	id, vendor_id, vendor_name, product_id, product_name, quantity,
	unit_price, total_amount, status, order_date, notes`

func (s *SQLOrderRepository) CreateOrder(ctx context.Context, o domain.Order) (err error) {
	defer obs.Time(ctx, "orders.sql.Create")(&err)

	if s.DB == nil {
		return errors.New("sql order repository: DB is nil")
	}

	q := s.DB.Rebind(`
	INSERT INTO orders (` + orderColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if _, err := s.DB.ExecContext(ctx, q,
		o.ID, o.VendorID, o.VendorName, o.ProductID, o.ProductName, o.Quantity,
		o.UnitPrice, o.TotalAmount, string(o.Status), formatTime(o.OrderDate), o.Notes,
	); err != nil {
		return fmt.Errorf("create order id=%q: %w", o.ID, err)
	}
	return nil
}

func (s *SQLOrderRepository) GetOrder(ctx context.Context, id string) (_ domain.Order, err error) {
	defer obs.Time(ctx, "orders.sql.Get")(&err)

	if s.DB == nil {
		return domain.Order{}, errors.New("sql order repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, s.DB.Rebind(`SELECT`+orderColumns+` FROM orders WHERE id = ?;`), id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, fmt.Errorf("get order %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("get order %q: %w", id, err)
	}
	return o, nil
}

func (s *SQLOrderRepository) ListOrders(ctx context.Context) (_ []domain.Order, err error) {
	defer obs.Time(ctx, "orders.sql.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql order repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT`+orderColumns+` FROM orders ORDER BY seq;`)
	if err != nil {
		return nil, fmt.Errorf("list orders: query orders table: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0, 32)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("list orders: scan row: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: row iteration: %w", err)
	}
	return orders, nil
}

func (s *SQLOrderRepository) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (err error) {
	defer obs.Time(ctx, "orders.sql.UpdateStatus")(&err)

	if s.DB == nil {
		return errors.New("sql order repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, s.DB.Rebind(`UPDATE orders SET status = ? WHERE id = ?;`), string(status), id)
	if err != nil {
		return fmt.Errorf("update order status id=%q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status id=%q: rows affected: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("update order status %q: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		o         domain.Order
		status    string
		orderDate string
	)
	if err := row.Scan(
		&o.ID, &o.VendorID, &o.VendorName, &o.ProductID, &o.ProductName, &o.Quantity,
		&o.UnitPrice, &o.TotalAmount, &status, &orderDate, &o.Notes,
	); err != nil {
		return domain.Order{}, err
	}

	var err error
	o.Status = domain.OrderStatus(status)
	if o.OrderDate, err = parseTime(orderDate); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}
