package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"supplychain-service/internal/domain"
	"supplychain-service/internal/platform/obs"
	"supplychain-service/internal/ports"
	"time"
)

// OrderService creates vendor orders and moves them through their statuses.
type OrderService struct {
	Orders   ports.OrderRepository
	Vendors  ports.VendorRepository
	Products ports.ProductRepository
	Now      func() time.Time
	NewID    func(prefix string) string
}

func NewOrderService(orders ports.OrderRepository, vendors ports.VendorRepository, products ports.ProductRepository) *OrderService {
	return &OrderService{
		Orders:   orders,
		Vendors:  vendors,
		Products: products,
		Now:      func() time.Time { return time.Now().UTC() },
		NewID:    NewID,
	}
}

// Create resolves vendor and product names, prices the order and stores it as Pending.
// A zero unit price falls back to the product's wholesale price.
func (s *OrderService) Create(ctx context.Context, o domain.Order) (_ domain.Order, err error) {
	defer obs.Time(ctx, "orders.Create")(&err)

	o.VendorID = strings.TrimSpace(o.VendorID)
	o.ProductID = strings.TrimSpace(o.ProductID)
	if err := o.Validate(); err != nil {
		return domain.Order{}, err
	}

	ve := &domain.ValidationError{}

	vendor, err := s.Vendors.GetVendor(ctx, o.VendorID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		ve.Add("vendorId", fmt.Sprintf("Vendor %q does not exist", o.VendorID))
	case err != nil:
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}

	product, err := s.Products.GetProduct(ctx, o.ProductID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		ve.Add("productId", fmt.Sprintf("Product %q does not exist", o.ProductID))
	case err != nil:
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}

	if err := ve.Err(); err != nil {
		return domain.Order{}, err
	}

	o.ID = s.NewID(orderIDPrefix)
	o.VendorName = vendor.Name
	o.ProductName = product.Name
	if o.UnitPrice.IsZero() {
		o.UnitPrice = product.WholesalePrice
	}
	o.TotalAmount = o.Total()
	o.Status = domain.OrderPending
	o.OrderDate = s.Now()

	if err := s.Orders.CreateOrder(ctx, o); err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}
	return o, nil
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.Orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets the status of order id. Any status may follow any other.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status string) (_ domain.Order, err error) {
	defer obs.Time(ctx, "orders.UpdateStatus")(&err)

	st, perr := domain.ParseOrderStatus(status)
	if perr != nil {
		ve := &domain.ValidationError{}
		if strings.TrimSpace(status) == "" {
			ve.Add("status", domain.RequiredMessage("status"))
		} else {
			ve.Add("status", fmt.Sprintf("Status %q is not a known order status", status))
		}
		return domain.Order{}, ve
	}

	if err := s.Orders.UpdateOrderStatus(ctx, id, st); err != nil {
		return domain.Order{}, fmt.Errorf("update order status: %w", err)
	}

	o, err := s.Orders.GetOrder(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("update order status: %w", err)
	}
	return o, nil
}
