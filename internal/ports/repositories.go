package ports

import (
	"context"
	"supplychain-service/internal/domain"
)

// Port: persistence boundary for distribution routes.
// Update replaces the whole record and returns domain.ErrNotFound for unknown ids.
type RouteRepository interface {
	CreateRoute(ctx context.Context, r domain.Route) error
	GetRoute(ctx context.Context, id string) (domain.Route, error)
	ListRoutes(ctx context.Context) ([]domain.Route, error)
	UpdateRoute(ctx context.Context, r domain.Route) error
}

// Port: persistence boundary for the product catalog.
type ProductRepository interface {
	CreateProduct(ctx context.Context, p domain.Product) error
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// Port: persistence boundary for vendors.
type VendorRepository interface {
	CreateVendor(ctx context.Context, v domain.Vendor) error
	GetVendor(ctx context.Context, id string) (domain.Vendor, error)
	ListVendors(ctx context.Context) ([]domain.Vendor, error)
}

// Port: persistence boundary for vendor orders.
type OrderRepository interface {
	CreateOrder(ctx context.Context, o domain.Order) error
	GetOrder(ctx context.Context, id string) (domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

// Store groups the repositories a backing store provides.
type Store struct {
	Routes   RouteRepository
	Products ProductRepository
	Vendors  VendorRepository
	Orders   OrderRepository
}
