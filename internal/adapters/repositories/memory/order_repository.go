package memory

import (
	"context"
	"fmt"
	"supplychain-service/internal/domain"
	"supplychain-service/internal/ports"
	"sync"
)

type OrderRepository struct {
	mu     sync.RWMutex
	orders []domain.Order
	index  map[string]int
}

var _ ports.OrderRepository = (*OrderRepository)(nil)

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{index: make(map[string]int)}
}

func (r *OrderRepository) CreateOrder(ctx context.Context, o domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[o.ID]; exists {
		return fmt.Errorf("create order: duplicate id %q", o.ID)
	}
	r.index[o.ID] = len(r.orders)
	r.orders = append(r.orders, o)
	return nil
}

func (r *OrderRepository) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return domain.Order{}, fmt.Errorf("get order %q: %w", id, domain.ErrNotFound)
	}
	return r.orders[i], nil
}

func (r *OrderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

// UpdateOrderStatus is the only in-place mutation the order model allows.
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return fmt.Errorf("update order status %q: %w", id, domain.ErrNotFound)
	}
	r.orders[i].Status = status
	return nil
}
