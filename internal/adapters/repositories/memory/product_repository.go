package memory

import (
	"context"
	"fmt"
	"supplychain-service/internal/domain"
	"supplychain-service/internal/ports"
	"sync"
)

// ProductRepository provides in-memory catalog storage.
type ProductRepository struct {
	mu       sync.RWMutex
	products []domain.Product
	index    map[string]int
}

var _ ports.ProductRepository = (*ProductRepository)(nil)

func NewProductRepository() *ProductRepository {
	return &ProductRepository{index: make(map[string]int)}
}

func (r *ProductRepository) CreateProduct(ctx context.Context, p domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[p.ID]; exists {
		return fmt.Errorf("create product: duplicate id %q", p.ID)
	}
	r.index[p.ID] = len(r.products)
	r.products = append(r.products, p)
	return nil
}

func (r *ProductRepository) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("get product %q: %w", id, domain.ErrNotFound)
	}
	return r.products[i], nil
}

func (r *ProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}
