package memory

import (
	"context"
	"fmt"
	"supplychain-service/internal/domain"
	"supplychain-service/internal/ports"
	"sync"
)

type VendorRepository struct {
	mu      sync.RWMutex
	vendors []domain.Vendor
	index   map[string]int
}

var _ ports.VendorRepository = (*VendorRepository)(nil)

func NewVendorRepository() *VendorRepository {
	return &VendorRepository{index: make(map[string]int)}
}

func (r *VendorRepository) CreateVendor(ctx context.Context, v domain.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[v.ID]; exists {
		return fmt.Errorf("create vendor: duplicate id %q", v.ID)
	}
	r.index[v.ID] = len(r.vendors)
	r.vendors = append(r.vendors, v)
	return nil
}

func (r *VendorRepository) GetVendor(ctx context.Context, id string) (domain.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return domain.Vendor{}, fmt.Errorf("get vendor %q: %w", id, domain.ErrNotFound)
	}
	return r.vendors[i], nil
}

func (r *VendorRepository) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Vendor, len(r.vendors))
	copy(out, r.vendors)
	return out, nil
}
