package services

import (
	"context"
	"fmt"
	"strings"
	"supplychain-service/internal/domain"
	"supplychain-service/internal/platform/obs"
	"supplychain-service/internal/ports"
	"time"
)

// ProductService manages the product catalog.
type ProductService struct {
	Repo  ports.ProductRepository
	Now   func() time.Time
	NewID func(prefix string) string
}

func NewProductService(repo ports.ProductRepository) *ProductService {
	return &ProductService{
		Repo:  repo,
		Now:   func() time.Time { return time.Now().UTC() },
		NewID: NewID,
	}
}

func (s *ProductService) Create(ctx context.Context, p domain.Product) (_ domain.Product, err error) {
	defer obs.Time(ctx, "products.Create")(&err)

	p.Name = strings.TrimSpace(p.Name)
	p.District = strings.TrimSpace(p.District)
	if t, err := domain.ParseProductType(string(p.Type)); err == nil {
		p.Type = t
	}
	if err := p.Validate(); err != nil {
		return domain.Product{}, err
	}

	p.ID = s.NewID(productIDPrefix)
	p.CreatedAt = s.Now()
	if strings.TrimSpace(p.Status) == "" {
		p.Status = "active"
	}

	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (s *ProductService) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	all, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// VendorService manages vendor registration.
type VendorService struct {
	Repo  ports.VendorRepository
	Now   func() time.Time
	NewID func(prefix string) string
}

func NewVendorService(repo ports.VendorRepository) *VendorService {
	return &VendorService{
		Repo:  repo,
		Now:   func() time.Time { return time.Now().UTC() },
		NewID: NewID,
	}
}

func (s *VendorService) Create(ctx context.Context, v domain.Vendor) (_ domain.Vendor, err error) {
	defer obs.Time(ctx, "vendors.Create")(&err)

	v.Name = strings.TrimSpace(v.Name)
	v.Email = strings.TrimSpace(v.Email)
	v.Phone = strings.TrimSpace(v.Phone)
	if err := v.Validate(); err != nil {
		return domain.Vendor{}, err
	}

	v.ID = s.NewID(vendorIDPrefix)
	v.CreatedAt = s.Now()
	if strings.TrimSpace(v.Status) == "" {
		v.Status = domain.VendorActive
	}

	if err := s.Repo.CreateVendor(ctx, v); err != nil {
		return domain.Vendor{}, fmt.Errorf("create vendor: %w", err)
	}
	return v, nil
}

func (s *VendorService) List(ctx context.Context) ([]domain.Vendor, error) {
	vendors, err := s.Repo.ListVendors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	return vendors, nil
}
