package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"supplychain-service/internal/domain"
	"supplychain-service/internal/ports"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// SeedData is the on-disk demo dataset.
type SeedData struct {
	Products []ProductSeed `json:"products" yaml:"products"`
	Vendors  []VendorSeed  `json:"vendors" yaml:"vendors"`
	Orders   []OrderSeed   `json:"orders" yaml:"orders"`
	Routes   []RouteSeed   `json:"routes" yaml:"routes"`
}

type ProductSeed struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	Type           string  `json:"type" yaml:"type"`
	Breed          string  `json:"breed" yaml:"breed"`
	Weight         float64 `json:"weight" yaml:"weight"`
	RetailPrice    float64 `json:"retail_price" yaml:"retail_price"`
	WholesalePrice float64 `json:"wholesale_price" yaml:"wholesale_price"`
	Description    string  `json:"description" yaml:"description"`
	FCR            float64 `json:"fcr" yaml:"fcr"`
	RearingDays    int     `json:"rearing_days" yaml:"rearing_days"`
	District       string  `json:"district" yaml:"district"`
	Image          string  `json:"image" yaml:"image"`
	Status         string  `json:"status" yaml:"status"`
}

type VendorSeed struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Email   string `json:"email" yaml:"email"`
	Phone   string `json:"phone" yaml:"phone"`
	Address string `json:"address" yaml:"address"`
	Type    string `json:"type" yaml:"type"`
	Status  string `json:"status" yaml:"status"`
}

type OrderSeed struct {
	ID        string  `json:"id" yaml:"id"`
	VendorID  string  `json:"vendor_id" yaml:"vendor_id"`
	ProductID string  `json:"product_id" yaml:"product_id"`
	Quantity  int     `json:"quantity" yaml:"quantity"`
	UnitPrice float64 `json:"unit_price" yaml:"unit_price"`
	Status    string  `json:"status" yaml:"status"`
	OrderDate string  `json:"order_date" yaml:"order_date"`
	Notes     string  `json:"notes" yaml:"notes"`
}

type RouteSeed struct {
	ID            string             `json:"id" yaml:"id"`
	RouteNumber   string             `json:"route_number" yaml:"route_number"`
	DriverName    string             `json:"driver_name" yaml:"driver_name"`
	VehicleID     string             `json:"vehicle_id" yaml:"vehicle_id"`
	Origin        string             `json:"origin" yaml:"origin"`
	Destination   string             `json:"destination" yaml:"destination"`
	Distance      float64            `json:"distance" yaml:"distance"`
	Temperature   float64            `json:"temperature" yaml:"temperature"`
	ScheduledDate string             `json:"scheduled_date" yaml:"scheduled_date"`
	EstimatedTime string             `json:"estimated_time" yaml:"estimated_time"`
	Status        string             `json:"status" yaml:"status"`
	GPSLocation   bool               `json:"gps_location" yaml:"gps_location"`
	Products      []RouteProductSeed `json:"products" yaml:"products"`
}

type RouteProductSeed struct {
	ProductName string `json:"product_name" yaml:"product_name"`
	Quantity    int    `json:"quantity" yaml:"quantity"`
}

// LoadSeedFile parses a seed file; .yaml and .yml are read as YAML, anything else as JSON.
func LoadSeedFile(path string) (SeedData, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return SeedData{}, fmt.Errorf("load seed: read %q: %w", path, err)
	}

	var data SeedData
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &data); err != nil {
			return SeedData{}, fmt.Errorf("load seed: parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(b, &data); err != nil {
			return SeedData{}, fmt.Errorf("load seed: parse json: %w", err)
		}
	}
	return data, nil
}

// SeedResult counts inserted entities per kind.
type SeedResult struct {
	Products, Vendors, Orders, Routes int
}

// Seed inserts data into store. Entities whose id already exists are
// skipped, so seeding twice is harmless. now stamps created-at fields.
func Seed(ctx context.Context, store ports.Store, data SeedData, now time.Time) (SeedResult, error) {
	var res SeedResult
	now = now.UTC()

	productNames := make(map[string]string, len(data.Products))
	for i, ps := range data.Products {
		p, err := ps.toDomain(now)
		if err != nil {
			return res, fmt.Errorf("seed products: item %d: %w", i+1, err)
		}
		productNames[p.ID] = p.Name

		inserted, err := insertIfMissing(ctx, p.ID,
			func() error { _, err := store.Products.GetProduct(ctx, p.ID); return err },
			func() error { return store.Products.CreateProduct(ctx, p) })
		if err != nil {
			return res, fmt.Errorf("seed products: id=%q: %w", p.ID, err)
		}
		if inserted {
			res.Products++
		}
	}

	vendorNames := make(map[string]string, len(data.Vendors))
	for i, vs := range data.Vendors {
		v := vs.toDomain(now)
		if strings.TrimSpace(v.ID) == "" {
			return res, fmt.Errorf("seed vendors: item %d: id cannot be empty", i+1)
		}
		if err := v.Validate(); err != nil {
			return res, fmt.Errorf("seed vendors: item %d: %w", i+1, err)
		}
		vendorNames[v.ID] = v.Name

		inserted, err := insertIfMissing(ctx, v.ID,
			func() error { _, err := store.Vendors.GetVendor(ctx, v.ID); return err },
			func() error { return store.Vendors.CreateVendor(ctx, v) })
		if err != nil {
			return res, fmt.Errorf("seed vendors: id=%q: %w", v.ID, err)
		}
		if inserted {
			res.Vendors++
		}
	}

	for i, seed := range data.Orders {
		o, err := seed.toDomain(now, vendorNames, productNames)
		if err != nil {
			return res, fmt.Errorf("seed orders: item %d: %w", i+1, err)
		}

		inserted, err := insertIfMissing(ctx, o.ID,
			func() error { _, err := store.Orders.GetOrder(ctx, o.ID); return err },
			func() error { return store.Orders.CreateOrder(ctx, o) })
		if err != nil {
			return res, fmt.Errorf("seed orders: id=%q: %w", o.ID, err)
		}
		if inserted {
			res.Orders++
		}
	}

	for i, rs := range data.Routes {
		r, err := rs.toDomain(now)
		if err != nil {
			return res, fmt.Errorf("seed routes: item %d: %w", i+1, err)
		}

		inserted, err := insertIfMissing(ctx, r.ID,
			func() error { _, err := store.Routes.GetRoute(ctx, r.ID); return err },
			func() error { return store.Routes.CreateRoute(ctx, r) })
		if err != nil {
			return res, fmt.Errorf("seed routes: id=%q: %w", r.ID, err)
		}
		if inserted {
			res.Routes++
		}
	}

	return res, nil
}

func insertIfMissing(ctx context.Context, id string, get, create func() error) (bool, error) {
	err := get()
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}
	if err := create(); err != nil {
		return false, err
	}
	return true, nil
}

func (ps ProductSeed) toDomain(now time.Time) (domain.Product, error) {
	if strings.TrimSpace(ps.ID) == "" {
		return domain.Product{}, errors.New("id cannot be empty")
	}
	t, err := domain.ParseProductType(ps.Type)
	if err != nil {
		return domain.Product{}, err
	}

	status := ps.Status
	if status == "" {
		status = "active"
	}
	p := domain.Product{
		ID:             strings.TrimSpace(ps.ID),
		Name:           strings.TrimSpace(ps.Name),
		Type:           t,
		Breed:          ps.Breed,
		WeightKg:       ps.Weight,
		RetailPrice:    decimal.NewFromFloat(ps.RetailPrice),
		WholesalePrice: decimal.NewFromFloat(ps.WholesalePrice),
		Description:    ps.Description,
		FCR:            ps.FCR,
		RearingDays:    ps.RearingDays,
		District:       strings.TrimSpace(ps.District),
		Image:          ps.Image,
		Status:         status,
		CreatedAt:      now,
	}
	if err := p.Validate(); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (vs VendorSeed) toDomain(now time.Time) domain.Vendor {
	status := vs.Status
	if status == "" {
		status = domain.VendorActive
	}
	return domain.Vendor{
		ID:        strings.TrimSpace(vs.ID),
		Name:      strings.TrimSpace(vs.Name),
		Email:     strings.TrimSpace(vs.Email),
		Phone:     strings.TrimSpace(vs.Phone),
		Address:   vs.Address,
		Type:      vs.Type,
		Status:    status,
		CreatedAt: now,
	}
}

func (s OrderSeed) toDomain(now time.Time, vendorNames, productNames map[string]string) (domain.Order, error) {
	if strings.TrimSpace(s.ID) == "" {
		return domain.Order{}, errors.New("id cannot be empty")
	}

	status := domain.OrderPending
	if s.Status != "" {
		st, err := domain.ParseOrderStatus(s.Status)
		if err != nil {
			return domain.Order{}, err
		}
		status = st
	}

	date := now
	if s.OrderDate != "" {
		d, err := parseSeedDate(s.OrderDate)
		if err != nil {
			return domain.Order{}, err
		}
		date = d
	}

	o := domain.Order{
		ID:          strings.TrimSpace(s.ID),
		VendorID:    s.VendorID,
		VendorName:  vendorNames[s.VendorID],
		ProductID:   s.ProductID,
		ProductName: productNames[s.ProductID],
		Quantity:    s.Quantity,
		UnitPrice:   decimal.NewFromFloat(s.UnitPrice),
		Status:      status,
		OrderDate:   date,
		Notes:       s.Notes,
	}
	if err := o.Validate(); err != nil {
		return domain.Order{}, err
	}
	if o.VendorName == "" {
		return domain.Order{}, fmt.Errorf("unknown vendor_id %q", s.VendorID)
	}
	if o.ProductName == "" {
		return domain.Order{}, fmt.Errorf("unknown product_id %q", s.ProductID)
	}
	o.TotalAmount = o.Total()
	return o, nil
}

func (rs RouteSeed) toDomain(now time.Time) (domain.Route, error) {
	if strings.TrimSpace(rs.ID) == "" {
		return domain.Route{}, errors.New("id cannot be empty")
	}

	status, err := domain.ParseRouteStatus(rs.Status)
	if err != nil {
		return domain.Route{}, err
	}
	scheduled, err := parseSeedDate(rs.ScheduledDate)
	if err != nil {
		return domain.Route{}, err
	}
	// Routes are scheduled by calendar day; a timestamp keeps only its UTC date.
	scheduled = dateOnly(scheduled)

	items := make([]domain.RouteProduct, 0, len(rs.Products))
	for _, p := range rs.Products {
		items = append(items, domain.RouteProduct{ProductName: p.ProductName, Quantity: p.Quantity})
	}

	r := domain.Route{
		ID:            strings.TrimSpace(rs.ID),
		RouteNumber:   rs.RouteNumber,
		DriverName:    rs.DriverName,
		VehicleID:     rs.VehicleID,
		Origin:        rs.Origin,
		Destination:   rs.Destination,
		DistanceKm:    rs.Distance,
		TemperatureC:  rs.Temperature,
		ScheduledDate: scheduled,
		EstimatedTime: rs.EstimatedTime,
		Status:        status,
		Products:      items,
		GPSAvailable:  rs.GPSLocation,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := r.Validate(); err != nil {
		return domain.Route{}, err
	}
	return r, nil
}

// parseSeedDate accepts "2006-01-02" or RFC 3339.
func parseSeedDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("2006-01-02", s, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: want YYYY-MM-DD or RFC 3339", s)
	}
	return t.UTC(), nil
}
