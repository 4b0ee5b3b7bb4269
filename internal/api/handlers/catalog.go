package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"supplychain-service/internal/api/dto"
	"supplychain-service/internal/domain"
	"supplychain-service/internal/services"

	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	Svc *services.ProductService
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := parseProductFilter(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, "list products", err)
		return
	}

	products, err := h.Svc.List(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, "list products", err)
		return
	}

	res := dto.ListProductsResponse{Products: make([]dto.ProductResponse, 0, len(products))}
	for _, p := range products {
		res.Products = append(res.Products, dto.NewProductResponse(p))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.Svc.Create(r.Context(), req.ToDomain())
	if err != nil {
		writeServiceError(w, r, "create product", err)
		return
	}

	w.Header().Set("Location", "/api/products/"+p.ID)
	writeJSON(w, r, http.StatusCreated, dto.NewProductResponse(p))
}

func parseProductFilter(q url.Values) (services.ProductFilter, error) {
	f := services.ProductFilter{
		Search:    q.Get("q"),
		Districts: multi(q, "district"),
	}

	ve := &domain.ValidationError{}
	for _, s := range multi(q, "type") {
		t, err := domain.ParseProductType(s)
		if err != nil {
			ve.Add("type", fmt.Sprintf("Type %q is not a known product type", s))
			continue
		}
		f.Types = append(f.Types, t)
	}

	f.MinPrice = parsePriceParam(q, "min_price", ve)
	f.MaxPrice = parsePriceParam(q, "max_price", ve)

	return f, ve.Err()
}

func parsePriceParam(q url.Values, key string, ve *domain.ValidationError) *decimal.Decimal {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		ve.Add(key, fmt.Sprintf("%q is not a number", s))
		return nil
	}
	return &d
}

type VendorHandler struct {
	Svc *services.VendorService
}

func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.Svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, "list vendors", err)
		return
	}

	res := dto.ListVendorsResponse{Vendors: make([]dto.VendorResponse, 0, len(vendors))}
	for _, v := range vendors {
		res.Vendors = append(res.Vendors, dto.NewVendorResponse(v))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *VendorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.VendorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v, err := h.Svc.Create(r.Context(), req.ToDomain())
	if err != nil {
		writeServiceError(w, r, "create vendor", err)
		return
	}

	w.Header().Set("Location", "/api/vendors/"+v.ID)
	writeJSON(w, r, http.StatusCreated, dto.NewVendorResponse(v))
}
