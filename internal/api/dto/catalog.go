package dto

import (
	"supplychain-service/internal/domain"
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest accepts prices as JSON numbers or numeric strings.
type ProductRequest struct {
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Breed          string          `json:"breed"`
	Weight         float64         `json:"weight"`
	RetailPrice    decimal.Decimal `json:"retailPrice"`
	WholesalePrice decimal.Decimal `json:"wholesalePrice"`
	Description    string          `json:"description"`
	FCR            float64         `json:"fcr"`
	RearingDays    int             `json:"rearingDays"`
	District       string          `json:"district"`
	Image          string          `json:"image"`
	Status         string          `json:"status"`
}

func (req ProductRequest) ToDomain() domain.Product {
	return domain.Product{
		Name:           req.Name,
		Type:           domain.ProductType(req.Type),
		Breed:          req.Breed,
		WeightKg:       req.Weight,
		RetailPrice:    req.RetailPrice,
		WholesalePrice: req.WholesalePrice,
		Description:    req.Description,
		FCR:            req.FCR,
		RearingDays:    req.RearingDays,
		District:       req.District,
		Image:          req.Image,
		Status:         req.Status,
	}
}

type ProductResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	Breed          string    `json:"breed"`
	Weight         float64   `json:"weight"`
	RetailPrice    Number    `json:"retailPrice"`
	WholesalePrice Number    `json:"wholesalePrice"`
	Description    string    `json:"description"`
	FCR            float64   `json:"fcr"`
	RearingDays    int       `json:"rearingDays"`
	District       string    `json:"district"`
	Image          string    `json:"image"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

func NewProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Type:           string(p.Type),
		Breed:          p.Breed,
		Weight:         p.WeightKg,
		RetailPrice:    money(p.RetailPrice),
		WholesalePrice: money(p.WholesalePrice),
		Description:    p.Description,
		FCR:            p.FCR,
		RearingDays:    p.RearingDays,
		District:       p.District,
		Image:          p.Image,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
	}
}

type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

type VendorRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Type    string `json:"type"`
	Status  string `json:"status"`
}

func (req VendorRequest) ToDomain() domain.Vendor {
	return domain.Vendor{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Type:    req.Type,
		Status:  req.Status,
	}
}

type VendorResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewVendorResponse(v domain.Vendor) VendorResponse {
	return VendorResponse{
		ID:        v.ID,
		Name:      v.Name,
		Email:     v.Email,
		Phone:     v.Phone,
		Address:   v.Address,
		Type:      v.Type,
		Status:    v.Status,
		CreatedAt: v.CreatedAt,
	}
}

type ListVendorsResponse struct {
	Vendors []VendorResponse `json:"vendors"`
}

type OrderRequest struct {
	VendorID  string          `json:"vendorId"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Notes     string          `json:"notes"`
}

func (req OrderRequest) ToDomain() domain.Order {
	return domain.Order{
		VendorID:  req.VendorID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Notes:     req.Notes,
	}
}

type OrderStatusRequest struct {
	Status string `json:"status"`
}

type OrderResponse struct {
	ID          string    `json:"id"`
	VendorID    string    `json:"vendorId"`
	VendorName  string    `json:"vendorName"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	UnitPrice   Number    `json:"unitPrice"`
	TotalAmount Number    `json:"totalAmount"`
	Status      string    `json:"status"`
	OrderDate   time.Time `json:"orderDate"`
	Notes       string    `json:"notes"`
}

func NewOrderResponse(o domain.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		VendorID:    o.VendorID,
		VendorName:  o.VendorName,
		ProductID:   o.ProductID,
		ProductName: o.ProductName,
		Quantity:    o.Quantity,
		UnitPrice:   money(o.UnitPrice),
		TotalAmount: money(o.TotalAmount),
		Status:      string(o.Status),
		OrderDate:   o.OrderDate,
		Notes:       o.Notes,
	}
}

type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

type KPIResponse struct {
	TotalProducts     int                `json:"totalProducts"`
	TotalVendors      int                `json:"totalVendors"`
	TotalOrders       int                `json:"totalOrders"`
	ActiveOrders      int                `json:"activeOrders"`
	TotalRevenue      Number             `json:"totalRevenue"`
	AvgFCR            float64            `json:"avgFCR"`
	AvgWeight         float64            `json:"avgWeight"`
	AvgRearingDays    float64            `json:"avgRearingDays"`
	AvgWholesalePrice Number             `json:"avgWholesalePrice"`
	AvgRetailPrice    Number             `json:"avgRetailPrice"`
	Routes            RouteStatsResponse `json:"routes"`
}

func NewKPIResponse(k domain.KPIs) KPIResponse {
	return KPIResponse{
		TotalProducts:     k.TotalProducts,
		TotalVendors:      k.TotalVendors,
		TotalOrders:       k.TotalOrders,
		ActiveOrders:      k.ActiveOrders,
		TotalRevenue:      money(k.TotalRevenue),
		AvgFCR:            k.AvgFCR,
		AvgWeight:         k.AvgWeightKg,
		AvgRearingDays:    k.AvgRearingDays,
		AvgWholesalePrice: money(k.AvgWholesalePrice),
		AvgRetailPrice:    money(k.AvgRetailPrice),
		Routes:            NewRouteStatsResponse(k.Routes),
	}
}

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
