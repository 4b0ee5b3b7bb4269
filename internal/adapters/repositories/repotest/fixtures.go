// Package repotest holds fixtures and a behavioural suite shared by every
// ports.Store implementation.
package repotest

import (
	"supplychain-service/internal/domain"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

var baseTime = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

// Comparers makes cmp treat decimals and times by value.
var Comparers = cmp.Options{
	cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) }),
}

func Route(id, number string, status domain.RouteStatus) domain.Route {
	return domain.Route{
		ID:            id,
		RouteNumber:   number,
		DriverName:    "Karim",
		VehicleID:     "DHA-KA-11-2345",
		Origin:        "Dhaka",
		Destination:   "Chittagong",
		DistanceKm:    253.5,
		TemperatureC:  2,
		ScheduledDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		EstimatedTime: "6h 30m",
		Status:        status,
		Products: []domain.RouteProduct{
			{ProductName: "Premium Beef Steak", Quantity: 40},
			{ProductName: "Broiler Chicken", Quantity: 120},
		},
		GPSAvailable: true,
		CreatedAt:    baseTime,
		UpdatedAt:    baseTime,
	}
}

func Product(id, name string, t domain.ProductType, retail int64) domain.Product {
	return domain.Product{
		ID:             id,
		Name:           name,
		Type:           t,
		Breed:          "Red Chittagong",
		WeightKg:       1.5,
		RetailPrice:    decimal.NewFromInt(retail),
		WholesalePrice: decimal.NewFromInt(retail).Mul(decimal.RequireFromString("0.8")),
		Description:    "Fresh cut",
		FCR:            2.1,
		RearingDays:    180,
		District:       "Dhaka",
		Status:         "active",
		CreatedAt:      baseTime,
	}
}

func Vendor(id, name string) domain.Vendor {
	return domain.Vendor{
		ID:        id,
		Name:      name,
		Email:     "sales@example.com",
		Phone:     "+8801700000000",
		Address:   "Kawran Bazar, Dhaka",
		Type:      "wholesaler",
		Status:    domain.VendorActive,
		CreatedAt: baseTime,
	}
}

func Order(id, vendorID, productID string, qty int, unit int64) domain.Order {
	o := domain.Order{
		ID:          id,
		VendorID:    vendorID,
		VendorName:  "Bengal Meats",
		ProductID:   productID,
		ProductName: "Premium Beef Steak",
		Quantity:    qty,
		UnitPrice:   decimal.NewFromInt(unit),
		Status:      domain.OrderPending,
		OrderDate:   baseTime,
		Notes:       "deliver before noon",
	}
	o.TotalAmount = o.Total()
	return o
}
