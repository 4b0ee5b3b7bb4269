package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

var OrderStatuses = []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

func ParseOrderStatus(s string) (OrderStatus, error) {
	s = strings.TrimSpace(s)
	for _, st := range OrderStatuses {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("parse order status: unknown status %q", s)
}

// Active reports whether the order still needs fulfilment work.
func (s OrderStatus) Active() bool {
	return s != OrderDelivered && s != OrderCancelled
}

// Order is a vendor purchase of a single product.
// VendorName and ProductName are denormalized at creation time.
type Order struct {
	ID          string
	VendorID    string
	VendorName  string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalAmount decimal.Decimal
	Status      OrderStatus
	OrderDate   time.Time
	Notes       string
}

// Total returns quantity × unit price.
func (o Order) Total() decimal.Decimal {
	return o.UnitPrice.Mul(decimal.NewFromInt(int64(o.Quantity)))
}

func (o Order) Validate() error {
	v := &ValidationError{}
	v.Require("vendorId", o.VendorID)
	v.Require("productId", o.ProductID)
	if o.Quantity <= 0 {
		v.Add("quantity", RequiredMessage("quantity"))
	}
	if o.UnitPrice.IsNegative() {
		v.Add("unitPrice", "UnitPrice must not be negative")
	}
	return v.Err()
}
