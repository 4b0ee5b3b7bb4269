package domain

import (
	"fmt"
	"strings"
	"time"
)

// RouteStatus is the lifecycle state of a distribution route.
type RouteStatus string

const (
	RouteScheduled RouteStatus = "Scheduled"
	RouteInTransit RouteStatus = "In Transit"
	RouteDelivered RouteStatus = "Delivered"
	RouteDelayed   RouteStatus = "Delayed"
	RouteCancelled RouteStatus = "Cancelled"
)

// RouteStatuses lists every valid status in display order.
var RouteStatuses = []RouteStatus{
	RouteScheduled,
	RouteInTransit,
	RouteDelivered,
	RouteDelayed,
	RouteCancelled,
}

// ParseRouteStatus matches s against the closed status set, ignoring case and
// surrounding whitespace.
func ParseRouteStatus(s string) (RouteStatus, error) {
	s = strings.TrimSpace(s)
	for _, st := range RouteStatuses {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("parse route status: unknown status %q", s)
}

// Valid reports whether s is exactly one of the enumerated statuses.
func (s RouteStatus) Valid() bool {
	for _, st := range RouteStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// Slug returns a lowercase, dash-separated form suitable for routing keys.
func (s RouteStatus) Slug() string {
	return strings.ReplaceAll(strings.ToLower(string(s)), " ", "-")
}

// RouteProduct is one line item carried on a route.
type RouteProduct struct {
	ProductName string
	Quantity    int
}

// Route is a scheduled delivery trip between two locations.
// Routes are replaced as whole records; nothing mutates individual fields
// after creation except the service setting timestamps.
type Route struct {
	ID            string
	RouteNumber   string
	DriverName    string
	VehicleID     string
	Origin        string
	Destination   string
	DistanceKm    float64
	TemperatureC  float64
	ScheduledDate time.Time
	EstimatedTime string
	Status        RouteStatus
	Products      []RouteProduct
	GPSAvailable  bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Clone returns a copy that shares no slices with r.
func (r Route) Clone() Route {
	out := r
	if r.Products != nil {
		out.Products = make([]RouteProduct, len(r.Products))
		copy(out.Products, r.Products)
	}
	return out
}

// Validate checks the fields a route cannot be saved without.
func (r Route) Validate() error {
	v := &ValidationError{}
	v.Require("routeNumber", r.RouteNumber)
	v.Require("driverName", r.DriverName)
	v.Require("vehicleId", r.VehicleID)
	v.Require("origin", r.Origin)
	v.Require("destination", r.Destination)
	if r.ScheduledDate.IsZero() {
		v.Add("scheduledDate", "ScheduledDate is required")
	}
	if strings.TrimSpace(string(r.Status)) == "" {
		v.Add("status", "Status is required")
	} else if !r.Status.Valid() {
		v.Add("status", fmt.Sprintf("Status %q is not one of %s", r.Status, joinStatuses()))
	}
	for i, p := range r.Products {
		if strings.TrimSpace(p.ProductName) == "" {
			v.Add(fmt.Sprintf("products[%d].productName", i), "ProductName is required")
		}
		if p.Quantity < 0 {
			v.Add(fmt.Sprintf("products[%d].quantity", i), "Quantity must not be negative")
		}
	}
	return v.Err()
}

func joinStatuses() string {
	names := make([]string, 0, len(RouteStatuses))
	for _, s := range RouteStatuses {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
