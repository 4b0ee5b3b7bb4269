package services

import (
	"sort"
	"strings"
	"supplychain-service/internal/domain"
	"time"

	"github.com/shopspring/decimal"
)

// RouteFilter narrows route listings. Empty fields match everything; set
// fields combine with AND, values within one set combine with OR.
type RouteFilter struct {
	// Search matches case-insensitively against route number, driver, origin and destination.
	Search       string
	Statuses     []domain.RouteStatus
	Drivers      []string
	Origins      []string
	Destinations []string
	// From and To bound the scheduled date, inclusive.
	From *time.Time
	To   *time.Time
}

func (f RouteFilter) Match(r domain.Route) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		hit := strings.Contains(strings.ToLower(r.RouteNumber), q) ||
			strings.Contains(strings.ToLower(r.DriverName), q) ||
			strings.Contains(strings.ToLower(r.Origin), q) ||
			strings.Contains(strings.ToLower(r.Destination), q)
		if !hit {
			return false
		}
	}

	if len(f.Statuses) > 0 && !contains(f.Statuses, r.Status) {
		return false
	}
	if len(f.Drivers) > 0 && !contains(f.Drivers, r.DriverName) {
		return false
	}
	if len(f.Origins) > 0 && !contains(f.Origins, r.Origin) {
		return false
	}
	if len(f.Destinations) > 0 && !contains(f.Destinations, r.Destination) {
		return false
	}

	day := dateOnly(r.ScheduledDate)
	if f.From != nil && day.Before(dateOnly(*f.From)) {
		return false
	}
	if f.To != nil && day.After(dateOnly(*f.To)) {
		return false
	}

	return true
}

// ProductFilter narrows the product catalog.
type ProductFilter struct {
	Search    string
	Types     []domain.ProductType
	Districts []string
	// MinPrice and MaxPrice bound the retail price, inclusive.
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

func (f ProductFilter) Match(p domain.Product) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Breed), q) {
			return false
		}
	}
	if len(f.Types) > 0 && !contains(f.Types, p.Type) {
		return false
	}
	if len(f.Districts) > 0 && !contains(f.Districts, p.District) {
		return false
	}
	if f.MinPrice != nil && p.RetailPrice.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.RetailPrice.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type stringSet map[string]struct{}

func newStringSet() stringSet { return make(stringSet) }

// add ignores blank values.
func (s stringSet) add(v string) {
	if strings.TrimSpace(v) == "" {
		return
	}
	s[v] = struct{}{}
}

func (s stringSet) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
