package services

import (
	"context"
	"fmt"
	"math"
	"supplychain-service/internal/domain"
	"supplychain-service/internal/platform/obs"
	"supplychain-service/internal/ports"

	"github.com/shopspring/decimal"
)

// KPIService aggregates dashboard metrics across all repositories.
type KPIService struct {
	Store ports.Store
}

func NewKPIService(store ports.Store) *KPIService {
	return &KPIService{Store: store}
}

// Compute recomputes every KPI from current repository contents.
// Averages over an empty catalog are zero; money averages are rounded to 2
// places and float averages to 2 decimals. Revenue sums every order total.
func (s *KPIService) Compute(ctx context.Context) (_ domain.KPIs, err error) {
	defer obs.Time(ctx, "kpis.Compute")(&err)

	products, err := s.Store.Products.ListProducts(ctx)
	if err != nil {
		return domain.KPIs{}, fmt.Errorf("compute kpis: %w", err)
	}
	vendors, err := s.Store.Vendors.ListVendors(ctx)
	if err != nil {
		return domain.KPIs{}, fmt.Errorf("compute kpis: %w", err)
	}
	orders, err := s.Store.Orders.ListOrders(ctx)
	if err != nil {
		return domain.KPIs{}, fmt.Errorf("compute kpis: %w", err)
	}
	routes, err := s.Store.Routes.ListRoutes(ctx)
	if err != nil {
		return domain.KPIs{}, fmt.Errorf("compute kpis: %w", err)
	}

	k := domain.KPIs{
		TotalProducts: len(products),
		TotalVendors:  len(vendors),
		TotalOrders:   len(orders),
		TotalRevenue:  decimal.Zero,
		Routes:        computeRouteStats(routes),
	}

	for _, o := range orders {
		if o.Status.Active() {
			k.ActiveOrders++
		}
		k.TotalRevenue = k.TotalRevenue.Add(o.TotalAmount)
	}

	if len(products) == 0 {
		k.AvgWholesalePrice = decimal.Zero
		k.AvgRetailPrice = decimal.Zero
		return k, nil
	}

	var (
		sumWeight          float64
		sumFCR, sumRearing float64
		nFCR, nRearing     int
	)
	sumWholesale, sumRetail := decimal.Zero, decimal.Zero
	for _, p := range products {
		sumWeight += p.WeightKg
		sumWholesale = sumWholesale.Add(p.WholesalePrice)
		sumRetail = sumRetail.Add(p.RetailPrice)
		if p.FCR > 0 {
			sumFCR += p.FCR
			nFCR++
		}
		if p.RearingDays > 0 {
			sumRearing += float64(p.RearingDays)
			nRearing++
		}
	}

	n := decimal.NewFromInt(int64(len(products)))
	k.AvgWeightKg = round2(sumWeight / float64(len(products)))
	k.AvgWholesalePrice = sumWholesale.Div(n).Round(2)
	k.AvgRetailPrice = sumRetail.Div(n).Round(2)
	if nFCR > 0 {
		k.AvgFCR = round2(sumFCR / float64(nFCR))
	}
	if nRearing > 0 {
		k.AvgRearingDays = round2(sumRearing / float64(nRearing))
	}

	return k, nil
}

// ExportCSV renders the KPI report in its "Metric,Value" CSV form.
func (s *KPIService) ExportCSV(ctx context.Context) (string, error) {
	k, err := s.Compute(ctx)
	if err != nil {
		return "", fmt.Errorf("export kpis: %w", err)
	}
	return k.ReportCSV(), nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
