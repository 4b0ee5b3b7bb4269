package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// RouteStats summarizes the distribution board.
type RouteStats struct {
	TotalRoutes     int
	InTransit       int
	Delivered       int
	AvgTemperatureC int
}

// KPIs are dashboard aggregates recomputed from the repositories on demand.
type KPIs struct {
	TotalProducts     int
	TotalVendors      int
	TotalOrders       int
	ActiveOrders      int
	TotalRevenue      decimal.Decimal
	AvgFCR            float64
	AvgWeightKg       float64
	AvgRearingDays    float64
	AvgWholesalePrice decimal.Decimal
	AvgRetailPrice    decimal.Decimal
	Routes            RouteStats
}

// ReportRows returns the metric/value pairs of the exported report, in order.
func (k KPIs) ReportRows() [][2]string {
	return [][2]string{
		{"Total Products", strconv.Itoa(k.TotalProducts)},
		{"Total Vendors", strconv.Itoa(k.TotalVendors)},
		{"Total Orders", strconv.Itoa(k.TotalOrders)},
		{"Total Revenue", k.TotalRevenue.String()},
		{"Average FCR", formatFloat(k.AvgFCR)},
		{"Average Weight", formatFloat(k.AvgWeightKg)},
		{"Average Wholesale Price", k.AvgWholesalePrice.String()},
		{"Average Retail Price", k.AvgRetailPrice.String()},
	}
}

// ReportCSV renders the report as "Metric,Value" followed by one line per
// metric, newline-separated with no trailing newline.
func (k KPIs) ReportCSV() string {
	rows := k.ReportRows()
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, "Metric,Value")
	for _, r := range rows {
		lines = append(lines, r[0]+","+r[1])
	}
	return strings.Join(lines, "\n")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
