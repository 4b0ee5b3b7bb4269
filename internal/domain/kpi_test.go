package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestReportCSV(t *testing.T) {
	k := KPIs{
		TotalProducts:     4,
		TotalVendors:      2,
		TotalOrders:       3,
		TotalRevenue:      decimal.RequireFromString("15250.5"),
		AvgFCR:            2.1,
		AvgWeightKg:       1.25,
		AvgWholesalePrice: decimal.NewFromInt(560),
		AvgRetailPrice:    decimal.NewFromInt(700),
	}

	want := "Metric,Value\n" +
		"Total Products,4\n" +
		"Total Vendors,2\n" +
		"Total Orders,3\n" +
		"Total Revenue,15250.5\n" +
		"Average FCR,2.1\n" +
		"Average Weight,1.25\n" +
		"Average Wholesale Price,560\n" +
		"Average Retail Price,700"

	if got := k.ReportCSV(); got != want {
		t.Fatalf("csv =\n%s\nwant\n%s", got, want)
	}
}

func TestReportCSVZeroValues(t *testing.T) {
	got := KPIs{}.ReportCSV()
	want := "Metric,Value\nTotal Products,0\nTotal Vendors,0\nTotal Orders,0\nTotal Revenue,0\n" +
		"Average FCR,0\nAverage Weight,0\nAverage Wholesale Price,0\nAverage Retail Price,0"
	if got != want {
		t.Fatalf("csv =\n%s\nwant\n%s", got, want)
	}
}
