package domain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestRequiredMessage(t *testing.T) {
	if got := RequiredMessage("wholesalePrice"); got != "WholesalePrice is required" {
		t.Errorf("got %q", got)
	}
}

func TestRouteValidateMissingFields(t *testing.T) {
	err := Route{Status: "Lost"}.Validate()

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}

	want := []string{"destination", "driverName", "origin", "routeNumber", "scheduledDate", "status", "vehicleId"}
	if diff := cmp.Diff(want, ve.FieldNames()); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestRouteValidateOK(t *testing.T) {
	if err := testRoute(RouteScheduled).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestProductValidate(t *testing.T) {
	p := Product{
		Name:           "Premium Beef Steak",
		Type:           ProductBeef,
		WeightKg:       1,
		RetailPrice:    decimal.NewFromInt(850),
		WholesalePrice: decimal.NewFromInt(700),
		District:       "Dhaka",
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p.District = " "
	p.Type = "pork"
	var ve *ValidationError
	if !errors.As(p.Validate(), &ve) {
		t.Fatal("expected validation error")
	}
	m := ve.FieldMap()
	if m["district"] != "District is required" {
		t.Errorf("district message = %q", m["district"])
	}
	if _, ok := m["type"]; !ok {
		t.Error("expected type error")
	}
}

func TestVendorValidate(t *testing.T) {
	var ve *ValidationError
	if !errors.As(Vendor{Name: "Bengal Meats"}.Validate(), &ve) {
		t.Fatal("expected validation error")
	}
	if diff := cmp.Diff([]string{"email", "phone", "type"}, ve.FieldNames()); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderTotalAndActive(t *testing.T) {
	o := Order{Quantity: 3, UnitPrice: decimal.RequireFromString("120.50")}
	if got := o.Total().String(); got != "361.5" {
		t.Errorf("total = %s, want 361.5", got)
	}

	if !OrderPending.Active() || OrderDelivered.Active() || OrderCancelled.Active() {
		t.Error("unexpected Active() results")
	}
}
