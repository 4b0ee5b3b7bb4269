package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProductType is the meat category of a product.
type ProductType string

const (
	ProductBeef    ProductType = "beef"
	ProductChicken ProductType = "chicken"
	ProductMutton  ProductType = "mutton"
	ProductGoat    ProductType = "goat"
	ProductFish    ProductType = "fish"
)

var ProductTypes = []ProductType{ProductBeef, ProductChicken, ProductMutton, ProductGoat, ProductFish}

func ParseProductType(s string) (ProductType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range ProductTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("parse product type: unknown type %q", s)
}

// Product is a catalog entry. Prices are per kilogram in BDT.
type Product struct {
	ID             string
	Name           string
	Type           ProductType
	Breed          string
	WeightKg       float64
	RetailPrice    decimal.Decimal
	WholesalePrice decimal.Decimal
	Description    string
	FCR            float64
	RearingDays    int
	District       string
	Image          string
	Status         string
	CreatedAt      time.Time
}

func (p Product) Validate() error {
	v := &ValidationError{}
	v.Require("name", p.Name)
	if strings.TrimSpace(string(p.Type)) == "" {
		v.Add("type", RequiredMessage("type"))
	} else if _, err := ParseProductType(string(p.Type)); err != nil {
		v.Add("type", fmt.Sprintf("Type %q is not a known product type", p.Type))
	}
	if !p.WholesalePrice.IsPositive() {
		v.Add("wholesalePrice", RequiredMessage("wholesalePrice"))
	}
	if !p.RetailPrice.IsPositive() {
		v.Add("retailPrice", RequiredMessage("retailPrice"))
	}
	if p.WeightKg <= 0 {
		v.Add("weight", RequiredMessage("weight"))
	}
	v.Require("district", p.District)
	return v.Err()
}
