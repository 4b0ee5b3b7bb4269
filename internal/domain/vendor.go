package domain

import "time"

// VendorActive is the status assigned to newly registered vendors.
const VendorActive = "active"

// Vendor is a buyer or supplier the business trades with.
type Vendor struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	Type      string
	Status    string
	CreatedAt time.Time
}

func (v Vendor) Validate() error {
	ve := &ValidationError{}
	ve.Require("name", v.Name)
	ve.Require("email", v.Email)
	ve.Require("phone", v.Phone)
	ve.Require("type", v.Type)
	return ve.Err()
}
