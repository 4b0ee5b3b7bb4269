package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Number is a decimal amount written as a bare JSON number.
type Number = json.Number

func money(d decimal.Decimal) Number {
	return Number(d.String())
}
