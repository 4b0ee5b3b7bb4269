package services

import (
	"strings"

	"github.com/google/uuid"
)

// ID prefixes per entity, e.g. "R-1F3A9C2B".
const (
	routeIDPrefix   = "R"
	productIDPrefix = "P"
	vendorIDPrefix  = "V"
	orderIDPrefix   = "ORD"
)

// NewID returns prefix + "-" + the first 8 hex digits of a random UUID, uppercased.
func NewID(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.NewString()[:8])
}
