package repositories

import (
	"supplychain-service/internal/platform/db"
	"supplychain-service/internal/ports"
)

// NewSQLStore returns SQL-backed repositories sharing one connection pool.
func NewSQLStore(d *db.DB) ports.Store {
	return ports.Store{
		Routes:   NewSQLRouteRepository(d),
		Products: NewSQLProductRepository(d),
		Vendors:  NewSQLVendorRepository(d),
		Orders:   NewSQLOrderRepository(d),
	}
}
