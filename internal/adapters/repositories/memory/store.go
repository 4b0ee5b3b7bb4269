package memory

import "supplychain-service/internal/ports"

// NewStore returns empty in-memory repositories for every entity.
func NewStore() ports.Store {
	return ports.Store{
		Routes:   NewRouteRepository(),
		Products: NewProductRepository(),
		Vendors:  NewVendorRepository(),
		Orders:   NewOrderRepository(),
	}
}
