package memory

import (
	"context"
	"fmt"
	"supplychain-service/internal/domain"
	"supplychain-service/internal/ports"
	"sync"
)

// RouteRepository keeps routes in insertion order in process memory.
// It is safe for concurrent use; callers always receive copies.
type RouteRepository struct {
	mu     sync.RWMutex
	routes []domain.Route
	index  map[string]int
}

var _ ports.RouteRepository = (*RouteRepository)(nil)

func NewRouteRepository() *RouteRepository {
	return &RouteRepository{index: make(map[string]int)}
}

func (r *RouteRepository) CreateRoute(ctx context.Context, route domain.Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[route.ID]; exists {
		return fmt.Errorf("create route: duplicate id %q", route.ID)
	}
	r.index[route.ID] = len(r.routes)
	r.routes = append(r.routes, route.Clone())
	return nil
}

func (r *RouteRepository) GetRoute(ctx context.Context, id string) (domain.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return domain.Route{}, fmt.Errorf("get route %q: %w", id, domain.ErrNotFound)
	}
	return r.routes[i].Clone(), nil
}

func (r *RouteRepository) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Route, 0, len(r.routes))
	for _, route := range r.routes {
		out = append(out, route.Clone())
	}
	return out, nil
}

func (r *RouteRepository) UpdateRoute(ctx context.Context, route domain.Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[route.ID]
	if !ok {
		return fmt.Errorf("update route %q: %w", route.ID, domain.ErrNotFound)
	}
	r.routes[i] = route.Clone()
	return nil
}
