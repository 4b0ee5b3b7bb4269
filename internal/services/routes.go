package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"supplychain-service/internal/domain"
	"supplychain-service/internal/platform/obs"
	"supplychain-service/internal/ports"
	"time"

	"go.uber.org/zap"
)

// RouteService owns route creation, whole-record replacement, querying and tracking.
type RouteService struct {
	Repo      ports.RouteRepository
	Publisher ports.RouteEventPublisher
	// Distances is optional; when set, routes created without a distance
	// get one looked up from origin to destination.
	Distances ports.DistanceProvider
	Now       func() time.Time
	NewID     func(prefix string) string
}

func NewRouteService(repo ports.RouteRepository, publisher ports.RouteEventPublisher, distances ports.DistanceProvider) *RouteService {
	return &RouteService{
		Repo:      repo,
		Publisher: publisher,
		Distances: distances,
		Now:       func() time.Time { return time.Now().UTC() },
		NewID:     NewID,
	}
}

// Create validates r, assigns its id and timestamps, stores it and publishes a route.created event.
func (s *RouteService) Create(ctx context.Context, r domain.Route) (_ domain.Route, err error) {
	defer obs.Time(ctx, "routes.Create")(&err)

	r = normalizeRoute(r)
	if err := r.Validate(); err != nil {
		return domain.Route{}, err
	}

	now := s.Now()
	r.ID = s.NewID(routeIDPrefix)
	r.CreatedAt = now
	r.UpdatedAt = now

	if r.DistanceKm == 0 && s.Distances != nil {
		s.fillDistance(ctx, &r)
	}

	if err := s.Repo.CreateRoute(ctx, r); err != nil {
		return domain.Route{}, fmt.Errorf("create route: %w", err)
	}

	s.publish(ctx, ports.RouteCreated, r)
	return r, nil
}

// Update replaces the stored route id with r. The id and creation time are
// preserved; every other field comes from r. No status transition rules apply.
func (s *RouteService) Update(ctx context.Context, id string, r domain.Route) (_ domain.Route, err error) {
	defer obs.Time(ctx, "routes.Update")(&err)

	current, err := s.Repo.GetRoute(ctx, id)
	if err != nil {
		return domain.Route{}, fmt.Errorf("update route: %w", err)
	}

	r = normalizeRoute(r)
	if err := r.Validate(); err != nil {
		return domain.Route{}, err
	}

	r.ID = current.ID
	r.CreatedAt = current.CreatedAt
	r.UpdatedAt = s.Now()

	if err := s.Repo.UpdateRoute(ctx, r); err != nil {
		return domain.Route{}, fmt.Errorf("update route: %w", err)
	}

	s.publish(ctx, ports.RouteUpdated, r)
	return r, nil
}

func (s *RouteService) Get(ctx context.Context, id string) (domain.Route, error) {
	r, err := s.Repo.GetRoute(ctx, id)
	if err != nil {
		return domain.Route{}, fmt.Errorf("get route: %w", err)
	}
	return r, nil
}

// Track returns the tracking view of route id, derived from its current status.
func (s *RouteService) Track(ctx context.Context, id string) (domain.Tracking, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return domain.Tracking{}, err
	}
	return domain.Track(r), nil
}

// List returns routes matching f, ordered by scheduled date then route number.
func (s *RouteService) List(ctx context.Context, f RouteFilter) ([]domain.Route, error) {
	all, err := s.Repo.ListRoutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}

	out := make([]domain.Route, 0, len(all))
	for _, r := range all {
		if f.Match(r) {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ScheduledDate.Equal(out[j].ScheduledDate) {
			return out[i].ScheduledDate.Before(out[j].ScheduledDate)
		}
		return out[i].RouteNumber < out[j].RouteNumber
	})
	return out, nil
}

// RouteFacets are the distinct values offered as route filter options.
type RouteFacets struct {
	Statuses     []string
	Drivers      []string
	Origins      []string
	Destinations []string
}

func (s *RouteService) Facets(ctx context.Context) (RouteFacets, error) {
	all, err := s.Repo.ListRoutes(ctx)
	if err != nil {
		return RouteFacets{}, fmt.Errorf("route facets: %w", err)
	}

	statuses, drivers, origins, destinations := newStringSet(), newStringSet(), newStringSet(), newStringSet()
	for _, r := range all {
		statuses.add(string(r.Status))
		drivers.add(r.DriverName)
		origins.add(r.Origin)
		destinations.add(r.Destination)
	}

	return RouteFacets{
		Statuses:     statuses.sorted(),
		Drivers:      drivers.sorted(),
		Origins:      origins.sorted(),
		Destinations: destinations.sorted(),
	}, nil
}

func (s *RouteService) Stats(ctx context.Context) (domain.RouteStats, error) {
	all, err := s.Repo.ListRoutes(ctx)
	if err != nil {
		return domain.RouteStats{}, fmt.Errorf("route stats: %w", err)
	}
	return computeRouteStats(all), nil
}

func computeRouteStats(routes []domain.Route) domain.RouteStats {
	st := domain.RouteStats{TotalRoutes: len(routes)}
	if len(routes) == 0 {
		return st
	}

	var sumTemp float64
	for _, r := range routes {
		switch r.Status {
		case domain.RouteInTransit:
			st.InTransit++
		case domain.RouteDelivered:
			st.Delivered++
		}
		sumTemp += r.TemperatureC
	}
	st.AvgTemperatureC = int(math.Round(sumTemp / float64(len(routes))))
	return st
}

// BackfillDistances looks up distances for every stored route whose distance
// is zero and saves them. Lookups are batched per origin when the provider
// supports matrix queries. It returns the number of routes updated.
func (s *RouteService) BackfillDistances(ctx context.Context) (_ int, err error) {
	defer obs.Time(ctx, "routes.BackfillDistances")(&err)

	if s.Distances == nil {
		return 0, errors.New("backfill distances: no distance provider configured")
	}

	all, err := s.Repo.ListRoutes(ctx)
	if err != nil {
		return 0, fmt.Errorf("backfill distances: %w", err)
	}

	byOrigin := make(map[string][]domain.Route)
	origins := make([]string, 0)
	for _, r := range all {
		if r.DistanceKm != 0 {
			continue
		}
		if _, ok := byOrigin[r.Origin]; !ok {
			origins = append(origins, r.Origin)
		}
		byOrigin[r.Origin] = append(byOrigin[r.Origin], r)
	}
	sort.Strings(origins)

	updated := 0
	for _, origin := range origins {
		routes := byOrigin[origin]

		results, err := s.lookupDistances(ctx, origin, routes)
		if err != nil {
			return updated, fmt.Errorf("backfill distances: from %q: %w", origin, err)
		}

		for _, r := range routes {
			res, ok := results[r.Destination]
			if !ok {
				return updated, fmt.Errorf("backfill distances: missing result %q -> %q", origin, r.Destination)
			}
			applyDistance(&r, res)
			r.UpdatedAt = s.Now()
			if err := s.Repo.UpdateRoute(ctx, r); err != nil {
				return updated, fmt.Errorf("backfill distances: %w", err)
			}
			updated++
		}
	}

	return updated, nil
}

func (s *RouteService) lookupDistances(ctx context.Context, origin string, routes []domain.Route) (map[string]ports.DistanceResult, error) {
	dests := newStringSet()
	for _, r := range routes {
		dests.add(r.Destination)
	}
	destinations := dests.sorted()

	// Prefer a single origin->many lookup when supported to reduce external API calls.
	if mp, ok := s.Distances.(ports.DistanceMatrixProvider); ok {
		return mp.GetDistances(ctx, origin, destinations)
	}

	out := make(map[string]ports.DistanceResult, len(destinations))
	for _, d := range destinations {
		r, err := s.Distances.GetDistance(ctx, origin, d)
		if err != nil {
			return nil, fmt.Errorf("get distance %q -> %q: %w", origin, d, err)
		}
		out[d] = r
	}
	return out, nil
}

// fillDistance is best-effort: a failed lookup leaves the route as entered.
func (s *RouteService) fillDistance(ctx context.Context, r *domain.Route) {
	res, err := s.Distances.GetDistance(ctx, r.Origin, r.Destination)
	if err != nil {
		zap.L().Warn("route distance lookup failed",
			zap.String("origin", r.Origin),
			zap.String("destination", r.Destination),
			zap.Error(err))
		return
	}
	applyDistance(r, res)
}

func applyDistance(r *domain.Route, res ports.DistanceResult) {
	r.DistanceKm = math.Round(float64(res.DistanceMeters)/100) / 10
	if strings.TrimSpace(r.EstimatedTime) == "" {
		r.EstimatedTime = FormatDuration(time.Duration(res.DurationSeconds) * time.Second)
	}
}

// FormatDuration renders d as "6h 30m", or "45m" under an hour.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

func (s *RouteService) publish(ctx context.Context, eventType string, r domain.Route) {
	if s.Publisher == nil {
		return
	}

	ev := ports.RouteEvent{
		Type:        eventType,
		RouteID:     r.ID,
		RouteNumber: r.RouteNumber,
		Status:      string(r.Status),
		Progress:    domain.Progress(r.Status),
		OccurredAt:  s.Now(),
	}
	if err := s.Publisher.PublishRouteEvent(ctx, ev); err != nil {
		zap.L().Warn("publish route event failed",
			zap.String("route_id", r.ID),
			zap.String("type", eventType),
			zap.Error(err))
	}
}

func normalizeRoute(r domain.Route) domain.Route {
	r.RouteNumber = strings.TrimSpace(r.RouteNumber)
	r.DriverName = strings.TrimSpace(r.DriverName)
	r.VehicleID = strings.TrimSpace(r.VehicleID)
	r.Origin = strings.TrimSpace(r.Origin)
	r.Destination = strings.TrimSpace(r.Destination)
	r.EstimatedTime = strings.TrimSpace(r.EstimatedTime)
	if st, err := domain.ParseRouteStatus(string(r.Status)); err == nil {
		r.Status = st
	}
	return r.Clone()
}
