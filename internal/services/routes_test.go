package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"supplychain-service/internal/adapters/distance"
	"supplychain-service/internal/adapters/repositories/memory"
	"supplychain-service/internal/domain"
	"supplychain-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.RouteEvent
	err    error
}

func (p *recordingPublisher) PublishRouteEvent(_ context.Context, ev ports.RouteEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func sequentialIDs() func(string) string {
	n := 0
	return func(prefix string) string {
		n++
		return prefix + "-" + string(rune('0'+n))
	}
}

func newRouteService(pub ports.RouteEventPublisher, dist ports.DistanceProvider) *RouteService {
	s := NewRouteService(memory.NewRouteRepository(), pub, dist)
	s.Now = func() time.Time { return fixedNow }
	s.NewID = sequentialIDs()
	return s
}

func newRoute(number, driver, origin, dest string, day int, status domain.RouteStatus) domain.Route {
	return domain.Route{
		RouteNumber:   number,
		DriverName:    driver,
		VehicleID:     "DHA-KA-11-2345",
		Origin:        origin,
		Destination:   dest,
		DistanceKm:    250,
		TemperatureC:  2,
		ScheduledDate: time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
		Status:        status,
		Products:      []domain.RouteProduct{{ProductName: "Premium Beef Steak", Quantity: 40}},
	}
}

func TestRouteServiceCreate(t *testing.T) {
	pub := &recordingPublisher{}
	s := newRouteService(pub, nil)

	in := newRoute("  RT-001 ", "Karim", "Dhaka", "Chittagong", 14, "in transit")
	got, err := s.Create(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "R-1", got.ID)
	assert.Equal(t, "RT-001", got.RouteNumber)
	assert.Equal(t, domain.RouteInTransit, got.Status)
	assert.Equal(t, fixedNow, got.CreatedAt)
	assert.Equal(t, fixedNow, got.UpdatedAt)

	stored, err := s.Get(context.Background(), "R-1")
	require.NoError(t, err)
	assert.Equal(t, got, stored)

	require.Len(t, pub.events, 1)
	assert.Equal(t, ports.RouteEvent{
		Type:        ports.RouteCreated,
		RouteID:     "R-1",
		RouteNumber: "RT-001",
		Status:      "In Transit",
		Progress:    65,
		OccurredAt:  fixedNow,
	}, pub.events[0])
}

func TestRouteServiceCreateValidation(t *testing.T) {
	pub := &recordingPublisher{}
	s := newRouteService(pub, nil)

	_, err := s.Create(context.Background(), domain.Route{Status: "Lost"})

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"destination", "driverName", "origin", "routeNumber", "scheduledDate", "status", "vehicleId"}, ve.FieldNames())
	assert.Empty(t, pub.events)

	all, err := s.List(context.Background(), RouteFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRouteServicePublishFailureDoesNotFailWrite(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	s := newRouteService(pub, nil)

	got, err := s.Create(context.Background(), newRoute("RT-001", "Karim", "Dhaka", "Sylhet", 14, domain.RouteScheduled))
	require.NoError(t, err)

	_, err = s.Get(context.Background(), got.ID)
	assert.NoError(t, err)
}

func TestRouteServiceUpdateReplacesRecord(t *testing.T) {
	pub := &recordingPublisher{}
	s := newRouteService(pub, nil)
	ctx := context.Background()

	created, err := s.Create(ctx, newRoute("RT-001", "Karim", "Dhaka", "Chittagong", 14, domain.RouteScheduled))
	require.NoError(t, err)

	later := fixedNow.Add(2 * time.Hour)
	s.Now = func() time.Time { return later }

	repl := newRoute("RT-001", "Rahim", "Dhaka", "Khulna", 15, domain.RouteDelivered)
	repl.Products = nil
	repl.ID = "ignored"
	updated, err := s.Update(ctx, created.ID, repl)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, later, updated.UpdatedAt)
	assert.Equal(t, "Rahim", updated.DriverName)
	assert.Empty(t, updated.Products)

	tr, err := s.Track(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, tr.Progress)

	require.Len(t, pub.events, 2)
	assert.Equal(t, ports.RouteUpdated, pub.events[1].Type)
	assert.Equal(t, 100, pub.events[1].Progress)
}

func TestRouteServiceUpdateMissing(t *testing.T) {
	s := newRouteService(nil, nil)

	_, err := s.Update(context.Background(), "R-404", newRoute("RT-9", "Karim", "Dhaka", "Sylhet", 1, domain.RouteScheduled))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.Track(context.Background(), "R-404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRouteServiceTrackCancelled(t *testing.T) {
	s := newRouteService(nil, nil)
	ctx := context.Background()

	r, err := s.Create(ctx, newRoute("RT-7", "Karim", "Dhaka", "Sylhet", 3, domain.RouteCancelled))
	require.NoError(t, err)

	tr, err := s.Track(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, tr.Progress)
	require.Len(t, tr.Timeline, 1)
	assert.Equal(t, domain.StepIssue, tr.Timeline[0].State)
}

func seedRoutes(t *testing.T, s *RouteService) {
	t.Helper()
	for _, r := range []domain.Route{
		newRoute("RT-003", "Karim", "Dhaka", "Chittagong", 14, domain.RouteInTransit),
		newRoute("RT-001", "Rahim", "Dhaka", "Sylhet", 12, domain.RouteDelivered),
		newRoute("RT-002", "Karim", "Khulna", "Dhaka", 12, domain.RouteScheduled),
		newRoute("RT-004", "Salma", "Rajshahi", "Dhaka", 20, domain.RouteDelayed),
	} {
		_, err := s.Create(context.Background(), r)
		require.NoError(t, err)
	}
}

func routeNumbers(routes []domain.Route) []string {
	out := make([]string, len(routes))
	for i, r := range routes {
		out[i] = r.RouteNumber
	}
	return out
}

func TestRouteServiceList(t *testing.T) {
	s := newRouteService(nil, nil)
	seedRoutes(t, s)
	ctx := context.Background()

	from := time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter RouteFilter
		want   []string
	}{
		{"all sorted by date then number", RouteFilter{}, []string{"RT-001", "RT-002", "RT-003", "RT-004"}},
		{"search driver", RouteFilter{Search: "karim"}, []string{"RT-002", "RT-003"}},
		{"search route number", RouteFilter{Search: "rt-004"}, []string{"RT-004"}},
		{"status set", RouteFilter{Statuses: []domain.RouteStatus{domain.RouteDelivered, domain.RouteDelayed}}, []string{"RT-001", "RT-004"}},
		{"origin and destination", RouteFilter{Origins: []string{"Dhaka"}, Destinations: []string{"Sylhet"}}, []string{"RT-001"}},
		{"date range inclusive by day", RouteFilter{From: &from, To: &to}, []string{"RT-001", "RT-002", "RT-003"}},
		{"no match", RouteFilter{Drivers: []string{"Nobody"}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, routeNumbers(got))
		})
	}
}

func TestRouteServiceFacetsAndStats(t *testing.T) {
	s := newRouteService(nil, nil)
	seedRoutes(t, s)
	ctx := context.Background()

	f, err := s.Facets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Delayed", "Delivered", "In Transit", "Scheduled"}, f.Statuses)
	assert.Equal(t, []string{"Karim", "Rahim", "Salma"}, f.Drivers)
	assert.Equal(t, []string{"Dhaka", "Khulna", "Rajshahi"}, f.Origins)
	assert.Equal(t, []string{"Chittagong", "Dhaka", "Sylhet"}, f.Destinations)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.RouteStats{TotalRoutes: 4, InTransit: 1, Delivered: 1, AvgTemperatureC: 2}, st)
}

func TestComputeRouteStatsRoundsTemperature(t *testing.T) {
	a := newRoute("A", "K", "Dhaka", "Sylhet", 1, domain.RouteScheduled)
	b := a
	a.TemperatureC = 2
	b.TemperatureC = 3.2

	assert.Equal(t, 3, computeRouteStats([]domain.Route{a, b}).AvgTemperatureC)
	assert.Equal(t, domain.RouteStats{}, computeRouteStats(nil))
}

func TestRouteServiceFillsDistanceOnCreate(t *testing.T) {
	dist := distance.NewStaticProvider([]distance.Leg{
		{From: "Dhaka", To: "Chittagong", Meters: 253460, Seconds: 23400},
	})
	s := newRouteService(nil, dist)
	ctx := context.Background()

	in := newRoute("RT-1", "Karim", "Dhaka", "Chittagong", 14, domain.RouteScheduled)
	in.DistanceKm = 0
	got, err := s.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 253.5, got.DistanceKm)
	assert.Equal(t, "6h 30m", got.EstimatedTime)

	// Unknown legs are left as entered.
	in = newRoute("RT-2", "Karim", "Dhaka", "Barishal", 14, domain.RouteScheduled)
	in.DistanceKm = 0
	got, err = s.Create(ctx, in)
	require.NoError(t, err)
	assert.Zero(t, got.DistanceKm)
}

func TestRouteServiceBackfillDistances(t *testing.T) {
	dist := distance.NewStaticProvider([]distance.Leg{
		{From: "Dhaka", To: "Chittagong", Meters: 248000, Seconds: 23400},
		{From: "Dhaka", To: "Sylhet", Meters: 241000, Seconds: 2700},
	})
	s := newRouteService(nil, nil)
	ctx := context.Background()

	for _, r := range []domain.Route{
		newRoute("RT-1", "Karim", "Dhaka", "Chittagong", 14, domain.RouteScheduled),
		newRoute("RT-2", "Karim", "Dhaka", "Sylhet", 14, domain.RouteScheduled),
		newRoute("RT-3", "Karim", "Dhaka", "Sylhet", 15, domain.RouteScheduled),
	} {
		r.DistanceKm = 0
		_, err := s.Create(ctx, r)
		require.NoError(t, err)
	}

	_, err := s.BackfillDistances(ctx)
	assert.Error(t, err)

	s.Distances = dist
	n, err := s.BackfillDistances(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := s.List(ctx, RouteFilter{Destinations: []string{"Sylhet"}})
	require.NoError(t, err)
	for _, r := range got {
		assert.Equal(t, 241.0, r.DistanceKm)
		assert.Equal(t, "45m", r.EstimatedTime)
	}

	n, err = s.BackfillDistances(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45m", FormatDuration(45*time.Minute))
	assert.Equal(t, "6h 30m", FormatDuration(6*time.Hour+29*time.Minute+40*time.Second))
	assert.Equal(t, "2h 0m", FormatDuration(2*time.Hour))
}

func TestNewID(t *testing.T) {
	id := NewID(routeIDPrefix)
	assert.Regexp(t, `^R-[0-9A-F]{8}$`, id)
	assert.NotEqual(t, id, NewID(routeIDPrefix))
}
