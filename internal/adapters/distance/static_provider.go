package distance

import (
	"context"
	"fmt"
	"supplychain-service/internal/ports"
)

// Leg is one known distance between two places.
type Leg struct {
	From, To string
	Meters   int
	Seconds  int
}

// StaticProvider answers distance lookups from a fixed table of legs. A leg
// also answers the reverse direction unless that direction has its own entry.
// It backs tests and offline runs without a routing API key.
type StaticProvider struct {
	legs map[string]ports.DistanceResult
}

func NewStaticProvider(legs []Leg) *StaticProvider {
	m := make(map[string]ports.DistanceResult, 2*len(legs))
	for _, l := range legs {
		m[legKey(l.From, l.To)] = ports.DistanceResult{DistanceMeters: l.Meters, DurationSeconds: l.Seconds}
	}
	for _, l := range legs {
		if _, ok := m[legKey(l.To, l.From)]; !ok {
			m[legKey(l.To, l.From)] = ports.DistanceResult{DistanceMeters: l.Meters, DurationSeconds: l.Seconds}
		}
	}
	return &StaticProvider{legs: m}
}

func (p *StaticProvider) GetDistance(_ context.Context, origin, destination string) (ports.DistanceResult, error) {
	r, ok := p.legs[legKey(origin, destination)]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("no known distance %q -> %q", origin, destination)
	}
	return r, nil
}

func (p *StaticProvider) GetDistances(ctx context.Context, origin string, destinations []string) (map[string]ports.DistanceResult, error) {
	out := make(map[string]ports.DistanceResult, len(destinations))
	for _, d := range destinations {
		r, err := p.GetDistance(ctx, origin, d)
		if err != nil {
			return nil, err
		}
		out[d] = r
	}
	return out, nil
}

func legKey(from, to string) string { return from + "|" + to }

var (
	_ ports.DistanceProvider       = (*StaticProvider)(nil)
	_ ports.DistanceMatrixProvider = (*StaticProvider)(nil)
)
