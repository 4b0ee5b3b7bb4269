package distance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"supplychain-service/internal/domain"
	"supplychain-service/internal/platform/obs"
	"supplychain-service/internal/ports"
	"time"

	"go.uber.org/zap"
)

// DistanceCache persists origin -> destination results.
type DistanceCache interface {
	GetMany(ctx context.Context, origin string, destinations []string) (map[string]ports.DistanceResult, error)
	PutMany(ctx context.Context, origin string, results map[string]ports.DistanceResult) error
}

// GeocodeCache persists place -> coordinate lookups.
type GeocodeCache interface {
	GetMany(ctx context.Context, places []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, coords map[string]domain.Coordinates) error
}

type ORSConfig struct {
	APIKey string
	// Country is the ISO 3166 alpha-2 code geocoding is bounded to, e.g. "BD".
	Country string
	BaseURL string
	Profile string
	Timeout time.Duration
}

// ORSProvider resolves road distances between hubs through OpenRouteService.
// Place names are geocoded once, then one matrix call covers every uncached
// destination of an origin. Both caches are optional.
//
// The provider is safe for concurrent use.
type ORSProvider struct {
	client    *http.Client
	cfg       ORSConfig
	distances DistanceCache
	geocodes  GeocodeCache
}

func NewORSProvider(cfg ORSConfig, distances DistanceCache, geocodes GeocodeCache) (*ORSProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("ors: api key is empty")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openrouteservice.org"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Profile == "" {
		cfg.Profile = "driving-hgv"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &ORSProvider{
		client:    &http.Client{Timeout: cfg.Timeout},
		cfg:       cfg,
		distances: distances,
		geocodes:  geocodes,
	}, nil
}

// normalize collapses whitespace so cache keys are stable.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (o *ORSProvider) GetDistance(ctx context.Context, origin, destination string) (ports.DistanceResult, error) {
	from, to := normalize(origin), normalize(destination)
	if from == "" || to == "" {
		return ports.DistanceResult{}, errors.New("ors distance: origin and destination must be non-empty")
	}

	results, err := o.GetDistances(ctx, from, []string{to})
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("ors distance %q -> %q: %w", from, to, err)
	}

	r, ok := results[to]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("ors distance: no result for %q -> %q", from, to)
	}
	return r, nil
}

// GetDistances resolves origin against every destination. Results are keyed
// by the normalized destination; a destination equal to origin is skipped.
func (o *ORSProvider) GetDistances(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "ors.GetDistances")(&err)

	from := normalize(origin)
	if from == "" {
		return nil, errors.New("ors distances: origin must be non-empty")
	}

	dests := make([]string, 0, len(destinations))
	seen := make(map[string]struct{}, len(destinations))
	for _, d := range destinations {
		d = normalize(d)
		if d == "" || d == from {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dests = append(dests, d)
	}
	if len(dests) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	out := make(map[string]ports.DistanceResult, len(dests))
	if o.distances != nil {
		hits, err := o.distances.GetMany(ctx, from, dests)
		if err != nil {
			return nil, fmt.Errorf("ors distances: read cache: %w", err)
		}
		for k, v := range hits {
			out[k] = v
		}
	}

	misses := make([]string, 0, len(dests))
	for _, d := range dests {
		if _, ok := out[d]; !ok {
			misses = append(misses, d)
		}
	}
	if len(misses) == 0 {
		return out, nil
	}

	coords, err := o.resolveCoordinates(ctx, append([]string{from}, misses...))
	if err != nil {
		return nil, fmt.Errorf("ors distances: %w", err)
	}

	targets := make([]domain.Coordinates, len(misses))
	for i, d := range misses {
		targets[i] = coords[d]
	}

	fetched, err := o.fetchMatrixRow(ctx, coords[from], misses, targets)
	if err != nil {
		return nil, fmt.Errorf("ors distances: %w", err)
	}

	var missing []string
	for _, d := range misses {
		if _, ok := fetched[d]; !ok {
			missing = append(missing, d)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("ors distances: matrix omitted %s", strings.Join(missing, ", "))
	}

	if o.distances != nil {
		if err := o.distances.PutMany(ctx, from, fetched); err != nil {
			zap.L().Warn("distance cache write failed", zap.String("origin", from), zap.Error(err))
		}
	}

	for k, v := range fetched {
		out[k] = v
	}
	return out, nil
}

// resolveCoordinates returns coordinates for every place, geocoding and
// caching the ones not already cached.
func (o *ORSProvider) resolveCoordinates(ctx context.Context, places []string) (map[string]domain.Coordinates, error) {
	coords := make(map[string]domain.Coordinates, len(places))
	if o.geocodes != nil {
		hits, err := o.geocodes.GetMany(ctx, places)
		if err != nil {
			return nil, fmt.Errorf("read geocode cache: %w", err)
		}
		for k, v := range hits {
			coords[k] = v
		}
	}

	var misses []string
	for _, p := range places {
		if _, ok := coords[p]; !ok {
			misses = append(misses, p)
		}
	}
	if len(misses) == 0 {
		return coords, nil
	}

	fresh, err := o.geocodeMany(ctx, misses)
	if err != nil {
		return nil, fmt.Errorf("geocode: %w", err)
	}

	if o.geocodes != nil && len(fresh) > 0 {
		if err := o.geocodes.PutMany(ctx, fresh); err != nil {
			zap.L().Warn("geocode cache write failed", zap.Int("places", len(fresh)), zap.Error(err))
		}
	}

	for k, v := range fresh {
		coords[k] = v
	}
	for _, p := range places {
		if _, ok := coords[p]; !ok {
			return nil, fmt.Errorf("no coordinates for %q", p)
		}
	}
	return coords, nil
}

var (
	_ ports.DistanceProvider       = (*ORSProvider)(nil)
	_ ports.DistanceMatrixProvider = (*ORSProvider)(nil)
)
