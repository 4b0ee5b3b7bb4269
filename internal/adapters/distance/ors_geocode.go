package distance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"supplychain-service/internal/domain"
	"supplychain-service/internal/platform/obs"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// geocodeMany looks places up one at a time via /geocode/search, bounded to
// the configured country when one is set.
func (o *ORSProvider) geocodeMany(ctx context.Context, places []string) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.geocodeMany")(&err)

	out := make(map[string]domain.Coordinates, len(places))
	for _, p := range places {
		if _, ok := out[p]; ok {
			continue
		}
		c, err := o.geocode(ctx, p)
		if err != nil {
			return nil, err
		}
		out[p] = c
	}
	return out, nil
}

func (o *ORSProvider) geocode(ctx context.Context, place string) (domain.Coordinates, error) {
	endpoint := o.cfg.BaseURL + "/geocode/search"

	resp, err := o.sendWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", place)
		q.Set("size", "1")
		if o.cfg.Country != "" {
			q.Set("boundary.country", o.cfg.Country)
		}
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", place, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: decode: %w", place, err)
	}
	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: no results", place)
	}

	xy := decoded.Features[0].Geometry.Coordinates
	if len(xy) != 2 {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: want [lon, lat], got %d values", place, len(xy))
	}
	return domain.Coordinates{Lon: xy[0], Lat: xy[1]}, nil
}
