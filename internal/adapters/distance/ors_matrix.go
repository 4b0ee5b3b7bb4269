package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"supplychain-service/internal/domain"
	"supplychain-service/internal/platform/obs"
	"supplychain-service/internal/ports"
)

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Sources      []int       `json:"sources"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// fetchMatrixRow asks /v2/matrix for a single source row: origin against
// every destination. names[i] labels targets[i] in the result.
func (o *ORSProvider) fetchMatrixRow(
	ctx context.Context,
	origin domain.Coordinates,
	names []string,
	targets []domain.Coordinates,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "ors.fetchMatrixRow")(&err)

	if len(names) != len(targets) {
		return nil, errors.New("matrix: names and targets differ in length")
	}
	if len(names) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	body := matrixRequest{
		Locations:    make([][]float64, 0, 1+len(targets)),
		Sources:      []int{0},
		Destinations: make([]int, 0, len(targets)),
		Metrics:      []string{"distance", "duration"},
	}
	body.Locations = append(body.Locations, origin.LonLat())
	for i, t := range targets {
		body.Locations = append(body.Locations, t.LonLat())
		body.Destinations = append(body.Destinations, i+1)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("matrix: marshal: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.cfg.BaseURL, o.cfg.Profile)
	resp, err := o.sendWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("matrix: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("matrix: decode: %w", err)
	}
	if len(mr.Distances) != 1 || len(mr.Durations) != 1 {
		return nil, fmt.Errorf("matrix: want 1 source row, got distances=%d durations=%d", len(mr.Distances), len(mr.Durations))
	}

	meters, seconds := mr.Distances[0], mr.Durations[0]
	if len(meters) != len(names) || len(seconds) != len(names) {
		return nil, fmt.Errorf("matrix: row has %d/%d cells for %d destinations", len(meters), len(seconds), len(names))
	}

	out := make(map[string]ports.DistanceResult, len(names))
	for i, name := range names {
		// ORS reports null for unroutable pairs.
		if meters[i] == nil || seconds[i] == nil {
			return nil, fmt.Errorf("matrix: no route to %q", name)
		}
		out[name] = ports.DistanceResult{
			DistanceMeters:  int(math.Round(*meters[i])),
			DurationSeconds: int(math.Round(*seconds[i])),
		}
	}
	return out, nil
}
