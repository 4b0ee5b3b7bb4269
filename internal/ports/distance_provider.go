package ports

import "context"

// DistanceResult is the road distance and travel time between two places.
type DistanceResult struct {
	DistanceMeters  int
	DurationSeconds int
}

// DistanceProvider looks up road distance between two addresses.
type DistanceProvider interface {
	GetDistance(ctx context.Context, origin string, destination string) (DistanceResult, error)
}

// DistanceMatrixProvider is implemented by providers that can resolve one
// origin against many destinations in a single call.
type DistanceMatrixProvider interface {
	DistanceProvider
	GetDistances(ctx context.Context, origin string, destinations []string) (map[string]DistanceResult, error)
}
