package ports

import (
	"context"
	"time"
)

// RouteEvent announces that a route was created or replaced.
type RouteEvent struct {
	Type        string    `json:"type"`
	RouteID     string    `json:"route_id"`
	RouteNumber string    `json:"route_number"`
	Status      string    `json:"status"`
	Progress    int       `json:"progress"`
	OccurredAt  time.Time `json:"occurred_at"`
}

const (
	RouteCreated = "route.created"
	RouteUpdated = "route.updated"
)

// Contract for announcing route changes to downstream consumers.
type RouteEventPublisher interface {
	PublishRouteEvent(ctx context.Context, ev RouteEvent) error
}
