package events

import (
	"context"
	"supplychain-service/internal/ports"

	"go.uber.org/zap"
)

// LogPublisher writes route events to the structured log. It is used when
// no broker is configured.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	if log == nil {
		log = zap.L()
	}
	return &LogPublisher{log: log.Named("events")}
}

func (p *LogPublisher) PublishRouteEvent(_ context.Context, ev ports.RouteEvent) error {
	p.log.Info("route event",
		zap.String("type", ev.Type),
		zap.String("routing_key", RoutingKey(ev)),
		zap.String("route_id", ev.RouteID),
		zap.String("route_number", ev.RouteNumber),
		zap.String("status", ev.Status),
		zap.Int("progress", ev.Progress),
		zap.Time("occurred_at", ev.OccurredAt))
	return nil
}

var _ ports.RouteEventPublisher = (*LogPublisher)(nil)
