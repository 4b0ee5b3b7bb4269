// Package events publishes route lifecycle events to a message broker or a log.
package events

import (
	"encoding/json"
	"fmt"
	"supplychain-service/internal/domain"
	"supplychain-service/internal/ports"
)

// Exchange is the topic exchange route events are published to.
const Exchange = "distribution.events"

// RoutingKey returns "route.<status>", e.g. "route.in-transit", so consumers
// can bind to a single status or to "route.#".
func RoutingKey(ev ports.RouteEvent) string {
	return "route." + domain.RouteStatus(ev.Status).Slug()
}

func encode(ev ports.RouteEvent) ([]byte, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("encode route event %s: %w", ev.RouteID, err)
	}
	return b, nil
}
