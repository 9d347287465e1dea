package mq

import (
	"context"
	"encoding/json"
	"log"

	"encore/models"
	"encore/rdx"
)

// Channel entity-change events are published to.
const eventsChannel = "encore-events"

// AnalyticsCacheKey is dropped whenever a band, venue, or show mutates so
// the next analytics read recomputes.
const AnalyticsCacheKey = "analytics:overview"

// Emit publishes an entity-change event to Redis. Failures are logged and
// swallowed; event delivery is best effort and never blocks a request.
func Emit(ctx context.Context, eventName string, content models.Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, eventsChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s: %v", eventName, err)
		return
	}

	switch content.EntityType {
	case "band", "venue", "show":
		if err := rdx.DelCache(AnalyticsCacheKey); err != nil {
			log.Printf("[Emit] Failed to invalidate analytics cache: %v", err)
		}
	}
}
