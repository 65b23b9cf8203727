package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"event-hub/models"
	"event-hub/monitoring"

	"github.com/redis/go-redis/v9"
)

// RegistrantCache keeps the registrants-per-event listing in redis so the
// presentation layer does not re-join members and profiles on every fetch.
// It is never authoritative: entries expire on their own and are dropped
// whenever a registration for the event changes.
type RegistrantCache struct {
	Redis *redis.Client
	ttl   time.Duration
}

func NewRegistrantCache(redisClient *redis.Client, ttl time.Duration) *RegistrantCache {
	return &RegistrantCache{
		Redis: redisClient,
		ttl:   ttl,
	}
}

func registrantsKey(eventID string) string {
	return fmt.Sprintf("registrants:%s", eventID)
}

// Get returns the cached listing and whether it was present. Any redis or
// decode problem counts as a miss.
func (c *RegistrantCache) Get(ctx context.Context, eventID string) ([]models.Registrant, bool) {
	data, err := c.Redis.Get(ctx, registrantsKey(eventID)).Result()
	if errors.Is(err, redis.Nil) {
		monitoring.TrackCacheLookup("registrants", false)
		return nil, false
	}
	if err != nil {
		slog.Warn("registrants cache read failed", "event_id", eventID, "error", err)
		monitoring.TrackCacheLookup("registrants", false)
		return nil, false
	}

	var registrants []models.Registrant
	if err := json.Unmarshal([]byte(data), &registrants); err != nil {
		slog.Warn("registrants cache entry corrupt, dropping", "event_id", eventID, "error", err)
		c.Redis.Del(ctx, registrantsKey(eventID))
		monitoring.TrackCacheLookup("registrants", false)
		return nil, false
	}

	monitoring.TrackCacheLookup("registrants", true)
	return registrants, true
}

// Set stores the listing with the configured TTL. A failed write only loses
// the cache benefit, so it is logged and swallowed.
func (c *RegistrantCache) Set(ctx context.Context, eventID string, registrants []models.Registrant) {
	data, err := json.Marshal(registrants)
	if err != nil {
		slog.Warn("registrants cache encode failed", "event_id", eventID, "error", err)
		return
	}

	if err := c.Redis.Set(ctx, registrantsKey(eventID), data, c.ttl).Err(); err != nil {
		slog.Warn("registrants cache write failed", "event_id", eventID, "error", err)
	}
}

// Invalidate drops the event's cached listing.
func (c *RegistrantCache) Invalidate(ctx context.Context, eventID string) {
	if err := c.Redis.Del(ctx, registrantsKey(eventID)).Err(); err != nil {
		slog.Warn("registrants cache invalidation failed", "event_id", eventID, "error", err)
	}
}
