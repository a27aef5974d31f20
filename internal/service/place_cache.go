package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/set-night/tnguide/internal/domain"
)

// PlaceCache stores place details in Redis. A nil client disables it and
// every method becomes a no-op.
type PlaceCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPlaceCache(rdb *redis.Client, ttl time.Duration) *PlaceCache {
	return &PlaceCache{rdb: rdb, ttl: ttl}
}

func placeKey(id int64) string {
	return fmt.Sprintf("place:%d", id)
}

func (c *PlaceCache) Get(ctx context.Context, id int64) (*domain.Place, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, placeKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("place cache read failed", "place_id", id, "error", err)
		}
		return nil, false
	}
	var place domain.Place
	if err := json.Unmarshal(data, &place); err != nil {
		slog.Warn("place cache entry corrupt", "place_id", id, "error", err)
		return nil, false
	}
	return &place, true
}

func (c *PlaceCache) Set(ctx context.Context, place *domain.Place) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(place)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, placeKey(place.ID), data, c.ttl).Err(); err != nil {
		slog.Warn("place cache write failed", "place_id", place.ID, "error", err)
	}
}

func (c *PlaceCache) Delete(ctx context.Context, id int64) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, placeKey(id)).Err(); err != nil {
		slog.Warn("place cache delete failed", "place_id", id, "error", err)
	}
}
