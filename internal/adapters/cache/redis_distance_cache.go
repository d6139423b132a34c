package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront-gateway-service/internal/ports"
)

const redisDistancePrefix = "distance:"

// RedisDistanceCache stores distance results in Redis, with the TTL
// enforced by Redis key expiry. Used when the gateway runs as several
// replicas that should share one cache.
type RedisDistanceCache struct {
	Client *redis.Client
}

func NewRedisDistanceCache(client *redis.Client) *RedisDistanceCache {
	return &RedisDistanceCache{Client: client}
}

type redisDistanceEntry struct {
	DistanceMeters  int `json:"distance_meters"`
	DurationSeconds int `json:"duration_seconds"`
}

// Fetch the cached distance for a pair key. Expired keys are gone from
// Redis, so a miss covers both absent and stale entries.
func (r *RedisDistanceCache) Get(ctx context.Context, key string) (ports.DistanceResult, bool, error) {
	if r.Client == nil {
		return ports.DistanceResult{}, false, errors.New("distance cache: redis client is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return ports.DistanceResult{}, false, errors.New("get distance cache: key must not be empty")
	}

	raw, err := r.Client.Get(ctx, redisDistancePrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return ports.DistanceResult{}, false, nil
	}
	if err != nil {
		return ports.DistanceResult{}, false, fmt.Errorf("get distance cache: redis get: %w", err)
	}

	var entry redisDistanceEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return ports.DistanceResult{}, false, fmt.Errorf("get distance cache: decode entry: %w", err)
	}

	return ports.DistanceResult{
		DistanceMeters:  entry.DistanceMeters,
		DurationSeconds: entry.DurationSeconds,
	}, true, nil
}

// Store a distance result for a pair key with the given TTL.
func (r *RedisDistanceCache) Put(ctx context.Context, key string, result ports.DistanceResult, ttl time.Duration) error {
	if r.Client == nil {
		return errors.New("distance cache: redis client is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert distance cache: key must not be empty")
	}
	if ttl <= 0 {
		return fmt.Errorf("insert distance cache: ttl must be positive (got %v)", ttl)
	}

	raw, err := json.Marshal(redisDistanceEntry{
		DistanceMeters:  result.DistanceMeters,
		DurationSeconds: result.DurationSeconds,
	})
	if err != nil {
		return fmt.Errorf("insert distance cache: encode entry: %w", err)
	}

	if err := r.Client.Set(ctx, redisDistancePrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("insert distance cache key=%q: redis set: %w", key, err)
	}

	return nil
}
