package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"storefront-gateway-service/internal/ports"
)

func newRedisCache(t *testing.T) (*RedisDistanceCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisDistanceCache(client), mr
}

func TestRedisDistanceCacheRoundTrip(t *testing.T) {
	c, _ := newRedisCache(t)
	ctx := context.Background()

	key := "10.776900,106.700900|10.823100,106.629700"
	want := ports.DistanceResult{DistanceMeters: 9000, DurationSeconds: 1200}

	if err := c.Put(ctx, key, want, 15*time.Minute); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, found, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("expected a cache hit")
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestRedisDistanceCacheMiss(t *testing.T) {
	c, _ := newRedisCache(t)

	_, found, err := c.Get(context.Background(), "never|stored")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("expected a miss for an unknown key")
	}
}

func TestRedisDistanceCacheExpiry(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	key := "a|b"
	if err := c.Put(ctx, key, ports.DistanceResult{DistanceMeters: 1, DurationSeconds: 1}, 15*time.Minute); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Entries older than the TTL are treated as absent.
	mr.FastForward(16 * time.Minute)

	_, found, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("expected a miss after TTL expiry")
	}
}

func TestRedisDistanceCacheValidation(t *testing.T) {
	c, _ := newRedisCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, "  ", ports.DistanceResult{}, time.Minute); err == nil {
		t.Error("expected error for empty key")
	}
	if err := c.Put(ctx, "a|b", ports.DistanceResult{}, 0); err == nil {
		t.Error("expected error for non-positive ttl")
	}
	if _, _, err := c.Get(ctx, ""); err == nil {
		t.Error("expected error for empty key")
	}
}
