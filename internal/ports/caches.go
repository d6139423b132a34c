package ports

import (
	"context"
	"time"

	"storefront-gateway-service/internal/domain"
)

// DistanceCache stores distance results keyed by the serialized
// origin|destination pair. Entries past their TTL are treated as absent.
type DistanceCache interface {
	// Get returns the cached result for a pair key; found is false for
	// missing or expired entries.
	Get(ctx context.Context, key string) (result DistanceResult, found bool, err error)
	// Put stores a result for a pair key with the given TTL.
	Put(ctx context.Context, key string, result DistanceResult, ttl time.Duration) error
}

// GeocodeCache stores resolved coordinates keyed by normalized address.
type GeocodeCache interface {
	Get(ctx context.Context, address string) (coords domain.Coordinates, found bool, err error)
	Put(ctx context.Context, address string, coords domain.Coordinates, ttl time.Duration) error
}

// PairKey builds the cache key for an origin/destination pair.
// Callers are expected to pass normalized location strings.
func PairKey(origin, destination string) string {
	return origin + "|" + destination
}
