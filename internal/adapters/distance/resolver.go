package distance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"storefront-gateway-service/internal/domain"
	"storefront-gateway-service/internal/platform/obs"
	"storefront-gateway-service/internal/ports"
)

// DefaultDistanceTTL bounds how long a remote distance result is
// trusted; traffic conditions make older estimates stale.
const DefaultDistanceTTL = 15 * time.Minute

// hotCacheSize bounds the in-memory layer in front of the persistent
// cache.
const hotCacheSize = 2048

// Resolver coordinates the three-tier distance fallback chain and
// address geocoding.
//
// Tier order is fixed: matrix vendor, then the backend distance proxy,
// then a local haversine estimate. A tier is consulted only after the
// previous one failed. Successful remote results (tiers 1-2) are
// written to the persistent cache with a 15-minute TTL keyed by the
// serialized origin|destination pair; local estimates are not cached.
//
// The resolver is safe for concurrent use.
type Resolver struct {
	matrix   ports.PointDistanceProvider // tier 1, optional
	proxy    ports.PointDistanceProvider // tier 2, optional
	local    ports.PointDistanceProvider // tier 3, required
	geocoder ports.Geocoder
	cache    ports.DistanceCache // optional
	hot      *expirable.LRU[string, ports.DistanceResult]
	ttl      time.Duration
}

func NewResolver(
	matrix ports.PointDistanceProvider,
	proxy ports.PointDistanceProvider,
	geocoder ports.Geocoder,
	cache ports.DistanceCache,
) (*Resolver, error) {
	if geocoder == nil {
		return nil, errors.New("resolver: geocoder is required")
	}

	ttl := DefaultDistanceTTL
	return &Resolver{
		matrix:   matrix,
		proxy:    proxy,
		local:    NewHaversineProvider(),
		geocoder: geocoder,
		cache:    cache,
		hot:      expirable.NewLRU[string, ports.DistanceResult](hotCacheSize, nil, ttl),
		ttl:      ttl,
	}, nil
}

// pointKey serializes a coordinate for cache keying. Six decimals is
// about 0.1 m of precision, well inside geocoding accuracy.
func pointKey(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(c.Lon, 'f', 6, 64)
}

// ResolveAddress geocodes free text. Every failure path collapses to
// the zero-coordinate sentinel so screen-level callers can render
// "location unavailable" without branching on error kinds.
func (r *Resolver) ResolveAddress(ctx context.Context, address string) domain.Coordinates {
	coords, err := r.geocoder.Geocode(ctx, address)
	if err != nil {
		log.Printf("resolve address %q failed: %v", normalizeAddress(address), err)
		return domain.Coordinates{}
	}
	return coords
}

// GetDistance resolves travel metrics between two free-text locations.
// Implements ports.DistanceProvider.
func (r *Resolver) GetDistance(
	ctx context.Context,
	origin string,
	destination string,
) (ports.DistanceResult, error) {
	originCoords, err := r.geocoder.Geocode(ctx, origin)
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("get distance: resolve origin: %w", err)
	}

	destinationCoords, err := r.geocoder.Geocode(ctx, destination)
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("get distance: resolve destination: %w", err)
	}

	return r.DistanceBetween(ctx, originCoords, destinationCoords)
}

// DistanceBetween resolves travel metrics between two points through
// the cache and the fallback chain.
func (r *Resolver) DistanceBetween(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ ports.DistanceResult, err error) {
	defer obs.Time(ctx, "resolver.DistanceBetween")(&err)

	if origin.IsZero() || destination.IsZero() {
		return ports.DistanceResult{}, errors.New("distance: origin and destination must be resolved")
	}

	key := ports.PairKey(pointKey(origin), pointKey(destination))

	if result, ok := r.hot.Get(key); ok {
		return result, nil
	}

	if r.cache != nil {
		result, found, err := r.cache.Get(ctx, key)
		if err != nil {
			log.Printf("distance cache read failed: %v", err)
		} else if found {
			r.hot.Add(key, result)
			return result, nil
		}
	}

	result, remote, err := r.resolveChain(ctx, origin, destination)
	if err != nil {
		return ports.DistanceResult{}, err
	}

	// Only remote results are worth persisting; the local estimate is
	// cheaper to recompute than to read back.
	if remote {
		r.hot.Add(key, result)
		if r.cache != nil {
			if err := r.cache.Put(ctx, key, result, r.ttl); err != nil {
				log.Printf("distance cache write failed: %v", err)
			}
		}
	}

	return result, nil
}

// resolveChain walks the tiers in order. remote reports whether the
// result came from tier 1 or 2.
func (r *Resolver) resolveChain(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (result ports.DistanceResult, remote bool, err error) {
	if r.matrix != nil {
		result, err = r.matrix.DistanceBetween(ctx, origin, destination)
		if err == nil {
			return result, true, nil
		}
		if ctx.Err() != nil {
			return ports.DistanceResult{}, false, ctx.Err()
		}
		log.Printf("distance matrix tier failed: %v", err)
	}

	if r.proxy != nil {
		result, err = r.proxy.DistanceBetween(ctx, origin, destination)
		if err == nil {
			return result, true, nil
		}
		if ctx.Err() != nil {
			return ports.DistanceResult{}, false, ctx.Err()
		}
		log.Printf("distance proxy tier failed: %v", err)
	}

	result, err = r.local.DistanceBetween(ctx, origin, destination)
	if err != nil {
		return ports.DistanceResult{}, false, fmt.Errorf("distance: all tiers failed: %w", err)
	}
	return result, false, nil
}

// DistanceBetweenMany resolves metrics from one origin to many
// destinations. Cached pairs are served locally; the remaining misses
// go to the matrix tier as a single batched call when it supports one,
// otherwise each miss walks the chain individually.
func (r *Resolver) DistanceBetweenMany(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) (_ []ports.DistanceResult, err error) {
	defer obs.Time(ctx, "resolver.DistanceBetweenMany")(&err)

	if origin.IsZero() {
		return nil, errors.New("distance: origin must be resolved")
	}
	if len(destinations) == 0 {
		return []ports.DistanceResult{}, nil
	}

	out := make([]ports.DistanceResult, len(destinations))
	missIdx := make([]int, 0, len(destinations))

	originKey := pointKey(origin)
	for i, d := range destinations {
		if d.IsZero() {
			return nil, fmt.Errorf("distance: destination %d must be resolved", i)
		}

		key := ports.PairKey(originKey, pointKey(d))
		if result, ok := r.hot.Get(key); ok {
			out[i] = result
			continue
		}
		if r.cache != nil {
			result, found, err := r.cache.Get(ctx, key)
			if err != nil {
				log.Printf("distance cache read failed: %v", err)
			} else if found {
				r.hot.Add(key, result)
				out[i] = result
				continue
			}
		}
		missIdx = append(missIdx, i)
	}

	if len(missIdx) == 0 {
		return out, nil
	}

	if batcher, ok := r.matrix.(ports.PointMatrixProvider); ok && r.matrix != nil {
		missDests := make([]domain.Coordinates, len(missIdx))
		for j, i := range missIdx {
			missDests[j] = destinations[i]
		}

		results, err := batcher.DistanceBetweenMany(ctx, origin, missDests)
		if err == nil {
			for j, i := range missIdx {
				out[i] = results[j]
				r.storeRemote(ctx, ports.PairKey(originKey, pointKey(destinations[i])), results[j])
			}
			return out, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("batched matrix tier failed, falling back per pair: %v", err)
	}

	for _, i := range missIdx {
		result, err := r.DistanceBetween(ctx, origin, destinations[i])
		if err != nil {
			return nil, err
		}
		out[i] = result
	}

	return out, nil
}

func (r *Resolver) storeRemote(ctx context.Context, key string, result ports.DistanceResult) {
	r.hot.Add(key, result)
	if r.cache != nil {
		if err := r.cache.Put(ctx, key, result, r.ttl); err != nil {
			log.Printf("distance cache write failed: %v", err)
		}
	}
}
