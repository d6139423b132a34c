package distance

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"storefront-gateway-service/internal/domain"
	"storefront-gateway-service/internal/ports"
)

// DefaultGeocodeTTL is long because street addresses rarely move.
const DefaultGeocodeTTL = 24 * time.Hour

// CachedGeocoder decorates a Geocoder with a persistent cache.
// Cache failures degrade to live lookups and are logged, never fatal.
type CachedGeocoder struct {
	Inner ports.Geocoder
	Cache ports.GeocodeCache
	TTL   time.Duration
}

func NewCachedGeocoder(inner ports.Geocoder, cache ports.GeocodeCache) *CachedGeocoder {
	return &CachedGeocoder{Inner: inner, Cache: cache, TTL: DefaultGeocodeTTL}
}

// normalizeAddress collapses whitespace so equivalent address strings
// share a cache key.
func normalizeAddress(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (g *CachedGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	norm := normalizeAddress(address)
	if norm == "" {
		return domain.Coordinates{}, fmt.Errorf("geocode: address must be non-empty")
	}

	if g.Cache != nil {
		coords, found, err := g.Cache.Get(ctx, norm)
		if err != nil {
			log.Printf("geocode cache read failed: %v", err)
		} else if found {
			return coords, nil
		}
	}

	coords, err := g.Inner.Geocode(ctx, norm)
	if err != nil {
		return domain.Coordinates{}, err
	}

	if g.Cache != nil {
		if err := g.Cache.Put(ctx, norm, coords, g.TTL); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return coords, nil
}
