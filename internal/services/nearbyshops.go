package services

import (
	"context"
	"fmt"
	"log"
	"sort"

	"storefront-gateway-service/internal/domain"
	"storefront-gateway-service/internal/geo"
	"storefront-gateway-service/internal/platform/obs"
	"storefront-gateway-service/internal/ports"
)

// AnnotatedShop is a catalog shop enriched with travel distance and
// duration from the customer's location. Annotation is best effort:
// when a shop's route cannot be resolved the shop still lists, with
// HasDistance false.
type AnnotatedShop struct {
	domain.Shop
	DistanceMeters  int
	DurationSeconds int
	DistanceText    string
	DurationText    string
	HasDistance     bool
}

// NearbyShopsService lists catalog shops sorted by travel distance
// from a customer location.
type NearbyShopsService struct {
	Catalog  ports.Catalog
	Resolver ports.LocationResolver
}

func NewNearbyShopsService(catalog ports.Catalog, resolver ports.LocationResolver) *NearbyShopsService {
	return &NearbyShopsService{Catalog: catalog, Resolver: resolver}
}

// List returns the catalog annotated with distance from the given
// customer location and sorted nearest first. Shops whose distance
// could not be resolved sort last, in catalog order.
func (s *NearbyShopsService) List(ctx context.Context, from domain.Coordinates) (out []AnnotatedShop, err error) {
	defer obs.Time(ctx, "nearbyshops.List")(&err)

	shops, err := s.Catalog.ListShops(ctx)
	if err != nil {
		return nil, fmt.Errorf("nearby shops: %w", err)
	}

	out = make([]AnnotatedShop, len(shops))
	for i, shop := range shops {
		out[i] = AnnotatedShop{Shop: shop}
	}

	if from.IsZero() {
		return out, nil
	}

	// Shops without upstream coordinates get geocoded from their
	// address text before the batch lookup.
	points := make([]domain.Coordinates, len(shops))
	for i, shop := range shops {
		if shop.Coordinates.IsZero() && shop.Address != "" {
			points[i] = s.Resolver.ResolveAddress(ctx, shop.Address)
		} else {
			points[i] = shop.Coordinates
		}
	}

	resolvable := make([]int, 0, len(points))
	dests := make([]domain.Coordinates, 0, len(points))
	for i, p := range points {
		if !p.IsZero() {
			resolvable = append(resolvable, i)
			dests = append(dests, p)
		}
	}

	if len(dests) > 0 {
		results, err := s.Resolver.DistanceBetweenMany(ctx, from, dests)
		if err != nil {
			log.Printf("op=nearbyshops.List msg=\"distance annotation failed\" err=%v", err)
		} else {
			for j, idx := range resolvable {
				r := results[j]
				out[idx].DistanceMeters = r.DistanceMeters
				out[idx].DurationSeconds = r.DurationSeconds
				out[idx].DistanceText = geo.FormatDistance(r.DistanceMeters)
				out[idx].DurationText = geo.FormatDuration(r.DurationSeconds)
				out[idx].HasDistance = true
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.HasDistance != b.HasDistance {
			return a.HasDistance
		}
		if !a.HasDistance {
			return false
		}
		return a.DistanceMeters < b.DistanceMeters
	})

	return out, nil
}
