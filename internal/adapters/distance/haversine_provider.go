package distance

import (
	"context"
	"errors"
	"math"

	"storefront-gateway-service/internal/domain"
	"storefront-gateway-service/internal/geo"
	"storefront-gateway-service/internal/ports"
)

// averageRoadSpeed is the assumed travel speed for duration estimates
// when only the great-circle distance is known: 30 km/h, a dense-city
// driving average.
const averageRoadSpeed = 30.0 * 1000 / 3600 // m/s

// HaversineProvider is the last tier of the distance chain: a local
// great-circle computation. It needs no network and fails only on
// unresolved coordinates, so the chain always terminates.
type HaversineProvider struct{}

func NewHaversineProvider() *HaversineProvider { return &HaversineProvider{} }

func (h *HaversineProvider) DistanceBetween(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (ports.DistanceResult, error) {
	if origin.IsZero() || destination.IsZero() {
		return ports.DistanceResult{}, errors.New("haversine: origin and destination must be resolved")
	}

	meters := geo.Distance(origin, destination)
	return ports.DistanceResult{
		DistanceMeters:  int(math.Round(meters)),
		DurationSeconds: int(math.Round(meters / averageRoadSpeed)),
	}, nil
}
