package ports

import (
	"context"

	"storefront-gateway-service/internal/domain"
)

// Distance and travel duration between two locations.
type DistanceResult struct {
	DistanceMeters  int
	DurationSeconds int
}

// Contract for retrieving travel distance and duration between
// free-text locations.
type DistanceProvider interface {
	// Return travel distance and estimated duration between two locations.
	GetDistance(ctx context.Context, origin string, destination string) (DistanceResult, error)
}

// Contract for retrieving travel distance and duration between two
// coordinate points. Each tier of the distance fallback chain
// implements this.
type PointDistanceProvider interface {
	DistanceBetween(ctx context.Context, origin, destination domain.Coordinates) (DistanceResult, error)
}

// Optional extension of PointDistanceProvider supporting one-to-many
// lookups in a single call. Results are index-aligned with destinations.
type PointMatrixProvider interface {
	PointDistanceProvider
	DistanceBetweenMany(ctx context.Context, origin domain.Coordinates, destinations []domain.Coordinates) ([]DistanceResult, error)
}

// LocationResolver is the full location-resolution surface consumed by
// services and handlers: address geocoding with a zero-coordinate
// sentinel on failure, and cached, fallback-chained distance lookups.
type LocationResolver interface {
	DistanceProvider
	PointMatrixProvider
	// ResolveAddress geocodes free text, returning the zero-coordinate
	// sentinel when every resolution path fails.
	ResolveAddress(ctx context.Context, address string) domain.Coordinates
}
