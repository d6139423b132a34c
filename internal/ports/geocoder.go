package ports

import (
	"context"

	"storefront-gateway-service/internal/domain"
)

// Contract for resolving free-text addresses to coordinates.
type Geocoder interface {
	// Resolve an address to coordinates. Implementations return an error
	// when resolution fails; the location resolver converts total failure
	// into the zero-coordinate sentinel for callers that prefer it.
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}
