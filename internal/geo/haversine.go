// Package geo provides the geographic primitives used across the
// gateway: great-circle distance, encoded polyline handling, and
// display formatting for distances and durations.
package geo

import (
	"math"

	"storefront-gateway-service/internal/domain"
)

// EarthRadius is the mean radius of Earth according to WGS-84, in meters.
const EarthRadius = 6371000.0

// HaversineDistance calculates the great-circle distance in meters
// between two points given their latitude and longitude in degrees.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return EarthRadius * c
}

// Distance is a convenience wrapper over HaversineDistance for
// coordinate pairs.
func Distance(a, b domain.Coordinates) float64 {
	return HaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
}
