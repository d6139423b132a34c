package upstream

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"storefront-gateway-service/internal/domain"
	"storefront-gateway-service/internal/platform/obs"
	"storefront-gateway-service/internal/ports"
)

// Geocode resolves a free-text address through the backend geocoding
// endpoint. The backend proxies its own map provider; the gateway only
// sees coordinates.
func (c *Client) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "upstream.Geocode")(&err)

	norm := normalize(address)
	if norm == "" {
		return domain.Coordinates{}, errors.New("geocode: address must be non-empty")
	}

	var resp struct {
		Lon float64 `json:"lon"`
		Lat float64 `json:"lat"`
	}
	if err := c.getJSON(ctx, "/location/geocode", map[string]string{"address": norm}, &resp); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", norm, err)
	}

	coords := domain.Coordinates{Lon: resp.Lon, Lat: resp.Lat}
	if coords.IsZero() {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: backend returned no result", norm)
	}
	return coords, nil
}

func formatPoint(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(c.Lon, 'f', 6, 64)
}

// DistanceBetween resolves travel distance and duration through the
// backend distance-proxy endpoint. This is the middle tier of the
// distance fallback chain, used when the direct matrix API is
// unavailable.
func (c *Client) DistanceBetween(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ ports.DistanceResult, err error) {
	defer obs.Time(ctx, "upstream.DistanceBetween")(&err)

	if origin.IsZero() || destination.IsZero() {
		return ports.DistanceResult{}, errors.New("get distance: origin and destination must be resolved")
	}

	query := map[string]string{
		"origin":      formatPoint(origin),
		"destination": formatPoint(destination),
	}

	var resp struct {
		DistanceMeters  int `json:"distance_meters"`
		DurationSeconds int `json:"duration_seconds"`
	}
	if err := c.getJSON(ctx, "/location/distance", query, &resp); err != nil {
		return ports.DistanceResult{}, fmt.Errorf(
			"get distance %s -> %s: %w", formatPoint(origin), formatPoint(destination), err)
	}

	if resp.DistanceMeters < 0 || resp.DurationSeconds < 0 {
		return ports.DistanceResult{}, fmt.Errorf(
			"get distance %s -> %s: backend returned invalid metrics",
			formatPoint(origin), formatPoint(destination))
	}

	return ports.DistanceResult{
		DistanceMeters:  resp.DistanceMeters,
		DurationSeconds: resp.DurationSeconds,
	}, nil
}
