package geo

import (
	"math"

	"storefront-gateway-service/internal/domain"
)

// DecodePolyline decodes an encoded polyline string into coordinates.
// This implements Google's Polyline Algorithm Format at the standard
// 1e-5 precision used by most routing APIs.
// See https://developers.google.com/maps/documentation/utilities/polylinealgorithm
func DecodePolyline(encoded string) []domain.Coordinates {
	return DecodePolylineWithPrecision(encoded, 1e-5)
}

// DecodePolylineWithPrecision decodes a polyline with a custom precision
// factor (some providers encode at 1e-6). Truncated input is tolerated:
// points decoded before the truncation are returned.
func DecodePolylineWithPrecision(encoded string, precision float64) []domain.Coordinates {
	points := make([]domain.Coordinates, 0, len(encoded)/4+1)

	index := 0
	lat := 0
	lng := 0

	for index < len(encoded) {
		dLat, next, ok := decodeSigned(encoded, index)
		if !ok {
			return points
		}
		lat += dLat
		index = next

		dLng, next, ok := decodeSigned(encoded, index)
		if !ok {
			return points
		}
		lng += dLng
		index = next

		points = append(points, domain.Coordinates{
			Lat: float64(lat) * precision,
			Lon: float64(lng) * precision,
		})
	}

	return points
}

// decodeSigned reads one zigzag-encoded varint starting at index.
// ok is false when the chunk sequence runs off the end of the string.
func decodeSigned(encoded string, index int) (value, next int, ok bool) {
	result := 0
	shift := 0

	for {
		if index >= len(encoded) {
			return 0, index, false
		}
		b := int(encoded[index]) - 63
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}

	// Undo the sign-bit inversion.
	return (result >> 1) ^ (-(result & 1)), index, true
}

// EncodePolyline encodes coordinates into a polyline string at the
// standard 1e-5 precision.
func EncodePolyline(points []domain.Coordinates) string {
	if len(points) == 0 {
		return ""
	}

	result := make([]byte, 0, len(points)*6)

	prevLat := 0
	prevLng := 0
	for _, p := range points {
		lat := int(math.Round(p.Lat * 1e5))
		lng := int(math.Round(p.Lon * 1e5))

		result = append(result, encodeSigned(lat-prevLat)...)
		result = append(result, encodeSigned(lng-prevLng)...)

		prevLat = lat
		prevLng = lng
	}

	return string(result)
}

func encodeSigned(value int) []byte {
	// Zigzag encoding.
	s := value << 1
	if value < 0 {
		s = ^s
	}

	var buf []byte
	for s >= 0x20 {
		buf = append(buf, byte((0x20|(s&0x1f))+63))
		s >>= 5
	}
	buf = append(buf, byte(s+63))
	return buf
}
