package handlers

import (
	"net/http"
	"strings"

	"storefront-gateway-service/internal/api/dto"
	"storefront-gateway-service/internal/geo"
	"storefront-gateway-service/internal/ports"
)

// LocationHandler exposes geocoding, distance resolution, and route
// geometry decoding to the mobile client.
type LocationHandler struct {
	Resolver ports.LocationResolver
}

// Geocode resolves free-text to coordinates. Resolution failure is not
// an error: the response carries the zero sentinel with resolved=false
// so clients can fall back to manual pin placement.
func (h *LocationHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		writeError(w, r, http.StatusBadRequest, "address is required")
		return
	}

	coords := h.Resolver.ResolveAddress(r.Context(), address)
	writeJSON(w, r, http.StatusOK, dto.GeocodeResponse{
		Address:  address,
		Lon:      coords.Lon,
		Lat:      coords.Lat,
		Resolved: !coords.IsZero(),
	})
}

// Distance resolves travel distance and duration between two free-text
// locations or two coordinate pairs.
func (h *LocationHandler) Distance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		res ports.DistanceResult
		err error
	)
	if q.Get("from_lat") != "" || q.Get("from_lon") != "" {
		from, okFrom := parseCoordinates(q.Get("from_lat"), q.Get("from_lon"))
		to, okTo := parseCoordinates(q.Get("to_lat"), q.Get("to_lon"))
		if !okFrom || !okTo || from.IsZero() || to.IsZero() {
			writeError(w, r, http.StatusBadRequest, "from_lat/from_lon and to_lat/to_lon must be decimal degrees")
			return
		}
		res, err = h.Resolver.DistanceBetween(r.Context(), from, to)
	} else {
		from := strings.TrimSpace(q.Get("from"))
		to := strings.TrimSpace(q.Get("to"))
		if from == "" || to == "" {
			writeError(w, r, http.StatusBadRequest, "from and to are required")
			return
		}
		res, err = h.Resolver.GetDistance(r.Context(), from, to)
	}
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DistanceResponse{
		DistanceMeters:  res.DistanceMeters,
		DurationSeconds: res.DurationSeconds,
		DistanceText:    geo.FormatDistance(res.DistanceMeters),
		DurationText:    geo.FormatDuration(res.DurationSeconds),
	})
}

// DecodeRoute expands an encoded polyline into coordinate points for
// map rendering. Truncated input decodes to the points read so far.
func (h *LocationHandler) DecodeRoute(w http.ResponseWriter, r *http.Request) {
	var req dto.DecodeRouteRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Polyline == "" {
		writeError(w, r, http.StatusBadRequest, "polyline is required")
		return
	}

	precision := req.Precision
	if precision == 0 {
		precision = 1e-5
	}

	points := geo.DecodePolylineWithPrecision(req.Polyline, precision)
	res := dto.DecodeRouteResponse{Points: make([]dto.RoutePointResponse, 0, len(points))}
	for _, p := range points {
		res.Points = append(res.Points, dto.RoutePointResponse{Lon: p.Lon, Lat: p.Lat})
	}
	writeJSON(w, r, http.StatusOK, res)
}
