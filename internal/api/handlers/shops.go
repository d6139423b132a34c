package handlers

import (
	"net/http"
	"strconv"

	"storefront-gateway-service/internal/api/dto"
	"storefront-gateway-service/internal/domain"
	"storefront-gateway-service/internal/ports"
	"storefront-gateway-service/internal/services"
)

// ShopHandler exposes the upstream shop catalog, plus the nearby
// listing annotated with travel distance.
type ShopHandler struct {
	Catalog ports.Catalog
	Nearby  *services.NearbyShopsService
}

func (h *ShopHandler) List(w http.ResponseWriter, r *http.Request) {
	shops, err := h.Catalog.ListShops(r.Context())
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	res := dto.ListShopsResponse{Shops: make([]dto.ShopResponse, 0, len(shops))}
	for _, s := range shops {
		res.Shops = append(res.Shops, toShopResponse(s))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *ShopHandler) Get(w http.ResponseWriter, r *http.Request) {
	shop, err := h.Catalog.GetShop(r.Context(), r.PathValue("shopID"))
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toShopResponse(shop))
}

// ListNearby lists shops sorted by travel distance from the caller's
// location. Without lat/lon the listing falls back to catalog order.
func (h *ShopHandler) ListNearby(w http.ResponseWriter, r *http.Request) {
	from, ok := parseCoordinates(r.URL.Query().Get("lat"), r.URL.Query().Get("lon"))
	if !ok {
		writeError(w, r, http.StatusBadRequest, "lat and lon must be decimal degrees")
		return
	}

	shops, err := h.Nearby.List(r.Context(), from)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	res := dto.ListShopsResponse{Shops: make([]dto.ShopResponse, 0, len(shops))}
	for _, s := range shops {
		sr := toShopResponse(s.Shop)
		if s.HasDistance {
			sr.DistanceMeters = s.DistanceMeters
			sr.DurationSeconds = s.DurationSeconds
			sr.DistanceText = s.DistanceText
			sr.DurationText = s.DurationText
		}
		res.Shops = append(res.Shops, sr)
	}
	writeJSON(w, r, http.StatusOK, res)
}

// parseCoordinates reads an optional lat/lon query pair. Both absent
// yields the zero sentinel; a half-specified or malformed pair is the
// caller's error.
func parseCoordinates(latStr, lonStr string) (domain.Coordinates, bool) {
	if latStr == "" && lonStr == "" {
		return domain.Coordinates{}, true
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return domain.Coordinates{}, false
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return domain.Coordinates{}, false
	}
	return domain.Coordinates{Lon: lon, Lat: lat}, true
}

func toShopResponse(s domain.Shop) dto.ShopResponse {
	return dto.ShopResponse{
		ShopID:      s.ShopID,
		Name:        s.Name,
		Description: s.Description,
		Address:     s.Address,
		Lon:         s.Coordinates.Lon,
		Lat:         s.Coordinates.Lat,
		Rating:      s.Rating,
		IsOpen:      s.IsOpen,
		CoverURL:    s.CoverURL,
	}
}
