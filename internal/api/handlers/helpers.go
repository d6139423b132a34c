package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"storefront-gateway-service/internal/api/dto"
	"storefront-gateway-service/internal/domain"
	"storefront-gateway-service/internal/platform/authctx"
	"storefront-gateway-service/internal/ports"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	return true
}

// writeUpstreamError maps adapter errors onto gateway status codes so
// handlers stay one-liners at their error sites.
func writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ports.ErrUnauthorized):
		writeError(w, r, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrCouponExpired), errors.Is(err, domain.ErrCouponMinSubtotal):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusBadGateway, "upstream error")
	}
}

// requireUser returns the authenticated user id or writes a 401.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := authctx.UserID(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return "", false
	}
	return userID, true
}

func toCartResponse(cart *domain.Cart) dto.CartResponse {
	res := dto.CartResponse{
		ShopID:   cart.ShopID,
		Items:    make([]dto.CartItemResponse, 0, len(cart.Items)),
		Subtotal: cart.Subtotal(),
	}
	for _, it := range cart.Items {
		res.Items = append(res.Items, toCartItemResponse(it))
	}
	return res
}

func toCartItemResponse(it domain.CartItem) dto.CartItemResponse {
	return dto.CartItemResponse{
		ProductID: it.ProductID,
		Name:      it.Name,
		UnitPrice: it.UnitPrice,
		Quantity:  it.Quantity,
		LineTotal: it.UnitPrice * int64(it.Quantity),
	}
}

func toOrderResponse(o domain.Order) dto.OrderResponse {
	res := dto.OrderResponse{
		OrderID:       o.OrderID,
		ShopID:        o.ShopID,
		Status:        string(o.Status),
		StatusDisplay: o.Status.Display(),
		Cancellable:   o.Status.Cancellable(),
		Items:         make([]dto.OrderItemResponse, 0, len(o.Items)),
		Subtotal:      o.Subtotal,
		Discount:      o.Discount,
		DeliveryFee:   o.DeliveryFee,
		Total:         o.Total,
		CouponCode:    o.CouponCode,
		PlacedAt:      o.PlacedAt,
		DeliveredAt:   o.DeliveredAt,
	}
	for _, it := range o.Items {
		res.Items = append(res.Items, dto.OrderItemResponse(it))
	}
	return res
}

func toAddressResponse(a *domain.Address) dto.AddressResponse {
	return dto.AddressResponse{
		AddressID: a.AddressID,
		Label:     a.Label,
		Recipient: a.Recipient,
		Phone:     a.Phone,
		Line:      a.Line,
		Ward:      a.Ward,
		City:      a.City,
		Lon:       a.Coordinates.Lon,
		Lat:       a.Coordinates.Lat,
		IsDefault: a.IsDefault,
	}
}
