package handlers

import (
	"net/http"

	"storefront-gateway-service/internal/api/dto"
	"storefront-gateway-service/internal/ports"
)

// CouponHandler passes coupon validation through to the upstream.
type CouponHandler struct {
	Coupons ports.CouponValidator
}

func (h *CouponHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req dto.ValidateCouponRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Code == "" {
		writeError(w, r, http.StatusBadRequest, "code is required")
		return
	}

	coupon, err := h.Coupons.ValidateCoupon(r.Context(), req.Code, req.ShopID)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CouponResponse{
		Code:        coupon.Code,
		Type:        string(coupon.Type),
		Value:       coupon.Value,
		MaxDiscount: coupon.MaxDiscount,
		MinSubtotal: coupon.MinSubtotal,
		ExpiresAt:   coupon.ExpiresAt,
	})
}
