package handlers

import (
	"net/http"

	"storefront-gateway-service/internal/api/dto"
	"storefront-gateway-service/internal/domain"
	"storefront-gateway-service/internal/ports"
)

// CartHandler manages the caller's gateway-local carts, one per shop.
type CartHandler struct {
	Carts ports.CartRepository
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	cart, err := h.Carts.GetCart(r.Context(), userID, r.PathValue("shopID"))
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toCartResponse(cart))
}

// UpsertItem sets a product line's quantity. Zero removes the line.
func (h *CartHandler) UpsertItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	shopID := r.PathValue("shopID")

	var req dto.CartItemRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		writeError(w, r, http.StatusBadRequest, "product_id is required")
		return
	}
	if req.Quantity < 0 {
		writeError(w, r, http.StatusBadRequest, "quantity must not be negative")
		return
	}

	item := domain.CartItem{
		ProductID: req.ProductID,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Quantity:  req.Quantity,
	}
	if err := h.Carts.UpsertItem(r.Context(), userID, shopID, item); err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	cart, err := h.Carts.GetCart(r.Context(), userID, shopID)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toCartResponse(cart))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	shopID := r.PathValue("shopID")

	if err := h.Carts.RemoveItem(r.Context(), userID, shopID, r.PathValue("productID")); err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	cart, err := h.Carts.GetCart(r.Context(), userID, shopID)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toCartResponse(cart))
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.Carts.ClearCart(r.Context(), userID, r.PathValue("shopID")); err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
