package handlers

import (
	"errors"
	"net/http"

	"storefront-gateway-service/internal/api/dto"
	"storefront-gateway-service/internal/domain"
	"storefront-gateway-service/internal/ports"
	"storefront-gateway-service/internal/services"
)

// OrderHandler drives checkout and order tracking. Quotes and order
// placement go through the checkout service; reads pass through to
// the upstream.
type OrderHandler struct {
	Checkout  *services.CheckoutService
	Orders    ports.OrderPlacer
	Addresses ports.AddressRepository
}

func (h *OrderHandler) checkoutInput(w http.ResponseWriter, r *http.Request) (services.CheckoutInput, bool) {
	userID, ok := requireUser(w, r)
	if !ok {
		return services.CheckoutInput{}, false
	}

	var req dto.CheckoutRequest
	if !readJSON(w, r, &req) {
		return services.CheckoutInput{}, false
	}
	if req.ShopID == "" || req.AddressID == "" {
		writeError(w, r, http.StatusBadRequest, "shop_id and address_id are required")
		return services.CheckoutInput{}, false
	}

	addr, err := h.Addresses.GetAddress(r.Context(), userID, req.AddressID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			writeError(w, r, http.StatusBadRequest, "unknown address_id")
			return services.CheckoutInput{}, false
		}
		writeUpstreamError(w, r, err)
		return services.CheckoutInput{}, false
	}

	return services.CheckoutInput{
		UserID:     userID,
		ShopID:     req.ShopID,
		CouponCode: req.CouponCode,
		Address:    *addr,
		Note:       req.Note,
	}, true
}

// Quote prices the caller's cart without placing an order.
func (h *OrderHandler) Quote(w http.ResponseWriter, r *http.Request) {
	in, ok := h.checkoutInput(w, r)
	if !ok {
		return
	}

	q, err := h.Checkout.Quote(r.Context(), in)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			writeError(w, r, http.StatusUnprocessableEntity, "cart is empty")
			return
		}
		writeUpstreamError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toQuoteResponse(q))
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := h.checkoutInput(w, r)
	if !ok {
		return
	}

	order, err := h.Checkout.PlaceOrder(r.Context(), in)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			writeError(w, r, http.StatusUnprocessableEntity, "cart is empty")
			return
		}
		writeUpstreamError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toOrderResponse(order))
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	orders, err := h.Orders.ListOrders(r.Context())
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	res := dto.ListOrdersResponse{Orders: make([]dto.OrderResponse, 0, len(orders))}
	for _, o := range orders {
		res.Orders = append(res.Orders, toOrderResponse(o))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	order, err := h.Orders.GetOrder(r.Context(), r.PathValue("orderID"))
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toOrderResponse(order))
}

// Cancel forwards a cancellation upstream. The caller sees the fresh
// order state; whether cancellation is still possible is checked
// locally first to spare the round trip.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	orderID := r.PathValue("orderID")

	order, err := h.Orders.GetOrder(r.Context(), orderID)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	if !order.Status.Cancellable() {
		writeError(w, r, http.StatusConflict, "order can no longer be cancelled")
		return
	}

	if err := h.Orders.CancelOrder(r.Context(), orderID); err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	order.Status = domain.OrderCancelled
	writeJSON(w, r, http.StatusOK, toOrderResponse(order))
}

func toQuoteResponse(q services.Quote) dto.QuoteResponse {
	res := dto.QuoteResponse{
		Subtotal:     q.Subtotal,
		Discount:     q.Discount,
		DeliveryFee:  q.DeliveryFee,
		Total:        q.Total,
		DistanceText: q.DistanceText,
		DurationText: q.DurationText,
		Items:        make([]dto.CartItemResponse, 0, len(q.Items)),
	}
	for _, it := range q.Items {
		res.Items = append(res.Items, toCartItemResponse(it))
	}
	return res
}
