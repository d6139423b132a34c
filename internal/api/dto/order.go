package dto

import "time"

type CheckoutRequest struct {
	ShopID     string `json:"shop_id"`
	CouponCode string `json:"coupon_code,omitempty"`
	AddressID  string `json:"address_id"`
	Note       string `json:"note,omitempty"`
}

type QuoteResponse struct {
	Subtotal     int64              `json:"subtotal"`
	Discount     int64              `json:"discount"`
	DeliveryFee  int64              `json:"delivery_fee"`
	Total        int64              `json:"total"`
	DistanceText string             `json:"distance_text,omitempty"`
	DurationText string             `json:"duration_text,omitempty"`
	Items        []CartItemResponse `json:"items"`
}

type OrderItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

type OrderResponse struct {
	OrderID       string              `json:"order_id"`
	ShopID        string              `json:"shop_id"`
	Status        string              `json:"status"`
	StatusDisplay string              `json:"status_display"`
	Cancellable   bool                `json:"cancellable"`
	Items         []OrderItemResponse `json:"items"`
	Subtotal      int64               `json:"subtotal"`
	Discount      int64               `json:"discount"`
	DeliveryFee   int64               `json:"delivery_fee"`
	Total         int64               `json:"total"`
	CouponCode    string              `json:"coupon_code,omitempty"`
	PlacedAt      time.Time           `json:"placed_at"`
	DeliveredAt   *time.Time          `json:"delivered_at,omitempty"`
}

type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

type ValidateCouponRequest struct {
	Code   string `json:"code"`
	ShopID string `json:"shop_id"`
}

type CouponResponse struct {
	Code        string    `json:"code"`
	Type        string    `json:"type"`
	Value       int64     `json:"value"`
	MaxDiscount int64     `json:"max_discount,omitempty"`
	MinSubtotal int64     `json:"min_subtotal,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
}
