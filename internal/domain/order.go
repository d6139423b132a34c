package domain

import "time"

// OrderStatus is the upstream order lifecycle state.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderPreparing  OrderStatus = "preparing"
	OrderDelivering OrderStatus = "delivering"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Display returns the customer-facing label for a status.
// Unknown statuses fall through unchanged so new upstream states
// degrade gracefully instead of rendering blank.
func (s OrderStatus) Display() string {
	switch s {
	case OrderPending:
		return "Waiting for confirmation"
	case OrderConfirmed:
		return "Confirmed"
	case OrderPreparing:
		return "Being prepared"
	case OrderDelivering:
		return "Out for delivery"
	case OrderDelivered:
		return "Delivered"
	case OrderCancelled:
		return "Cancelled"
	}
	return string(s)
}

// Cancellable reports whether a customer may still cancel the order.
// Only orders the shop has not started preparing can be cancelled.
func (s OrderStatus) Cancellable() bool {
	return s == OrderPending || s == OrderConfirmed
}

// OrderItem is a product line within an order.
type OrderItem struct {
	ProductID string
	Name      string
	UnitPrice int64
	Quantity  int
}

// Order as returned by the upstream marketplace.
// Monetary amounts are integer minor currency units.
type Order struct {
	OrderID        string
	ShopID         string
	Status         OrderStatus
	Items          []OrderItem
	Subtotal       int64
	Discount       int64
	DeliveryFee    int64
	Total          int64
	CouponCode     string
	DeliveryAddr   Address
	PlacedAt       time.Time
	DeliveredAt    *time.Time
	IdempotencyKey string
}

// OrderDraft is the customer's request to place an order, before the
// upstream has assigned an identifier or a status.
type OrderDraft struct {
	ShopID         string
	Items          []OrderItem
	CouponCode     string
	DeliveryAddr   Address
	DeliveryFee    int64
	Note           string
	IdempotencyKey string
}
