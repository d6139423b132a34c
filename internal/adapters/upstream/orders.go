package upstream

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"storefront-gateway-service/internal/domain"
)

type orderItemPayload struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

type orderPayload struct {
	OrderID     string             `json:"order_id"`
	ShopID      string             `json:"shop_id"`
	Status      string             `json:"status"`
	Items       []orderItemPayload `json:"items"`
	Subtotal    int64              `json:"subtotal"`
	Discount    int64              `json:"discount"`
	DeliveryFee int64              `json:"delivery_fee"`
	Total       int64              `json:"total"`
	CouponCode  string             `json:"coupon_code"`
	Address     struct {
		Recipient string  `json:"recipient"`
		Phone     string  `json:"phone"`
		Line      string  `json:"line"`
		Ward      string  `json:"ward"`
		City      string  `json:"city"`
		Lon       float64 `json:"lon"`
		Lat       float64 `json:"lat"`
	} `json:"address"`
	PlacedAt    time.Time  `json:"placed_at"`
	DeliveredAt *time.Time `json:"delivered_at"`
}

func (p orderPayload) toDomain() domain.Order {
	items := make([]domain.OrderItem, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, domain.OrderItem(it))
	}

	return domain.Order{
		OrderID:     p.OrderID,
		ShopID:      p.ShopID,
		Status:      domain.OrderStatus(p.Status),
		Items:       items,
		Subtotal:    p.Subtotal,
		Discount:    p.Discount,
		DeliveryFee: p.DeliveryFee,
		Total:       p.Total,
		CouponCode:  p.CouponCode,
		DeliveryAddr: domain.Address{
			Recipient:   p.Address.Recipient,
			Phone:       p.Address.Phone,
			Line:        p.Address.Line,
			Ward:        p.Address.Ward,
			City:        p.Address.City,
			Coordinates: domain.Coordinates{Lon: p.Address.Lon, Lat: p.Address.Lat},
		},
		PlacedAt:    p.PlacedAt,
		DeliveredAt: p.DeliveredAt,
	}
}

// CreateOrder places an order upstream. The idempotency key lets the
// upstream deduplicate retried submissions.
func (c *Client) CreateOrder(ctx context.Context, draft domain.OrderDraft) (domain.Order, error) {
	items := make([]orderItemPayload, 0, len(draft.Items))
	for _, it := range draft.Items {
		items = append(items, orderItemPayload(it))
	}

	body := map[string]any{
		"shop_id":         draft.ShopID,
		"items":           items,
		"coupon_code":     draft.CouponCode,
		"delivery_fee":    draft.DeliveryFee,
		"note":            draft.Note,
		"idempotency_key": draft.IdempotencyKey,
		"address": map[string]any{
			"recipient": draft.DeliveryAddr.Recipient,
			"phone":     draft.DeliveryAddr.Phone,
			"line":      draft.DeliveryAddr.Line,
			"ward":      draft.DeliveryAddr.Ward,
			"city":      draft.DeliveryAddr.City,
			"lon":       draft.DeliveryAddr.Coordinates.Lon,
			"lat":       draft.DeliveryAddr.Coordinates.Lat,
		},
	}

	var resp orderPayload
	if err := c.postJSON(ctx, "/orders", body, &resp); err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}
	return resp.toDomain(), nil
}

// ListOrders returns the caller's order history, newest first.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var resp struct {
		Orders []orderPayload `json:"orders"`
	}
	if err := c.getJSON(ctx, "/orders", nil, &resp); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(resp.Orders))
	for _, o := range resp.Orders {
		orders = append(orders, o.toDomain())
	}
	return orders, nil
}

// GetOrder returns a single order by id.
func (c *Client) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	var resp orderPayload
	if err := c.getJSON(ctx, "/orders/"+url.PathEscape(orderID), nil, &resp); err != nil {
		return domain.Order{}, fmt.Errorf("get order %q: %w", orderID, err)
	}
	return resp.toDomain(), nil
}

// CancelOrder asks the upstream to cancel an order. The upstream
// enforces which statuses are still cancellable.
func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	if err := c.postJSON(ctx, "/orders/"+url.PathEscape(orderID)+"/cancel", nil, nil); err != nil {
		return fmt.Errorf("cancel order %q: %w", orderID, err)
	}
	return nil
}
