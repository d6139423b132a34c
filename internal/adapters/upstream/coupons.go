package upstream

import (
	"context"
	"fmt"
	"time"

	"storefront-gateway-service/internal/domain"
)

// ValidateCoupon checks a coupon code against the upstream for a shop
// and returns its terms.
func (c *Client) ValidateCoupon(ctx context.Context, code, shopID string) (domain.Coupon, error) {
	body := map[string]string{"code": code, "shop_id": shopID}

	var resp struct {
		Code        string    `json:"code"`
		Type        string    `json:"type"`
		Value       int64     `json:"value"`
		MaxDiscount int64     `json:"max_discount"`
		MinSubtotal int64     `json:"min_subtotal"`
		ExpiresAt   time.Time `json:"expires_at"`
	}
	if err := c.postJSON(ctx, "/coupons/validate", body, &resp); err != nil {
		return domain.Coupon{}, fmt.Errorf("validate coupon %q: %w", code, err)
	}

	return domain.Coupon{
		Code:        resp.Code,
		Type:        domain.CouponType(resp.Type),
		Value:       resp.Value,
		MaxDiscount: resp.MaxDiscount,
		MinSubtotal: resp.MinSubtotal,
		ExpiresAt:   resp.ExpiresAt,
	}, nil
}
