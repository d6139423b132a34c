package upstream

import (
	"context"
	"fmt"

	"storefront-gateway-service/internal/domain"
)

// SyncCart pushes the local cart snapshot upstream so a customer sees
// the same cart across devices. The gateway store remains the source
// of truth; sync failures are for the caller to log, not fail on.
func (c *Client) SyncCart(ctx context.Context, cart *domain.Cart) error {
	items := make([]orderItemPayload, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, orderItemPayload(it))
	}

	body := map[string]any{
		"shop_id": cart.ShopID,
		"items":   items,
	}
	if err := c.postJSON(ctx, "/carts/sync", body, nil); err != nil {
		return fmt.Errorf("sync cart for shop %q: %w", cart.ShopID, err)
	}
	return nil
}
