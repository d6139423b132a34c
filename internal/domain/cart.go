package domain

import "fmt"

// CartItem is a product selection with a quantity.
type CartItem struct {
	ProductID string
	Name      string
	UnitPrice int64
	Quantity  int
}

// Cart holds a customer's pending selection for a single shop.
// A customer has at most one cart per shop; mixing shops in one
// order is not supported upstream.
type Cart struct {
	UserID string
	ShopID string
	Items  []CartItem
}

// Subtotal returns the sum of line totals in minor currency units.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.UnitPrice * int64(it.Quantity)
	}
	return total
}

// Upsert sets the quantity for a product, adding the line when absent.
// A quantity of zero removes the line.
func (c *Cart) Upsert(item CartItem) error {
	if item.ProductID == "" {
		return fmt.Errorf("cart upsert: product id must not be empty")
	}
	if item.Quantity < 0 {
		return fmt.Errorf("cart upsert: quantity must not be negative (got %d)", item.Quantity)
	}

	for i, it := range c.Items {
		if it.ProductID != item.ProductID {
			continue
		}

		if item.Quantity == 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
		c.Items[i] = item
		return nil
	}

	if item.Quantity == 0 {
		return nil
	}
	c.Items = append(c.Items, item)
	return nil
}

// Remove deletes a product line from the cart. Removing an absent
// product is a no-op.
func (c *Cart) Remove(productID string) {
	for i, it := range c.Items {
		if it.ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}
