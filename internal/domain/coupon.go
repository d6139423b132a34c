package domain

import (
	"errors"
	"fmt"
	"time"
)

// CouponType distinguishes percentage discounts from fixed-amount ones.
type CouponType string

const (
	CouponPercent CouponType = "percent"
	CouponAmount  CouponType = "amount"
)

var (
	ErrCouponExpired     = errors.New("coupon expired")
	ErrCouponMinSubtotal = errors.New("cart subtotal below coupon minimum")
)

// Coupon as validated by the upstream marketplace.
// Value is a percentage (0-100) for CouponPercent and a minor-unit
// amount for CouponAmount. MaxDiscount caps percentage discounts;
// zero means uncapped.
type Coupon struct {
	Code        string
	Type        CouponType
	Value       int64
	MaxDiscount int64
	MinSubtotal int64
	ExpiresAt   time.Time
}

// Discount returns the discount a coupon yields for a subtotal at the
// given time. The discount never exceeds the subtotal.
func (c Coupon) Discount(subtotal int64, now time.Time) (int64, error) {
	if !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt) {
		return 0, fmt.Errorf("coupon %q: %w", c.Code, ErrCouponExpired)
	}

	if subtotal < c.MinSubtotal {
		return 0, fmt.Errorf("coupon %q: %w (need %d, have %d)",
			c.Code, ErrCouponMinSubtotal, c.MinSubtotal, subtotal)
	}

	var discount int64
	switch c.Type {
	case CouponPercent:
		discount = subtotal * c.Value / 100
		if c.MaxDiscount > 0 && discount > c.MaxDiscount {
			discount = c.MaxDiscount
		}
	case CouponAmount:
		discount = c.Value
	default:
		return 0, fmt.Errorf("coupon %q: unknown type %q", c.Code, c.Type)
	}

	if discount > subtotal {
		discount = subtotal
	}
	return discount, nil
}
