package domain

import (
	"errors"
	"testing"
	"time"
)

func TestCouponDiscount(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		coupon   Coupon
		subtotal int64
		want     int64
		wantErr  error
	}{
		{
			name:     "percent",
			coupon:   Coupon{Code: "TEN", Type: CouponPercent, Value: 10},
			subtotal: 100000,
			want:     10000,
		},
		{
			name:     "percent capped",
			coupon:   Coupon{Code: "BIG", Type: CouponPercent, Value: 50, MaxDiscount: 20000},
			subtotal: 100000,
			want:     20000,
		},
		{
			name:     "fixed amount",
			coupon:   Coupon{Code: "FLAT", Type: CouponAmount, Value: 15000},
			subtotal: 100000,
			want:     15000,
		},
		{
			name:     "amount never exceeds subtotal",
			coupon:   Coupon{Code: "FLAT", Type: CouponAmount, Value: 15000},
			subtotal: 8000,
			want:     8000,
		},
		{
			name:     "below minimum subtotal",
			coupon:   Coupon{Code: "MIN", Type: CouponPercent, Value: 10, MinSubtotal: 50000},
			subtotal: 40000,
			wantErr:  ErrCouponMinSubtotal,
		},
		{
			name:     "expired",
			coupon:   Coupon{Code: "OLD", Type: CouponPercent, Value: 10, ExpiresAt: now.Add(-time.Hour)},
			subtotal: 100000,
			wantErr:  ErrCouponExpired,
		},
		{
			name:     "not yet expired",
			coupon:   Coupon{Code: "OK", Type: CouponPercent, Value: 10, ExpiresAt: now.Add(time.Hour)},
			subtotal: 100000,
			want:     10000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.coupon.Discount(tt.subtotal, now)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Discount() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Discount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOrderStatusDisplay(t *testing.T) {
	if got := OrderDelivering.Display(); got != "Out for delivery" {
		t.Errorf("Display() = %q", got)
	}

	// Unknown upstream statuses pass through unchanged.
	if got := OrderStatus("refunded").Display(); got != "refunded" {
		t.Errorf("Display() = %q", got)
	}
}

func TestOrderStatusCancellable(t *testing.T) {
	cancellable := []OrderStatus{OrderPending, OrderConfirmed}
	for _, s := range cancellable {
		if !s.Cancellable() {
			t.Errorf("%s should be cancellable", s)
		}
	}

	final := []OrderStatus{OrderPreparing, OrderDelivering, OrderDelivered, OrderCancelled}
	for _, s := range final {
		if s.Cancellable() {
			t.Errorf("%s should not be cancellable", s)
		}
	}
}
