package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"storefront-gateway-service/internal/domain"
	"storefront-gateway-service/internal/geo"
	"storefront-gateway-service/internal/platform/obs"
	"storefront-gateway-service/internal/ports"
)

// Delivery fee tiers in minor currency units. The base fee covers the
// first three kilometers; every started kilometer beyond adds a per-km
// charge. When no route can be resolved the flat fallback applies.
const (
	baseDeliveryFee     = 15000
	baseFeeDistanceM    = 3000
	perKmFee            = 5000
	fallbackDeliveryFee = 25000
)

var ErrEmptyCart = errors.New("cart is empty")

// cartSyncer mirrors the upstream cart sync call. Sync is best effort;
// the gateway store stays the source of truth.
type cartSyncer interface {
	SyncCart(ctx context.Context, cart *domain.Cart) error
}

// CheckoutService turns a stored cart into a placed order: subtotal,
// coupon discount, a distance-based delivery fee, and the upstream
// order call.
type CheckoutService struct {
	Carts    ports.CartRepository
	Catalog  ports.Catalog
	Orders   ports.OrderPlacer
	Coupons  ports.CouponValidator
	Resolver ports.LocationResolver
	Syncer   cartSyncer

	now func() time.Time
}

func NewCheckoutService(
	carts ports.CartRepository,
	catalog ports.Catalog,
	orders ports.OrderPlacer,
	coupons ports.CouponValidator,
	resolver ports.LocationResolver,
	syncer cartSyncer,
) *CheckoutService {
	return &CheckoutService{
		Carts:    carts,
		Catalog:  catalog,
		Orders:   orders,
		Coupons:  coupons,
		Resolver: resolver,
		Syncer:   syncer,
		now:      time.Now,
	}
}

// CheckoutInput identifies the cart being checked out and where to
// deliver it.
type CheckoutInput struct {
	UserID     string
	ShopID     string
	CouponCode string
	Address    domain.Address
	Note       string
}

// Quote is the priced summary shown before the customer confirms.
type Quote struct {
	Subtotal     int64
	Discount     int64
	DeliveryFee  int64
	Total        int64
	DistanceText string
	DurationText string
	Items        []domain.CartItem
}

// Quote prices a cart without placing an order.
func (s *CheckoutService) Quote(ctx context.Context, in CheckoutInput) (q Quote, err error) {
	defer obs.Time(ctx, "checkout.Quote")(&err)

	cart, err := s.Carts.GetCart(ctx, in.UserID, in.ShopID)
	if err != nil {
		return Quote{}, fmt.Errorf("checkout quote: %w", err)
	}
	if len(cart.Items) == 0 {
		return Quote{}, ErrEmptyCart
	}

	q.Items = cart.Items
	q.Subtotal = cart.Subtotal()

	if in.CouponCode != "" {
		coupon, err := s.Coupons.ValidateCoupon(ctx, in.CouponCode, in.ShopID)
		if err != nil {
			return Quote{}, fmt.Errorf("checkout quote: validate coupon %q: %w", in.CouponCode, err)
		}
		q.Discount, err = coupon.Discount(q.Subtotal, s.now())
		if err != nil {
			return Quote{}, fmt.Errorf("checkout quote: %w", err)
		}
	}

	fee, dist := s.deliveryFee(ctx, in.ShopID, in.Address)
	q.DeliveryFee = fee
	if dist != nil {
		q.DistanceText = geo.FormatDistance(dist.DistanceMeters)
		q.DurationText = geo.FormatDuration(dist.DurationSeconds)
	}

	q.Total = q.Subtotal - q.Discount + q.DeliveryFee
	return q, nil
}

// PlaceOrder prices the cart, places the order upstream, and clears the
// cart once the upstream accepts it.
func (s *CheckoutService) PlaceOrder(ctx context.Context, in CheckoutInput) (order domain.Order, err error) {
	defer obs.Time(ctx, "checkout.PlaceOrder")(&err)

	q, err := s.Quote(ctx, in)
	if err != nil {
		return domain.Order{}, err
	}

	items := make([]domain.OrderItem, 0, len(q.Items))
	for _, it := range q.Items {
		items = append(items, domain.OrderItem(it))
	}

	draft := domain.OrderDraft{
		ShopID:         in.ShopID,
		Items:          items,
		CouponCode:     in.CouponCode,
		DeliveryAddr:   in.Address,
		DeliveryFee:    q.DeliveryFee,
		Note:           in.Note,
		IdempotencyKey: uuid.NewString(),
	}

	order, err = s.Orders.CreateOrder(ctx, draft)
	if err != nil {
		return domain.Order{}, fmt.Errorf("place order: %w", err)
	}

	if err := s.Carts.ClearCart(ctx, in.UserID, in.ShopID); err != nil {
		log.Printf("op=checkout.PlaceOrder order_id=%s msg=\"clear cart failed\" err=%v", order.OrderID, err)
	}

	if s.Syncer != nil {
		empty := &domain.Cart{UserID: in.UserID, ShopID: in.ShopID}
		if err := s.Syncer.SyncCart(ctx, empty); err != nil {
			log.Printf("op=checkout.PlaceOrder order_id=%s msg=\"cart sync failed\" err=%v", order.OrderID, err)
		}
	}

	return order, nil
}

// deliveryFee resolves the shop-to-address route and prices it. A route
// that cannot be resolved falls back to the flat fee rather than
// blocking checkout.
func (s *CheckoutService) deliveryFee(ctx context.Context, shopID string, addr domain.Address) (int64, *ports.DistanceResult) {
	origin := s.shopLocation(ctx, shopID)
	dest := addr.Coordinates
	if dest.IsZero() {
		dest = s.Resolver.ResolveAddress(ctx, addressText(addr))
	}
	if origin.IsZero() || dest.IsZero() {
		return fallbackDeliveryFee, nil
	}

	res, err := s.Resolver.DistanceBetween(ctx, origin, dest)
	if err != nil {
		log.Printf("op=checkout.deliveryFee shop_id=%s msg=\"distance resolution failed\" err=%v", shopID, err)
		return fallbackDeliveryFee, nil
	}

	fee := int64(baseDeliveryFee)
	if res.DistanceMeters > baseFeeDistanceM {
		extraKm := (res.DistanceMeters - baseFeeDistanceM + 999) / 1000
		fee += int64(extraKm) * perKmFee
	}
	return fee, &res
}

func (s *CheckoutService) shopLocation(ctx context.Context, shopID string) domain.Coordinates {
	shop, err := s.Catalog.GetShop(ctx, shopID)
	if err != nil {
		log.Printf("op=checkout.shopLocation shop_id=%s msg=\"shop lookup failed\" err=%v", shopID, err)
		return domain.Coordinates{}
	}
	if !shop.Coordinates.IsZero() {
		return shop.Coordinates
	}
	return s.Resolver.ResolveAddress(ctx, shop.Address)
}

func addressText(a domain.Address) string {
	text := a.Line
	if a.Ward != "" {
		text += ", " + a.Ward
	}
	if a.City != "" {
		text += ", " + a.City
	}
	return text
}
