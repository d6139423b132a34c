package ports

import (
	"context"
	"errors"
	"time"

	"storefront-gateway-service/internal/domain"
)

// ErrUnauthorized is returned by upstream adapters when the marketplace
// rejects the caller's credentials or token.
var ErrUnauthorized = errors.New("unauthorized")

// Session is the credential set issued by the upstream on login,
// registration, or refresh.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	UserID       string
	DisplayName  string
}

// Contract for authenticating against the upstream marketplace.
type Authenticator interface {
	Login(ctx context.Context, phone, password string) (Session, error)
	Register(ctx context.Context, phone, password, displayName string) (Session, error)
	Refresh(ctx context.Context, refreshToken string) (Session, error)
}

// Contract for browsing the upstream shop and product catalog.
type Catalog interface {
	ListShops(ctx context.Context) ([]domain.Shop, error)
	GetShop(ctx context.Context, shopID string) (domain.Shop, error)
	ListProducts(ctx context.Context, shopID, category string) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID string) (domain.Product, error)
}

// Contract for placing and tracking orders upstream.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, draft domain.OrderDraft) (domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (domain.Order, error)
	CancelOrder(ctx context.Context, orderID string) error
}

// Contract for validating coupon codes upstream.
type CouponValidator interface {
	ValidateCoupon(ctx context.Context, code, shopID string) (domain.Coupon, error)
}
