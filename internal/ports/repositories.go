package ports

import (
	"context"
	"errors"

	"storefront-gateway-service/internal/domain"
)

// ErrNotFound is returned by repositories when an entity does not exist.
var ErrNotFound = errors.New("not found")

// Port: a boundary for persisting saved delivery addresses.
type AddressRepository interface {
	ListAddresses(ctx context.Context, userID string) ([]*domain.Address, error)
	GetAddress(ctx context.Context, userID, addressID string) (*domain.Address, error)
	CreateAddress(ctx context.Context, addr *domain.Address) error
	UpdateAddress(ctx context.Context, addr *domain.Address) error
	DeleteAddress(ctx context.Context, userID, addressID string) error
	// SetDefault marks one address as the user's default, clearing the
	// flag on all others.
	SetDefault(ctx context.Context, userID, addressID string) error
}

// Port: a boundary for persisting per-user, per-shop carts.
type CartRepository interface {
	GetCart(ctx context.Context, userID, shopID string) (*domain.Cart, error)
	UpsertItem(ctx context.Context, userID, shopID string, item domain.CartItem) error
	RemoveItem(ctx context.Context, userID, shopID, productID string) error
	ClearCart(ctx context.Context, userID, shopID string) error
}
