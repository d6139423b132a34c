package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront-gateway-service/internal/domain"
)

// SQLite-backed implementation of the CartRepository port. Carts are
// keyed by (user, shop); a row per product line.
type SqliteCartRepository struct{ DB *sql.DB }

func NewSqliteCartRepository(db *sql.DB) *SqliteCartRepository {
	return &SqliteCartRepository{DB: db}
}

// Return the cart for a user and shop. An empty cart is returned when
// no lines exist; callers need not branch on absence.
func (s *SqliteCartRepository) GetCart(ctx context.Context, userID, shopID string) (*domain.Cart, error) {
	if s.DB == nil {
		return nil, errors.New("cart repository: DB is nil")
	}

	query := `
	SELECT
		product_id,
		name,
		unit_price,
		quantity
	FROM cart_items
	WHERE user_id = ? AND shop_id = ?
	ORDER BY product_id;
	`
	rows, err := s.DB.QueryContext(ctx, query, userID, shopID)
	if err != nil {
		return nil, fmt.Errorf("get cart: query cart_items table: %w", err)
	}
	defer rows.Close()

	cart := &domain.Cart{UserID: userID, ShopID: shopID}
	for rows.Next() {
		var it domain.CartItem
		if err := rows.Scan(&it.ProductID, &it.Name, &it.UnitPrice, &it.Quantity); err != nil {
			return nil, fmt.Errorf("get cart: scan row: %w", err)
		}
		cart.Items = append(cart.Items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get cart: row iteration: %w", err)
	}

	return cart, nil
}

// UpsertItem sets the quantity for a product line, inserting it when
// absent. A quantity of zero deletes the line.
func (s *SqliteCartRepository) UpsertItem(ctx context.Context, userID, shopID string, item domain.CartItem) error {
	if s.DB == nil {
		return errors.New("cart repository: DB is nil")
	}
	if strings.TrimSpace(item.ProductID) == "" {
		return errors.New("upsert cart item: product id must not be empty")
	}
	if item.Quantity < 0 {
		return fmt.Errorf("upsert cart item: quantity must not be negative (got %d)", item.Quantity)
	}

	if item.Quantity == 0 {
		return s.RemoveItem(ctx, userID, shopID, item.ProductID)
	}

	query := `
	INSERT OR REPLACE INTO cart_items (
		user_id,
		shop_id,
		product_id,
		name,
		unit_price,
		quantity
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, query,
		userID, shopID, item.ProductID, item.Name, item.UnitPrice, item.Quantity,
	); err != nil {
		return fmt.Errorf("upsert cart item product_id=%q: %w", item.ProductID, err)
	}

	return nil
}

// RemoveItem deletes a product line. Removing an absent line is a
// no-op, matching in-memory cart semantics.
func (s *SqliteCartRepository) RemoveItem(ctx context.Context, userID, shopID, productID string) error {
	if s.DB == nil {
		return errors.New("cart repository: DB is nil")
	}

	if _, err := s.DB.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = ? AND shop_id = ? AND product_id = ?`,
		userID, shopID, productID,
	); err != nil {
		return fmt.Errorf("remove cart item product_id=%q: %w", productID, err)
	}

	return nil
}

// ClearCart removes every line of a user's cart for a shop.
func (s *SqliteCartRepository) ClearCart(ctx context.Context, userID, shopID string) error {
	if s.DB == nil {
		return errors.New("cart repository: DB is nil")
	}

	if _, err := s.DB.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = ? AND shop_id = ?`,
		userID, shopID,
	); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	return nil
}
