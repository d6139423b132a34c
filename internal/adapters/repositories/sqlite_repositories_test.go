package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"

	"storefront-gateway-service/internal/domain"
	"storefront-gateway-service/internal/ports"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func testAddress(id, userID string) *domain.Address {
	return &domain.Address{
		AddressID: id,
		UserID:    userID,
		Label:     "Home",
		Recipient: "Nguyen Van A",
		Phone:     "0900000000",
		Line:      "268 Ly Thuong Kiet",
		Ward:      "Ward 14",
		City:      "Ho Chi Minh City",
		Coordinates: domain.Coordinates{
			Lon: 106.6583,
			Lat: 10.7721,
		},
	}
}

func TestAddressCRUD(t *testing.T) {
	repo := NewSqliteAddressRepository(newTestDB(t))
	ctx := context.Background()

	a := testAddress("addr-1", "user-1")
	if err := repo.CreateAddress(ctx, a); err != nil {
		t.Fatalf("CreateAddress: %v", err)
	}

	// The first address becomes the default automatically.
	got, err := repo.GetAddress(ctx, "user-1", "addr-1")
	if err != nil {
		t.Fatalf("GetAddress: %v", err)
	}
	if !got.IsDefault {
		t.Error("expected first address to be the default")
	}
	if got.Line != a.Line || got.Coordinates != a.Coordinates {
		t.Errorf("GetAddress() = %+v, want %+v", got, a)
	}

	got.Label = "Office"
	got.Line = "19 Nguyen Huu Tho"
	if err := repo.UpdateAddress(ctx, got); err != nil {
		t.Fatalf("UpdateAddress: %v", err)
	}

	updated, err := repo.GetAddress(ctx, "user-1", "addr-1")
	if err != nil {
		t.Fatalf("GetAddress after update: %v", err)
	}
	if updated.Label != "Office" || updated.Line != "19 Nguyen Huu Tho" {
		t.Errorf("update did not persist: %+v", updated)
	}

	if err := repo.DeleteAddress(ctx, "user-1", "addr-1"); err != nil {
		t.Fatalf("DeleteAddress: %v", err)
	}
	if _, err := repo.GetAddress(ctx, "user-1", "addr-1"); !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("GetAddress after delete: got %v, want ErrNotFound", err)
	}
}

func TestAddressOwnerScoping(t *testing.T) {
	repo := NewSqliteAddressRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.CreateAddress(ctx, testAddress("addr-1", "user-1")); err != nil {
		t.Fatalf("CreateAddress: %v", err)
	}

	// Another user cannot read, update, or delete the row.
	if _, err := repo.GetAddress(ctx, "user-2", "addr-1"); !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("cross-user GetAddress: got %v, want ErrNotFound", err)
	}
	if err := repo.DeleteAddress(ctx, "user-2", "addr-1"); !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("cross-user DeleteAddress: got %v, want ErrNotFound", err)
	}

	stolen := testAddress("addr-1", "user-2")
	if err := repo.UpdateAddress(ctx, stolen); !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("cross-user UpdateAddress: got %v, want ErrNotFound", err)
	}
}

func TestSetDefaultMovesFlag(t *testing.T) {
	repo := NewSqliteAddressRepository(newTestDB(t))
	ctx := context.Background()

	for _, id := range []string{"addr-1", "addr-2", "addr-3"} {
		if err := repo.CreateAddress(ctx, testAddress(id, "user-1")); err != nil {
			t.Fatalf("CreateAddress %s: %v", id, err)
		}
	}

	if err := repo.SetDefault(ctx, "user-1", "addr-3"); err != nil {
		t.Fatalf("SetDefault: %v", err)
	}

	all, err := repo.ListAddresses(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListAddresses: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListAddresses returned %d rows, want 3", len(all))
	}

	// Default sorts first; exactly one row carries the flag.
	if all[0].AddressID != "addr-3" || !all[0].IsDefault {
		t.Errorf("expected addr-3 first and default, got %+v", all[0])
	}
	defaults := 0
	for _, a := range all {
		if a.IsDefault {
			defaults++
		}
	}
	if defaults != 1 {
		t.Errorf("expected exactly one default, got %d", defaults)
	}

	if err := repo.SetDefault(ctx, "user-1", "missing"); !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("SetDefault on missing address: got %v, want ErrNotFound", err)
	}
}

func TestCartUpsertAndClear(t *testing.T) {
	repo := NewSqliteCartRepository(newTestDB(t))
	ctx := context.Background()

	item := domain.CartItem{ProductID: "p-1", Name: "Iced Coffee", UnitPrice: 35000, Quantity: 2}
	if err := repo.UpsertItem(ctx, "user-1", "shop-1", item); err != nil {
		t.Fatalf("UpsertItem: %v", err)
	}
	if err := repo.UpsertItem(ctx, "user-1", "shop-1", domain.CartItem{
		ProductID: "p-2", Name: "Banh Mi", UnitPrice: 25000, Quantity: 1,
	}); err != nil {
		t.Fatalf("UpsertItem: %v", err)
	}

	cart, err := repo.GetCart(ctx, "user-1", "shop-1")
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("cart has %d items, want 2", len(cart.Items))
	}
	if got := cart.Subtotal(); got != 95000 {
		t.Errorf("Subtotal() = %d, want 95000", got)
	}

	// Upsert replaces the quantity rather than adding to it.
	item.Quantity = 5
	if err := repo.UpsertItem(ctx, "user-1", "shop-1", item); err != nil {
		t.Fatalf("UpsertItem replace: %v", err)
	}
	cart, err = repo.GetCart(ctx, "user-1", "shop-1")
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	for _, it := range cart.Items {
		if it.ProductID == "p-1" && it.Quantity != 5 {
			t.Errorf("quantity = %d after replace, want 5", it.Quantity)
		}
	}

	// Zero quantity removes the line.
	item.Quantity = 0
	if err := repo.UpsertItem(ctx, "user-1", "shop-1", item); err != nil {
		t.Fatalf("UpsertItem zero: %v", err)
	}
	cart, err = repo.GetCart(ctx, "user-1", "shop-1")
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].ProductID != "p-2" {
		t.Errorf("expected only p-2 to remain, got %+v", cart.Items)
	}

	if err := repo.ClearCart(ctx, "user-1", "shop-1"); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}
	cart, err = repo.GetCart(ctx, "user-1", "shop-1")
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("expected an empty cart after clear, got %+v", cart.Items)
	}
}

func TestCartsIsolatedPerShop(t *testing.T) {
	repo := NewSqliteCartRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.UpsertItem(ctx, "user-1", "shop-1", domain.CartItem{
		ProductID: "p-1", Name: "Iced Coffee", UnitPrice: 35000, Quantity: 1,
	}); err != nil {
		t.Fatalf("UpsertItem: %v", err)
	}

	other, err := repo.GetCart(ctx, "user-1", "shop-2")
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(other.Items) != 0 {
		t.Errorf("expected shop-2 cart to be empty, got %+v", other.Items)
	}

	if err := repo.UpsertItem(ctx, "user-1", "shop-1", domain.CartItem{Quantity: 1}); err == nil {
		t.Error("expected error for empty product id")
	}
	if err := repo.UpsertItem(ctx, "user-1", "shop-1", domain.CartItem{ProductID: "p-1", Quantity: -1}); err == nil {
		t.Error("expected error for negative quantity")
	}
}

func TestSeedFromJSON(t *testing.T) {
	db := newTestDB(t)

	if err := SeedFromJSON(db, "testdata/does-not-exist.json"); err != nil {
		t.Fatalf("missing seed file should not error, got: %v", err)
	}
}
