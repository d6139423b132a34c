package domain

import "testing"

func TestCartUpsertAndSubtotal(t *testing.T) {
	cart := &Cart{UserID: "u1", ShopID: "s1"}

	if err := cart.Upsert(CartItem{ProductID: "p1", Name: "Pho", UnitPrice: 45000, Quantity: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cart.Upsert(CartItem{ProductID: "p2", Name: "Tea", UnitPrice: 15000, Quantity: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := cart.Subtotal(), int64(2*45000+15000); got != want {
		t.Errorf("Subtotal() = %d, want %d", got, want)
	}

	// Upserting an existing product replaces the quantity, not adds to it.
	if err := cart.Upsert(CartItem{ProductID: "p1", Name: "Pho", UnitPrice: 45000, Quantity: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := cart.Subtotal(), int64(45000+15000); got != want {
		t.Errorf("Subtotal() after requantify = %d, want %d", got, want)
	}

	// Quantity zero removes the line.
	if err := cart.Upsert(CartItem{ProductID: "p2", Quantity: 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Errorf("expected 1 item after zero-quantity upsert, got %d", len(cart.Items))
	}
}

func TestCartUpsertRejectsInvalid(t *testing.T) {
	cart := &Cart{}

	if err := cart.Upsert(CartItem{ProductID: "", Quantity: 1}); err == nil {
		t.Error("expected error for empty product id")
	}
	if err := cart.Upsert(CartItem{ProductID: "p1", Quantity: -1}); err == nil {
		t.Error("expected error for negative quantity")
	}
}

func TestCartRemove(t *testing.T) {
	cart := &Cart{Items: []CartItem{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 2},
	}}

	cart.Remove("p1")
	if len(cart.Items) != 1 || cart.Items[0].ProductID != "p2" {
		t.Errorf("unexpected items after remove: %+v", cart.Items)
	}

	// Removing an absent product is a no-op.
	cart.Remove("p9")
	if len(cart.Items) != 1 {
		t.Errorf("expected 1 item, got %d", len(cart.Items))
	}
}
