package cache

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"storefront-gateway-service/internal/domain"
	"storefront-gateway-service/internal/ports"
)

func newCacheDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	stmts := []string{
		`CREATE TABLE distance_cache (
			pair_key TEXT PRIMARY KEY,
			distance_meters INTEGER NOT NULL,
			duration_seconds INTEGER NOT NULL,
			expires_at INTEGER NOT NULL
		);`,
		`CREATE TABLE geocode_cache (
			address TEXT PRIMARY KEY,
			lon REAL NOT NULL,
			lat REAL NOT NULL,
			expires_at INTEGER NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

func TestSqliteDistanceCacheRoundTrip(t *testing.T) {
	c := NewSqliteDistanceCache(newCacheDB(t))
	ctx := context.Background()

	key := "10.776900,106.700900|10.823100,106.629700"
	want := ports.DistanceResult{DistanceMeters: 9000, DurationSeconds: 1200}

	if err := c.Put(ctx, key, want, 15*time.Minute); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, found, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("expected a cache hit")
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}

	// Overwrites replace both metrics and expiry.
	fresh := ports.DistanceResult{DistanceMeters: 9500, DurationSeconds: 1300}
	if err := c.Put(ctx, key, fresh, 15*time.Minute); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, _, err = c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != fresh {
		t.Errorf("Get() after overwrite = %+v, want %+v", got, fresh)
	}
}

func TestSqliteDistanceCacheExpiry(t *testing.T) {
	db := newCacheDB(t)
	c := NewSqliteDistanceCache(db)
	ctx := context.Background()

	if err := c.Put(ctx, "a|b", ports.DistanceResult{DistanceMeters: 1, DurationSeconds: 1}, time.Minute); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Backdate the entry past its TTL; expired rows read as misses.
	if _, err := db.Exec(`UPDATE distance_cache SET expires_at = ?`, time.Now().Add(-time.Second).Unix()); err != nil {
		t.Fatalf("backdate: %v", err)
	}

	_, found, err := c.Get(ctx, "a|b")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("expected a miss for an expired entry")
	}
}

func TestSqliteGeocodeCacheRoundTrip(t *testing.T) {
	c := NewSqliteGeocodeCache(newCacheDB(t))
	ctx := context.Background()

	addr := "270 Ly Thuong Kiet, District 10"
	want := domain.Coordinates{Lon: 106.6602, Lat: 10.7626}

	if err := c.Put(ctx, addr, want, 24*time.Hour); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, found, err := c.Get(ctx, addr)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("expected a cache hit")
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}

	_, found, err = c.Get(ctx, "somewhere else")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("expected a miss for an unknown address")
	}
}
