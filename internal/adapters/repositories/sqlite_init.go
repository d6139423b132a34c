package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the gateway store schema: saved addresses, carts, and the
// location caches.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createAddressesQuery := `
	CREATE TABLE IF NOT EXISTS addresses (
		address_id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		label TEXT NOT NULL DEFAULT '',
		recipient TEXT NOT NULL,
		phone TEXT NOT NULL,
		line TEXT NOT NULL,
		ward TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		lon REAL NOT NULL DEFAULT 0,
		lat REAL NOT NULL DEFAULT 0,
		is_default INTEGER NOT NULL DEFAULT 0
	);
	`

	createCartItemsQuery := `
	CREATE TABLE IF NOT EXISTS cart_items (
		user_id TEXT NOT NULL,
		shop_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		name TEXT NOT NULL,
		unit_price INTEGER NOT NULL,
		quantity INTEGER NOT NULL,
		PRIMARY KEY (user_id, shop_id, product_id)
	);
	`

	createDistanceCacheQuery := `
	CREATE TABLE IF NOT EXISTS distance_cache (
        pair_key TEXT PRIMARY KEY,
        distance_meters INTEGER NOT NULL,
        duration_seconds INTEGER NOT NULL,
        expires_at INTEGER NOT NULL
    );
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lon REAL NOT NULL,
        lat REAL NOT NULL,
        expires_at INTEGER NOT NULL
    );
	`

	createAddressIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_addresses_user
    ON addresses(user_id);
	`

	createCacheIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_distance_cache_expires_at
    ON distance_cache(expires_at);
	`

	statements := []string{
		createAddressesQuery,
		createCartItemsQuery,
		createDistanceCacheQuery,
		createGeocodeCacheQuery,
		createAddressIndexQuery,
		createCacheIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type AddressSeed struct {
	AddressID string  `json:"address_id"`
	UserID    string  `json:"user_id"`
	Label     string  `json:"label"`
	Recipient string  `json:"recipient"`
	Phone     string  `json:"phone"`
	Line      string  `json:"line"`
	Ward      string  `json:"ward"`
	City      string  `json:"city"`
	Lon       float64 `json:"lon"`
	Lat       float64 `json:"lat"`
	IsDefault bool    `json:"is_default"`
}

// Populate the store with demo addresses from a JSON file, for local
// runs. A missing seed file is not an error.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed addresses: read %q: %w", jsonPath, err)
	}

	var data []AddressSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed addresses: parse json: %w", err)
	}

	for i, item := range data {
		if strings.TrimSpace(item.AddressID) == "" {
			return fmt.Errorf("seed addresses: item at index %d: address_id cannot be empty", i+1)
		}
		if strings.TrimSpace(item.UserID) == "" {
			return fmt.Errorf("seed addresses: item at index %d: user_id cannot be empty", i+1)
		}
		if strings.TrimSpace(item.Line) == "" {
			return fmt.Errorf("seed addresses: item at index %d: line cannot be empty", i+1)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed addresses: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO addresses (
		address_id,
		user_id,
		label,
		recipient,
		phone,
		line,
		ward,
		city,
		lon,
		lat,
		is_default
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed addresses: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range data {
		if _, err := stmt.Exec(
			a.AddressID, a.UserID, a.Label, a.Recipient, a.Phone,
			a.Line, a.Ward, a.City, a.Lon, a.Lat, a.IsDefault,
		); err != nil {
			return fmt.Errorf("seed addresses: insert address_id=%q: %w", a.AddressID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed addresses: commit tx: %w", err)
	}

	return nil
}
