package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront-gateway-service/internal/domain"
)

// SQLite backed TTL cache mapping address strings to geographic
// coordinates. Address keys are expected to be consistent (e.g.,
// normalized) by the caller.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Fetch cached coordinates for an address, ignoring expired entries.
func (s *SqliteGeocodeCache) Get(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return domain.Coordinates{}, false, errors.New("get geocode cache: address must not be empty")
	}

	q := `
	SELECT
        lon,
        lat
    FROM geocode_cache
    WHERE address = ?
        AND expires_at > ?;
	`

	var lon, lat float64
	err := s.DB.QueryRowContext(ctx, q, address, time.Now().Unix()).Scan(&lon, &lat)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return domain.Coordinates{Lon: lon, Lat: lat}, true, nil
}

// Store an address -> coordinates mapping with the given TTL.
func (s *SqliteGeocodeCache) Put(ctx context.Context, address string, c domain.Coordinates, ttl time.Duration) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("insert geocode cache: address must not be empty")
	}
	if ttl <= 0 {
		return fmt.Errorf("insert geocode cache: ttl must be positive (got %v)", ttl)
	}

	q := `
	INSERT OR REPLACE INTO geocode_cache (
        address,
        lon,
        lat,
        expires_at
    )
    VALUES (?, ?, ?, ?);
	`

	expiresAt := time.Now().Add(ttl).Unix()
	if _, err := s.DB.ExecContext(ctx, q, address, c.Lon, c.Lat, expiresAt); err != nil {
		return fmt.Errorf("insert geocode cache address=%q: %w", address, err)
	}

	return nil
}
