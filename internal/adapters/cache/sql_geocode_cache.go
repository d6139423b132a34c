package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront-gateway-service/internal/domain"
	"storefront-gateway-service/internal/platform/obs"
)

// SQLGeocodeCache is the Postgres variant of the geocode TTL cache.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch cached coordinates for an address, ignoring expired entries.
func (s *SQLGeocodeCache) Get(ctx context.Context, address string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return domain.Coordinates{}, false, errors.New("get geocode cache: address must not be empty")
	}

	q := `
	SELECT lon, lat
    FROM geocode_cache
    WHERE address = $1
        AND expires_at > $2;
	`

	var lon, lat float64
	err = s.DB.QueryRowContext(ctx, q, address, time.Now().Unix()).Scan(&lon, &lat)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return domain.Coordinates{Lon: lon, Lat: lat}, true, nil
}

// Store an address -> coordinates mapping with the given TTL.
func (s *SQLGeocodeCache) Put(ctx context.Context, address string, c domain.Coordinates, ttl time.Duration) error {
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
	INSERT INTO geocode_cache (address, lon, lat, expires_at)
    VALUES ($1, $2, $3, $4)
	ON CONFLICT (address) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		expires_at = EXCLUDED.expires_at;
	`

	expiresAt := time.Now().Add(ttl).Unix()
	if _, err := s.DB.ExecContext(ctx, q, address, c.Lon, c.Lat, expiresAt); err != nil {
		return fmt.Errorf("insert geocode cache address=%q: %w", address, err)
	}

	return nil
}
