package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront-gateway-service/internal/ports"
)

// SQLite backed TTL cache for origin|destination distance results.
// Keys are expected to be consistent (e.g., already normalized)
// by the caller. Entries past expires_at are treated as absent.
type SqliteDistanceCache struct {
	DB *sql.DB
}

func NewSqliteDistanceCache(db *sql.DB) *SqliteDistanceCache {
	return &SqliteDistanceCache{DB: db}
}

// Fetch the cached distance for a pair key, ignoring expired entries.
func (s *SqliteDistanceCache) Get(ctx context.Context, key string) (ports.DistanceResult, bool, error) {
	if s.DB == nil {
		return ports.DistanceResult{}, false, errors.New("distance cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return ports.DistanceResult{}, false, errors.New("get distance cache: key must not be empty")
	}

	q := `
	SELECT
        distance_meters,
        duration_seconds
    FROM distance_cache
    WHERE pair_key = ?
        AND expires_at > ?;
	`

	var meters, seconds int
	err := s.DB.QueryRowContext(ctx, q, key, time.Now().Unix()).Scan(&meters, &seconds)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.DistanceResult{}, false, nil
	}
	if err != nil {
		return ports.DistanceResult{}, false, fmt.Errorf("get distance cache: query distance_cache table: %w", err)
	}

	return ports.DistanceResult{
		DistanceMeters:  meters,
		DurationSeconds: seconds,
	}, true, nil
}

// Store a distance result for a pair key with the given TTL.
// Existing entries are overwritten with the fresh expiry.
func (s *SqliteDistanceCache) Put(ctx context.Context, key string, r ports.DistanceResult, ttl time.Duration) error {
	if s.DB == nil {
		return errors.New("distance cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert distance cache: key must not be empty")
	}
	if ttl <= 0 {
		return fmt.Errorf("insert distance cache: ttl must be positive (got %v)", ttl)
	}

	q := `
	INSERT OR REPLACE INTO distance_cache (
        pair_key,
        distance_meters,
        duration_seconds,
        expires_at
    )
    VALUES (?, ?, ?, ?);
	`

	expiresAt := time.Now().Add(ttl).Unix()
	if _, err := s.DB.ExecContext(ctx, q, key, r.DistanceMeters, r.DurationSeconds, expiresAt); err != nil {
		return fmt.Errorf("insert distance cache key=%q: %w", key, err)
	}

	return nil
}
