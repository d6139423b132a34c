package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront-gateway-service/internal/platform/obs"
	"storefront-gateway-service/internal/ports"
)

// SQLDistanceCache is the Postgres variant of the distance TTL cache,
// used by deployments backed by platform/db instead of embedded SQLite.
type SQLDistanceCache struct {
	DB *sql.DB
}

func NewSQLDistanceCache(db *sql.DB) *SQLDistanceCache {
	return &SQLDistanceCache{DB: db}
}

// Fetch the cached distance for a pair key, ignoring expired entries.
func (s *SQLDistanceCache) Get(ctx context.Context, key string) (_ ports.DistanceResult, _ bool, err error) {
	defer obs.Time(ctx, "distance.cache.Get")(&err)

	if s.DB == nil {
		return ports.DistanceResult{}, false, errors.New("distance cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return ports.DistanceResult{}, false, errors.New("get distance cache: key must not be empty")
	}

	q := `
	SELECT distance_meters, duration_seconds
    FROM distance_cache
    WHERE pair_key = $1
        AND expires_at > $2;
	`

	var meters, seconds int
	err = s.DB.QueryRowContext(ctx, q, key, time.Now().Unix()).Scan(&meters, &seconds)
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
func (s *SQLDistanceCache) Put(ctx context.Context, key string, r ports.DistanceResult, ttl time.Duration) error {
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
	INSERT INTO distance_cache (pair_key, distance_meters, duration_seconds, expires_at)
    VALUES ($1, $2, $3, $4)
	ON CONFLICT (pair_key) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds,
		expires_at = EXCLUDED.expires_at;
	`

	expiresAt := time.Now().Add(ttl).Unix()
	if _, err := s.DB.ExecContext(ctx, q, key, r.DistanceMeters, r.DurationSeconds, expiresAt); err != nil {
		return fmt.Errorf("insert distance cache key=%q: %w", key, err)
	}

	return nil
}
