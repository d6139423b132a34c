package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"storefront-gateway-service/internal/adapters/cache"
	"storefront-gateway-service/internal/adapters/distance"
	"storefront-gateway-service/internal/adapters/repositories"
	"storefront-gateway-service/internal/adapters/upstream"
	"storefront-gateway-service/internal/api"
	"storefront-gateway-service/internal/config"
	platformdb "storefront-gateway-service/internal/platform/db"
	"storefront-gateway-service/internal/ports"
	"storefront-gateway-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Redis, the upstream marketplace,
// the matrix vendor) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/gateway.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/addresses.json")
	port := config.Get("PORT", "8080")

	upstreamURL := os.Getenv("UPSTREAM_URL")
	if strings.TrimSpace(upstreamURL) == "" {
		log.Fatal("UPSTREAM_URL is required")
	}

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(db, seedPath); err != nil {
		log.Fatal(err)
	}

	client, err := upstream.NewClient(upstreamURL, os.Getenv("UPSTREAM_API_KEY"))
	if err != nil {
		log.Fatal(err)
	}

	// Geocode results are stable; they persist in SQLite, or in Postgres
	// when a shared store is configured.
	var geocodeCache ports.GeocodeCache = cache.NewSqliteGeocodeCache(db)
	var distanceCache ports.DistanceCache = cache.NewSqliteDistanceCache(db)

	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		pg, err := platformdb.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
		geocodeCache = cache.NewSQLGeocodeCache(pg)
		distanceCache = cache.NewSQLDistanceCache(pg)
		log.Println("Cache backend: postgres")
	}

	// Distance results prefer Redis when configured; its key expiry
	// matches the resolver TTL exactly.
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("parse REDIS_URL: %v", err)
		}
		distanceCache = cache.NewRedisDistanceCache(redis.NewClient(opts))
		log.Println("Distance cache backend: redis")
	}

	geocoder := distance.NewCachedGeocoder(client, geocodeCache)

	// The matrix vendor is optional; without a key the resolver starts
	// at the upstream proxy tier and still never fails outright.
	var matrix ports.PointDistanceProvider
	if key := os.Getenv("MATRIX_API_KEY"); key != "" {
		provider, err := distance.NewMatrixProvider(key)
		if err != nil {
			log.Fatal(err)
		}
		matrix = provider
	} else {
		log.Println("MATRIX_API_KEY not set; distance resolution starts at the upstream proxy tier")
	}

	resolver, err := distance.NewResolver(matrix, client, geocoder, distanceCache)
	if err != nil {
		log.Fatal(err)
	}

	addresses := repositories.NewSqliteAddressRepository(db)
	carts := repositories.NewSqliteCartRepository(db)

	router := api.NewRouter(api.Deps{
		Auth:      client,
		Catalog:   client,
		Orders:    client,
		Coupons:   client,
		Resolver:  resolver,
		Addresses: addresses,
		Carts:     carts,
		Checkout:  services.NewCheckoutService(carts, client, client, client, resolver, client),
		Nearby:    services.NewNearbyShopsService(client, resolver),
	})

	// Timeouts are tuned for cold-cache distance resolution (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
