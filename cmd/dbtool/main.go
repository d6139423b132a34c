package main

import (
	"database/sql"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"storefront-gateway-service/internal/adapters/repositories"
	"storefront-gateway-service/internal/config"
	"storefront-gateway-service/internal/platform/db"
)

// dbtool initializes the gateway store schema and seeds demo
// addresses. DATABASE_URL selects Postgres; DB_PATH (the default)
// selects the embedded SQLite store the server itself uses.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	store, err := open()
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/addresses.json")
	initAndSeed(store, seedPath)
}

func open() (*sql.DB, error) {
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		log.Println("Store backend: postgres")
		return db.Open(databaseURL)
	}

	dbPath := config.Get("DB_PATH", "data/gateway.db")
	log.Printf("Store backend: sqlite path=%s", dbPath)
	return sql.Open("sqlite", dbPath)
}

func initAndSeed(store *sql.DB, seedPath string) {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(store); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	if err := repositories.SeedFromJSON(store, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
