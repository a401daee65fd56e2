// cmd/reconcile-likes/main.go
// Recomputes posts.like_count from post_likes after manual data repairs
package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"time"

	"Inkwell/internal/config"
	"Inkwell/internal/db/postgres"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// This tool needs only the database, so it skips full config validation
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Failed to load .env: %v", err)
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = config.Default().DatabaseURL
	}

	log.Printf("Connecting to database...")
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Printf("Failed to close database: %v", closeErr)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	fixed, err := postgres.ReconcileLikeCounts(ctx, db)
	if err != nil {
		log.Fatalf("Reconcile failed: %v", err)
	}

	log.Printf("Reconciled like counts: %d posts corrected", fixed)
}
