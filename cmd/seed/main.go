// Command seed wipes the lessons collection and reinserts the fixed
// catalog. The running server only seeds an empty database; use this when
// the catalog needs to be reset to a known state.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/after-school-booking/internal/config"
	"github.com/iliyamo/after-school-booking/internal/database"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.MongoURI == "" {
		log.Fatal("MONGODB_URI is required")
	}

	m, err := database.Open(cfg.MongoURI, cfg.DBName, cfg.ConnectRetries, cfg.ConnectBackoff)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = m.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Reseed(ctx, m.DB); err != nil {
		log.Fatal(err)
	}
	log.Println("lessons reseeded")
}
