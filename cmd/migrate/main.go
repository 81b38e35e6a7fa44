package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/maisonnoir/storefront/internal/config"
	"github.com/maisonnoir/storefront/internal/postgres"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// Admin is a seed-time role assignment, never an in-request special
	// case. The seeded account sets its password through the reset flow.
	if cfg.SeedAdminEmail != "" {
		_, err := db.Exec(ctx, `
			INSERT INTO users(id, email, is_admin)
			VALUES ($1, $2, true)
			ON CONFLICT (email) DO UPDATE SET is_admin = true`,
			uuid.NewString(), cfg.SeedAdminEmail)
		if err != nil {
			log.Fatalf("seed admin: %v", err)
		}
		log.Printf("admin role ensured for %s", cfg.SeedAdminEmail)
	}

	log.Println("migrations up to date")
}
