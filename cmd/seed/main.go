package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/bg-companion-api/config"
	pginfra "github.com/oksasatya/bg-companion-api/internal/infrastructure/postgres"
	"github.com/oksasatya/bg-companion-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	email := "demo@bgcompanion.dev"
	password := "password123"
	username := "demoUser"
	hash, err := helpers.NewBcryptHasher(cfg.BcryptCost).Hash(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username
		RETURNING id
	`, username, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s username=%s password=%s\n", id, email, username, password)

	// One sample comp so the demo account has something to list.
	tag, err := pool.Exec(ctx, `
		INSERT INTO comps (name, created_by)
		SELECT $1::text, $2::uuid
		WHERE NOT EXISTS (SELECT 1 FROM comps WHERE created_by = $2::uuid AND name = $1::text)
	`, "Demo beasts", id)
	if err != nil {
		log.Fatalf("failed to seed comp: %v", err)
	}
	fmt.Printf("seeded comps: %d\n", tag.RowsAffected())
}
