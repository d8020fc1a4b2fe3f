// Command seeduser provisions the static login credential.  Provisioning is
// an explicit operational step rather than something the server does at
// startup, so a forgotten env var can never recreate an account in
// production behind the operator's back.
//
// Usage:
//
//	ADMIN_USERNAME=admin@example.com ADMIN_PASSWORD=secret go run ./cmd/seeduser
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/book-inventory/internal/config"
	"github.com/iliyamo/book-inventory/internal/database"
	"github.com/iliyamo/book-inventory/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}

	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Fatal("ADMIN_USERNAME and ADMIN_PASSWORD are required")
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	users := repository.NewUserRepo(db)
	id, err := users.Create(ctx, username, password, cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			log.Printf("user %s already exists; nothing to do", username)
			return
		}
		log.Fatalf("create user: %v", err)
	}
	log.Printf("created user %s (id=%d)", username, id)
}
