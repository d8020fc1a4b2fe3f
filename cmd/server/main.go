package main // Entry point package

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/book-inventory/internal/cache"
	"github.com/iliyamo/book-inventory/internal/config"
	"github.com/iliyamo/book-inventory/internal/database"
	"github.com/iliyamo/book-inventory/internal/handler"
	"github.com/iliyamo/book-inventory/internal/queue"
	"github.com/iliyamo/book-inventory/internal/repository"
	"github.com/iliyamo/book-inventory/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate database: %v", err)
	}
	cancel()

	// Redis is optional; without it every list request hits the database.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; book list cache disabled")
	}
	listCache := cache.NewBookList(rdb, config.LoadCacheConfig())

	users := repository.NewUserRepo(db)
	books := repository.NewBookRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users)
	bookHandler := handler.NewBookHandler(books, listCache)

	e := echo.New()
	router.RegisterRoutes(e, cfg, authHandler, bookHandler)

	// The inventory event consumer needs a broker; keep it opt-in so the
	// server runs standalone.
	if os.Getenv("CONSUMER_ENABLED") == "true" {
		go queue.StartInventoryConsumer()
	}

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}
