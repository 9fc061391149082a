package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/OpenProtects/willing-old-sell/internal/catalog"
	"github.com/OpenProtects/willing-old-sell/internal/keyword"
	"github.com/OpenProtects/willing-old-sell/internal/match"
	"github.com/OpenProtects/willing-old-sell/internal/matching"
	"github.com/OpenProtects/willing-old-sell/internal/messaging"
	"github.com/OpenProtects/willing-old-sell/internal/metrics"
	"github.com/OpenProtects/willing-old-sell/internal/notify"
	"github.com/OpenProtects/willing-old-sell/internal/wishlist"
)

func main() {
	log.Println("Starting wishlist matching service...")

	databaseURL := "postgres://localhost:5432/marketplace?sslmode=disable"
	if v := os.Getenv("DATABASE_URL"); v != "" {
		databaseURL = v
	}
	migrationsPath := "file://migrations"
	if v := os.Getenv("MIGRATIONS_PATH"); v != "" {
		migrationsPath = v
	}
	redisAddr := "localhost:6379"
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		redisAddr = v
	}
	metricsAddr := ":9090"
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		metricsAddr = v
	}

	// Postgres setup.
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		log.Fatalf("failed to open Postgres: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.PingContext(ctx); err != nil {
		cancel()
		log.Fatalf("failed to connect to Postgres: %v", err)
	}
	cancel()

	// Schema migrations.
	m, err := migrate.New(migrationsPath, databaseURL)
	if err != nil {
		log.Fatalf("failed to init migrations: %v", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("failed to apply migrations: %v", err)
	}

	// Redis setup.
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(ctx).Err(); err != nil {
		cancel()
		log.Fatalf("failed to connect to Redis: %v", err)
	}
	cancel()

	// NATS setup.
	natsConfig := messaging.DefaultConfig()
	if v := os.Getenv("NATS_URL"); v != "" {
		natsConfig.URL = v
	}
	natsConfig.Name = "wishlist-matcher"

	natsClient, err := messaging.NewClient(natsConfig)
	if err != nil {
		log.Fatalf("failed to connect to NATS: %v", err)
	}

	// Keyword extraction with the dictionary segmenter.
	segmenter, err := keyword.NewGseSegmenter()
	if err != nil {
		log.Fatalf("failed to load segmenter dictionary: %v", err)
	}
	extractor := keyword.NewExtractor(segmenter)

	// Stores and engine wiring.
	wishlistStore := wishlist.NewStore(db)
	catalogStore := catalog.NewStore(db)
	matchStore := match.NewCachedStore(match.NewStore(db), match.NewCache(rdb))
	notifier := notify.NewNotifier(natsClient)

	matcher := matching.NewMatcher(catalogStore, matchStore, wishlistStore, notifier,
		matching.NewScorer(extractor))
	svc := matching.NewService(matcher, wishlistStore, extractor, natsClient)
	if err := svc.Start(); err != nil {
		log.Fatalf("failed to start matching service: %v", err)
	}

	// Prometheus endpoint.
	metricsServer := &http.Server{Addr: metricsAddr, Handler: metrics.Handler()}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics server: %v", err)
		}
	}()

	log.Printf("Wishlist matching service running")
	log.Printf("  database_url: %s", databaseURL)
	log.Printf("  redis_addr:   %s", redisAddr)
	log.Printf("  nats_url:     %s", natsConfig.URL)
	log.Printf("  metrics_addr: %s", metricsAddr)

	// Graceful shutdown.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("received signal %v, shutting down...", sig)

	svc.Stop()
	natsClient.Close()

	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	if err := metricsServer.Shutdown(ctx); err != nil {
		log.Printf("metrics server shutdown: %v", err)
	}
	cancel()

	rdb.Close()
	db.Close()
}
