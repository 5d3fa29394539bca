package main

import (
	"context"
	"database/sql"
	"delivery-cost-service/internal/adapters/cache"
	"delivery-cost-service/internal/adapters/repositories"
	"delivery-cost-service/internal/api"
	"delivery-cost-service/internal/config"
	"delivery-cost-service/internal/domain"
	"delivery-cost-service/internal/metrics"
	"delivery-cost-service/internal/platform/db"
	"delivery-cost-service/internal/ports"
	"delivery-cost-service/internal/services"
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()
	ctx := context.Background()

	conn, repo, err := openRepository(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	networkCfg, err := repo.LoadNetwork(ctx)
	if err != nil {
		log.Fatal(err)
	}
	network, err := domain.NewNetwork(networkCfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf(
		"network loaded: hub=%s warehouses=%d fingerprint=%s",
		network.Hub(), len(network.Warehouses()), network.Fingerprint(),
	)

	optimizer, err := services.NewRouteOptimizer(network, cfg.MaxWarehousesPerOrder)
	if err != nil {
		log.Fatal(err)
	}

	// Leave the interface nil when no cache is configured.
	var quoteCache ports.QuoteCache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisQuoteCache(cfg.RedisURL, cfg.QuoteCacheTTL)
		if err != nil {
			log.Fatal(err)
		}
		defer redisCache.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			log.Printf("quote cache unreachable, continuing without it until it recovers: err=%v", err)
		}
		cancel()
		quoteCache = redisCache
	}

	quotes, err := services.NewQuoteService(optimizer, quoteCache)
	if err != nil {
		log.Fatal(err)
	}

	metrics.RegisterDefault()

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	router := api.NewRouter(quotes, limiter)

	log.Printf("Server listening addr=:%s max_warehouses=%d", cfg.Port, cfg.MaxWarehousesPerOrder)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openRepository picks Postgres when DATABASE_URL is set. Otherwise it opens
// the local SQLite file and seeds it on first run so local runs need no setup.
func openRepository(ctx context.Context, cfg config.Config) (*sql.DB, ports.NetworkRepository, error) {
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return conn, repositories.NewPostgresNetworkRepository(conn), nil
	}

	conn, err := db.OpenSqlite(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}

	if err := repositories.InitSchema(conn); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("init and seed: %w", err)
	}

	repo := repositories.NewSqliteNetworkRepository(conn)
	seeded, err := repositories.SeedIfEmpty(ctx, repo, cfg.NetworkSeedPath)
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("init and seed: %w", err)
	}
	if seeded {
		log.Printf("network seeded: path=%s", cfg.NetworkSeedPath)
	}

	return conn, repo, nil
}
