package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds process settings read from the environment.
// The network itself (catalog, distances, weights) is loaded separately
// from the network repository.
type Config struct {
	Port                  string
	DBPath                string
	DatabaseURL           string
	NetworkSeedPath       string
	RedisURL              string
	QuoteCacheTTL         time.Duration
	MaxWarehousesPerOrder int
	RateLimitRPS          float64
	RateLimitBurst        int
}

// Load reads Config from the environment, falling back to defaults for
// unset or malformed values.
func Load() Config {
	return Config{
		Port:                  Get("PORT", "8080"),
		DBPath:                Get("DB_PATH", "data/app.db"),
		DatabaseURL:           strings.TrimSpace(os.Getenv("DATABASE_URL")),
		NetworkSeedPath:       Get("NETWORK_SEED_PATH", "data/seeds/network.yaml"),
		RedisURL:              strings.TrimSpace(os.Getenv("REDIS_URL")),
		QuoteCacheTTL:         GetDuration("QUOTE_CACHE_TTL", 10*time.Minute),
		MaxWarehousesPerOrder: GetInt("MAX_WAREHOUSES_PER_ORDER", 7),
		RateLimitRPS:          GetFloat("RATE_LIMIT_RPS", 50),
		RateLimitBurst:        GetInt("RATE_LIMIT_BURST", 100),
	}
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: %s=%q is not an integer, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func GetFloat(key string, fallback float64) float64 {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: %s=%q is not a number, using %v", key, v, fallback)
		return fallback
	}
	return f
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: %s=%q is not a duration, using %s", key, v, fallback)
		return fallback
	}
	return d
}
