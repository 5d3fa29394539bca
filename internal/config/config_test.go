package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_PATH", "DATABASE_URL", "NETWORK_SEED_PATH", "REDIS_URL", "QUOTE_CACHE_TTL", "MAX_WAREHOUSES_PER_ORDER", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data/app.db", cfg.DBPath)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "data/seeds/network.yaml", cfg.NetworkSeedPath)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 10*time.Minute, cfg.QuoteCacheTTL)
	assert.Equal(t, 7, cfg.MaxWarehousesPerOrder)
	assert.Equal(t, 50.0, cfg.RateLimitRPS)
	assert.Equal(t, 100, cfg.RateLimitBurst)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", " postgres://u:p@localhost/db ")
	t.Setenv("QUOTE_CACHE_TTL", "30s")
	t.Setenv("MAX_WAREHOUSES_PER_ORDER", "5")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres://u:p@localhost/db", cfg.DatabaseURL)
	assert.Equal(t, 30*time.Second, cfg.QuoteCacheTTL)
	assert.Equal(t, 5, cfg.MaxWarehousesPerOrder)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
}

func TestMalformedValuesFallBack(t *testing.T) {
	t.Setenv("MAX_WAREHOUSES_PER_ORDER", "many")
	t.Setenv("QUOTE_CACHE_TTL", "soon")
	t.Setenv("RATE_LIMIT_RPS", "fast")

	assert.Equal(t, 7, GetInt("MAX_WAREHOUSES_PER_ORDER", 7))
	assert.Equal(t, time.Minute, GetDuration("QUOTE_CACHE_TTL", time.Minute))
	assert.Equal(t, 1.0, GetFloat("RATE_LIMIT_RPS", 1))
}
