package cache

import (
	"context"
	"delivery-cost-service/internal/platform/obs"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisQuoteCache is a Redis-backed cache of computed minimum costs.
// Entries expire after ttl; a zero ttl keeps them until evicted.
type RedisQuoteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisQuoteCache connects to the server described by redisURL
// (redis://[user:pass@]host:port/db).
func NewRedisQuoteCache(redisURL string, ttl time.Duration) (*RedisQuoteCache, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, errors.New("quote cache: redis url is empty")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("quote cache: parse redis url: %w", err)
	}

	return NewRedisQuoteCacheFromClient(redis.NewClient(opt), ttl), nil
}

func NewRedisQuoteCacheFromClient(rdb *redis.Client, ttl time.Duration) *RedisQuoteCache {
	return &RedisQuoteCache{rdb: rdb, ttl: ttl}
}

// Verify the server is reachable.
func (c *RedisQuoteCache) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("quote cache: ping: %w", err)
	}
	return nil
}

// Fetch a cached cost.
func (c *RedisQuoteCache) Get(ctx context.Context, key string) (_ int64, _ bool, err error) {
	defer obs.Time(ctx, "quote.cache.Get")(&err)

	if key == "" {
		return 0, false, errors.New("get quote cache: key must not be empty")
	}

	cost, err := c.rdb.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get quote cache key=%q: %w", key, err)
	}

	return cost, true, nil
}

// Store a computed cost.
func (c *RedisQuoteCache) Put(ctx context.Context, key string, cost int64) error {
	if key == "" {
		return errors.New("put quote cache: key must not be empty")
	}

	if err := c.rdb.Set(ctx, key, cost, c.ttl).Err(); err != nil {
		return fmt.Errorf("put quote cache key=%q: %w", key, err)
	}
	return nil
}

func (c *RedisQuoteCache) Close() error {
	return c.rdb.Close()
}
