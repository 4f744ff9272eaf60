package rates

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when no fresh rate table is cached.
var ErrCacheMiss = errors.New("rates: cache miss")

// Cache stores a rate table for a limited time. The server uses the
// redis-backed implementation; the CLI and tests use the in-memory one.
type Cache interface {
	Get(ctx context.Context) (Table, error)
	Set(ctx context.Context, rates Table, ttl time.Duration) error
}

const redisRatesKey = "shoppey:exchange_rates"

// RedisCache keeps the rate table in redis so every server instance
// shares one fetch per TTL window.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context) (Table, error) {
	data, err := c.client.Get(ctx, redisRatesKey).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var rates Table
	if err := json.Unmarshal(data, &rates); err != nil {
		return nil, err
	}
	return rates, nil
}

func (c *RedisCache) Set(ctx context.Context, rates Table, ttl time.Duration) error {
	data, err := json.Marshal(rates)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, redisRatesKey, data, ttl).Err()
}

// MemoryCache is a thread-safe single-entry TTL cache.
type MemoryCache struct {
	mu        sync.RWMutex
	rates     Table
	expiresAt time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (c *MemoryCache) Get(ctx context.Context) (Table, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.rates == nil || time.Now().After(c.expiresAt) {
		return nil, ErrCacheMiss
	}
	return c.rates, nil
}

func (c *MemoryCache) Set(ctx context.Context, rates Table, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rates = rates
	c.expiresAt = time.Now().Add(ttl)
	return nil
}
