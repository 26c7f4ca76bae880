// Package cache memoizes query responses in Redis, keyed by the exact filter
// tuple. The cache is an optimization, never a correctness dependency: every
// failure path degrades to a direct store read.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dbspend360/dbspend360/pkg/types"
)

// Cache wraps a Redis client with JSON encoding and a fixed freshness window.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a cache against the given Redis address.
func New(addr string, ttl time.Duration) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

// Get loads the cached value for key into dest. The second return is false
// on a miss; a transport error is returned so the caller can log it and fall
// through to the store.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}

	return true, nil
}

// Set stores the value under key for the cache's freshness window.
func (c *Cache) Set(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}

	return nil
}

// Ping verifies the Redis connection is alive.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the Redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}

// SummaryKey builds the memoization key for a summary over a date range.
func SummaryKey(dr types.DateRange) string {
	return fmt.Sprintf("summary:%s:%s", dr.StartDate, dr.EndDate)
}
