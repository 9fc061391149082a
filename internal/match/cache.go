package match

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// cachePrefix is the Redis key prefix for cached match sets.
	// Key: matches:<wishlist_id>, value: JSON array of Result.
	cachePrefix = "matches:"

	// cacheTTL bounds staleness if an invalidation is ever missed.
	cacheTTL = 10 * time.Minute
)

// Cache is a Redis cache of per-wishlist match sets.
type Cache struct {
	rdb *redis.Client
}

// NewCache creates a cache using the provided Redis client.
func NewCache(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// Get returns the cached match set for a wishlist, or (nil, false) on a miss.
// A corrupt entry counts as a miss and is dropped.
func (c *Cache) Get(ctx context.Context, wishlistID int64) ([]Result, bool, error) {
	key := fmt.Sprintf("%s%d", cachePrefix, wishlistID)
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("match: cache get %s: %w", key, err)
	}

	var results []Result
	if err := json.Unmarshal(data, &results); err != nil {
		c.rdb.Del(ctx, key)
		return nil, false, nil
	}
	return results, true, nil
}

// Set stores a wishlist's match set with the standard TTL.
func (c *Cache) Set(ctx context.Context, wishlistID int64, results []Result) error {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("match: cache marshal: %w", err)
	}
	key := fmt.Sprintf("%s%d", cachePrefix, wishlistID)
	if err := c.rdb.Set(ctx, key, data, cacheTTL).Err(); err != nil {
		return fmt.Errorf("match: cache set %s: %w", key, err)
	}
	return nil
}

// Invalidate drops the cached match set for a wishlist.
func (c *Cache) Invalidate(ctx context.Context, wishlistID int64) error {
	key := fmt.Sprintf("%s%d", cachePrefix, wishlistID)
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("match: cache invalidate %s: %w", key, err)
	}
	return nil
}
