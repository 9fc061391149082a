package match

import (
	"context"
	"log"
)

// CachedStore layers the Redis cache over the PostgreSQL store. Postgres
// stays the source of truth: writes go to the database first and then drop
// the cached view, reads go through the cache. Cache errors are logged and
// degrade to database reads; they never fail an operation.
type CachedStore struct {
	store *Store
	cache *Cache
}

// NewCachedStore combines a match store with a cache.
func NewCachedStore(store *Store, cache *Cache) *CachedStore {
	return &CachedStore{store: store, cache: cache}
}

// Replace swaps the match set in the database and invalidates the cache.
func (c *CachedStore) Replace(ctx context.Context, wishlistID int64, rows []Result) error {
	if err := c.store.Replace(ctx, wishlistID, rows); err != nil {
		return err
	}
	if err := c.cache.Invalidate(ctx, wishlistID); err != nil {
		log.Printf("[match] cache invalidate wishlist=%d: %v", wishlistID, err)
	}
	return nil
}

// ListByWishlist reads through the cache.
func (c *CachedStore) ListByWishlist(ctx context.Context, wishlistID int64) ([]Result, error) {
	if results, ok, err := c.cache.Get(ctx, wishlistID); err == nil && ok {
		return results, nil
	} else if err != nil {
		log.Printf("[match] cache get wishlist=%d: %v", wishlistID, err)
	}

	results, err := c.store.ListByWishlist(ctx, wishlistID)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, wishlistID, results); err != nil {
		log.Printf("[match] cache set wishlist=%d: %v", wishlistID, err)
	}
	return results, nil
}

// MarkRead updates the record and drops the wishlist's cached view.
func (c *CachedStore) MarkRead(ctx context.Context, matchID int64) error {
	wishlistID, err := c.store.MarkRead(ctx, matchID)
	if err != nil {
		return err
	}
	if err := c.cache.Invalidate(ctx, wishlistID); err != nil {
		log.Printf("[match] cache invalidate wishlist=%d: %v", wishlistID, err)
	}
	return nil
}
