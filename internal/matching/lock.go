package matching

import "sync"

// wishlistLocks hands out one mutex per wishlist id so concurrent runs for
// the same wishlist serialize their replace step, while runs for different
// wishlists proceed in parallel. Locks are never evicted; the map grows with
// the number of distinct wishlists matched by this process, which is bounded
// and small relative to the match data itself.
type wishlistLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newWishlistLocks() *wishlistLocks {
	return &wishlistLocks{locks: make(map[int64]*sync.Mutex)}
}

// get returns the mutex for a wishlist id, creating it on first use.
func (w *wishlistLocks) get(id int64) *sync.Mutex {
	w.mu.Lock()
	defer w.mu.Unlock()

	l, ok := w.locks[id]
	if !ok {
		l = &sync.Mutex{}
		w.locks[id] = l
	}
	return l
}
