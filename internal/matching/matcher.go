// Package matching is the wishlist-to-listing matching engine: it scores
// every active listing against a wishlist, keeps the top five above a
// relevance floor, replaces the wishlist's persisted match set, and notifies
// the owner when matches exist. Matching is wishlist-driven and synchronous;
// listing changes never trigger it.
package matching

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/OpenProtects/willing-old-sell/internal/catalog"
	"github.com/OpenProtects/willing-old-sell/internal/keyword"
	"github.com/OpenProtects/willing-old-sell/internal/match"
	"github.com/OpenProtects/willing-old-sell/internal/metrics"
	"github.com/OpenProtects/willing-old-sell/internal/wishlist"
)

const (
	// MaxResults is the number of matches kept per wishlist (top-K).
	MaxResults = 5

	// MinScore is the relevance floor; candidates scoring below it are
	// dropped before ranking.
	MinScore = 0.1
)

// CatalogSource supplies the candidate listing pool.
type CatalogSource interface {
	ActiveListings(ctx context.Context, categoryID *int64) ([]catalog.Listing, error)
}

// MatchStore persists a wishlist's match set with replace semantics.
type MatchStore interface {
	Replace(ctx context.Context, wishlistID int64, rows []match.Result) error
}

// WishlistStore is the slice of wishlist persistence the engine needs.
type WishlistStore interface {
	GetByID(ctx context.Context, id int64) (*wishlist.Wishlist, error)
	UpdateKeywords(ctx context.Context, id int64, kw keyword.Set) error
	UpdateMatchStatus(ctx context.Context, id int64, status wishlist.MatchStatus) error
}

// Notifier delivers the match-found notification to the wishlist owner.
type Notifier interface {
	MatchFound(userID, wishlistID int64, wishlistName string, count int) error
}

// Matcher runs the matching algorithm for one wishlist at a time.
type Matcher struct {
	catalog   CatalogSource
	matches   MatchStore
	wishlists WishlistStore
	notifier  Notifier
	scorer    *Scorer
	locks     *wishlistLocks
}

// NewMatcher wires the matcher to its collaborators.
func NewMatcher(cat CatalogSource, matches MatchStore, wishlists WishlistStore, notifier Notifier, scorer *Scorer) *Matcher {
	return &Matcher{
		catalog:   cat,
		matches:   matches,
		wishlists: wishlists,
		notifier:  notifier,
		scorer:    scorer,
		locks:     newWishlistLocks(),
	}
}

// RunMatching scores the active catalog against the wishlist and replaces
// its persisted match set with the top results. On a non-empty result it
// marks the wishlist matched and notifies the owner exactly once; on an
// empty result it leaves the match status untouched and stays silent.
// The replace is all-or-nothing: on error the prior match set is intact.
func (m *Matcher) RunMatching(ctx context.Context, w *wishlist.Wishlist) ([]match.Result, error) {
	start := time.Now()

	listings, err := m.catalog.ActiveListings(ctx, w.CategoryID)
	if err != nil {
		metrics.MatchRunsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("matching: load candidates for wishlist %d: %w", w.ID, err)
	}

	type scoredListing struct {
		listing *catalog.Listing
		score   float64
	}

	candidates := make([]scoredListing, 0, len(listings))
	for i := range listings {
		l := &listings[i]
		if l.SellerID == w.UserID {
			continue // never match a user's own listings
		}

		score := m.scorer.Score(w, l)
		metrics.CandidatesScored.Inc()
		if score < MinScore {
			continue
		}
		candidates = append(candidates, scoredListing{listing: l, score: score})
	}

	// Rank by score descending; equal scores order by listing id ascending
	// so repeated runs over the same catalog are reproducible.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].listing.ID < candidates[j].listing.ID
	})

	if len(candidates) > MaxResults {
		candidates = candidates[:MaxResults]
	}

	rows := make([]match.Result, len(candidates))
	for i, c := range candidates {
		rows[i] = match.Result{
			WishlistID: w.ID,
			GoodsID:    c.listing.ID,
			GoodsName:  c.listing.Name,
			GoodsPrice: c.listing.Price,
			Score:      c.score,
		}
	}

	// Serialize the replace step per wishlist so a rapid double-submit
	// cannot interleave two runs' writes.
	lock := m.locks.get(w.ID)
	lock.Lock()
	defer lock.Unlock()

	if err := m.matches.Replace(ctx, w.ID, rows); err != nil {
		metrics.MatchRunsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("matching: replace results for wishlist %d: %w", w.ID, err)
	}
	metrics.ResultsPersisted.Add(float64(len(rows)))

	if len(rows) == 0 {
		// Zero matches is a valid outcome: status stays as-is and no
		// notification fires.
		metrics.MatchRunsTotal.WithLabelValues("empty").Inc()
		metrics.MatchRunDuration.Observe(time.Since(start).Seconds())
		log.Printf("[matcher] wishlist=%d scored=%d matched=0", w.ID, len(listings))
		return rows, nil
	}

	if err := m.wishlists.UpdateMatchStatus(ctx, w.ID, wishlist.StatusMatched); err != nil {
		metrics.MatchRunsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("matching: mark wishlist %d matched: %w", w.ID, err)
	}
	w.MatchStatus = wishlist.StatusMatched

	// Notification delivery is fire-and-forget; a publish failure does not
	// fail the run, the match set is already committed.
	if err := m.notifier.MatchFound(w.UserID, w.ID, w.Name, len(rows)); err != nil {
		log.Printf("[matcher] notify user=%d wishlist=%d: %v", w.UserID, w.ID, err)
	}

	metrics.MatchRunsTotal.WithLabelValues("matched").Inc()
	metrics.MatchRunDuration.Observe(time.Since(start).Seconds())
	log.Printf("[matcher] wishlist=%d scored=%d matched=%d top=%.3f",
		w.ID, len(listings), len(rows), rows[0].Score)
	return rows, nil
}
