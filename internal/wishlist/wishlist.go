// Package wishlist defines the wishlist aggregate and its PostgreSQL store.
// A wishlist is a user's standing request for an item: free-text description,
// optional category and price bounds, and a derived keyword set that the
// matching engine recomputes whenever the text changes.
package wishlist

import (
	"time"

	"github.com/OpenProtects/willing-old-sell/internal/keyword"
)

// MatchStatus tracks whether a wishlist currently has persisted matches.
type MatchStatus string

const (
	StatusPending MatchStatus = "pending"
	StatusMatched MatchStatus = "matched"
)

// Wishlist is a user's standing request describing a desired item.
type Wishlist struct {
	ID          int64
	UserID      int64
	Name        string
	CategoryID  *int64   // nil = any category
	MinPrice    *float64 // nil = no lower bound
	MaxPrice    *float64 // nil = no upper bound
	Description string
	Keywords    keyword.Set
	MatchStatus MatchStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SearchText returns the text the keyword extractor runs over:
// the display name followed by the free-text description.
func (w *Wishlist) SearchText() string {
	if w.Description == "" {
		return w.Name
	}
	return w.Name + " " + w.Description
}
