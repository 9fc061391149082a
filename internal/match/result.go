// Package match persists the scored match records produced by the matching
// engine. Each record is a denormalized snapshot of the matched listing
// (id, name, price at match time) so it survives later listing edits or
// deletion. The set of records for a wishlist is always replaced wholesale
// by a matching run, never appended to.
package match

import "time"

// Result is one persisted wishlist-to-listing match.
type Result struct {
	ID         int64     `json:"id"`
	WishlistID int64     `json:"wishlist_id"`
	GoodsID    int64     `json:"goods_id"`
	GoodsName  string    `json:"goods_name"`
	GoodsPrice float64   `json:"goods_price"`
	Score      float64   `json:"similarity_score"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}
