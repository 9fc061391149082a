// Package catalog provides read-only access to the marketplace goods
// catalog. The matching engine never writes listings; it only needs a
// consistent view of what is currently on sale.
package catalog

import "time"

// ListingStatus mirrors the goods table status column.
type ListingStatus string

const (
	StatusOnSale   ListingStatus = "on_sale"
	StatusOffShelf ListingStatus = "off_shelf"
)

// Listing is a single item offered for sale.
type Listing struct {
	ID          int64
	Name        string
	Description string
	CategoryID  *int64 // nil when the seller picked no category
	Price       float64
	SellerID    int64
	Status      ListingStatus
	IsTraded    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
