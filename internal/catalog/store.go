package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// Store reads listings from PostgreSQL.
type Store struct {
	db *sql.DB
}

// NewStore creates a catalog store backed by the given database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ActiveListings returns every listing that is on sale and not yet traded.
// When categoryID is non-nil the result is restricted to that category;
// this is the matcher's hard pre-filter, applied in SQL so uncategorized
// wishlists are the only ones that scan the full catalog.
func (s *Store) ActiveListings(ctx context.Context, categoryID *int64) ([]Listing, error) {
	const base = `
		SELECT id, name, description, category_id, price, seller_id, status, is_traded, created_at, updated_at
		FROM goods
		WHERE status = $1 AND is_traded = FALSE`

	var (
		rows *sql.Rows
		err  error
	)
	if categoryID != nil {
		rows, err = s.db.QueryContext(ctx, base+` AND category_id = $2 ORDER BY id`, StatusOnSale, *categoryID)
	} else {
		rows, err = s.db.QueryContext(ctx, base+` ORDER BY id`, StatusOnSale)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: query active listings: %w", err)
	}
	defer rows.Close()

	var listings []Listing
	for rows.Next() {
		var (
			l        Listing
			category sql.NullInt64
		)
		err := rows.Scan(&l.ID, &l.Name, &l.Description, &category, &l.Price,
			&l.SellerID, &l.Status, &l.IsTraded, &l.CreatedAt, &l.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("catalog: scan listing: %w", err)
		}
		if category.Valid {
			l.CategoryID = &category.Int64
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: iterate listings: %w", err)
	}
	return listings, nil
}
