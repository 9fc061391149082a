package match

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when no match record exists for the given id.
var ErrNotFound = errors.New("match: not found")

// Store manages match records in PostgreSQL.
type Store struct {
	db *sql.DB
}

// NewStore creates a match store backed by the given database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Replace swaps the entire match set for a wishlist in one transaction:
// delete everything, insert the new rows. Readers either see the full old
// set or the full new set, never a mix, and a failure rolls back to the
// prior committed set. Inserted rows get their id and created_at filled in.
func (s *Store) Replace(ctx context.Context, wishlistID int64, rows []Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("match: begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM match_results WHERE wishlist_id = $1`, wishlistID); err != nil {
		return fmt.Errorf("match: clear results for wishlist %d: %w", wishlistID, err)
	}

	const insert = `
		INSERT INTO match_results (wishlist_id, goods_id, goods_name, goods_price, similarity_score)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	for i := range rows {
		r := &rows[i]
		r.WishlistID = wishlistID
		err := tx.QueryRowContext(ctx, insert,
			wishlistID, r.GoodsID, r.GoodsName, r.GoodsPrice, r.Score,
		).Scan(&r.ID, &r.CreatedAt)
		if err != nil {
			return fmt.Errorf("match: insert result for wishlist %d: %w", wishlistID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("match: commit replace for wishlist %d: %w", wishlistID, err)
	}
	return nil
}

// ListByWishlist returns a wishlist's match records ordered by similarity
// score descending, listing id ascending on ties.
func (s *Store) ListByWishlist(ctx context.Context, wishlistID int64) ([]Result, error) {
	const query = `
		SELECT id, wishlist_id, goods_id, goods_name, goods_price, similarity_score, is_read, created_at
		FROM match_results
		WHERE wishlist_id = $1
		ORDER BY similarity_score DESC, goods_id ASC`

	rows, err := s.db.QueryContext(ctx, query, wishlistID)
	if err != nil {
		return nil, fmt.Errorf("match: list for wishlist %d: %w", wishlistID, err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		err := rows.Scan(&r.ID, &r.WishlistID, &r.GoodsID, &r.GoodsName,
			&r.GoodsPrice, &r.Score, &r.IsRead, &r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("match: scan result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("match: iterate results: %w", err)
	}
	return results, nil
}

// MarkRead flips the read flag on a single match record.
// Returns the wishlist id the record belongs to so callers can invalidate
// any cached view of that wishlist's match set.
func (s *Store) MarkRead(ctx context.Context, matchID int64) (int64, error) {
	var wishlistID int64
	err := s.db.QueryRowContext(ctx,
		`UPDATE match_results SET is_read = TRUE WHERE id = $1 RETURNING wishlist_id`, matchID,
	).Scan(&wishlistID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("match: mark read %d: %w", matchID, err)
	}
	return wishlistID, nil
}
