package wishlist

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/OpenProtects/willing-old-sell/internal/keyword"
)

// ErrNotFound is returned when no wishlist exists for the given id.
var ErrNotFound = errors.New("wishlist: not found")

// Store manages wishlists in PostgreSQL. The keyword set is stored as a
// JSONB array; it only becomes a Set in memory.
type Store struct {
	db *sql.DB
}

// NewStore creates a wishlist store backed by the given database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Create inserts a wishlist and fills in its generated id and timestamps.
func (s *Store) Create(ctx context.Context, w *Wishlist) error {
	keywords, err := json.Marshal(w.Keywords)
	if err != nil {
		return fmt.Errorf("wishlist: marshal keywords: %w", err)
	}
	if w.MatchStatus == "" {
		w.MatchStatus = StatusPending
	}

	const query = `
		INSERT INTO wishlists (user_id, name, category_id, min_price, max_price, description, keywords, match_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err = s.db.QueryRowContext(ctx, query,
		w.UserID, w.Name, w.CategoryID, w.MinPrice, w.MaxPrice,
		w.Description, keywords, w.MatchStatus,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("wishlist: insert: %w", err)
	}
	return nil
}

// GetByID loads a single wishlist. Returns ErrNotFound when absent.
func (s *Store) GetByID(ctx context.Context, id int64) (*Wishlist, error) {
	const query = `
		SELECT id, user_id, name, category_id, min_price, max_price, description, keywords, match_status, created_at, updated_at
		FROM wishlists
		WHERE id = $1`

	var (
		w        Wishlist
		category sql.NullInt64
		minPrice sql.NullFloat64
		maxPrice sql.NullFloat64
		desc     sql.NullString
		keywords []byte
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&w.ID, &w.UserID, &w.Name, &category, &minPrice, &maxPrice,
		&desc, &keywords, &w.MatchStatus, &w.CreatedAt, &w.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("wishlist: select %d: %w", id, err)
	}

	if category.Valid {
		w.CategoryID = &category.Int64
	}
	if minPrice.Valid {
		w.MinPrice = &minPrice.Float64
	}
	if maxPrice.Valid {
		w.MaxPrice = &maxPrice.Float64
	}
	w.Description = desc.String

	w.Keywords = keyword.NewSet()
	if len(keywords) > 0 {
		if err := json.Unmarshal(keywords, &w.Keywords); err != nil {
			return nil, fmt.Errorf("wishlist: decode keywords for %d: %w", id, err)
		}
	}
	return &w, nil
}

// UpdateKeywords replaces the stored keyword set for a wishlist.
func (s *Store) UpdateKeywords(ctx context.Context, id int64, kw keyword.Set) error {
	data, err := json.Marshal(kw)
	if err != nil {
		return fmt.Errorf("wishlist: marshal keywords: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE wishlists SET keywords = $1, updated_at = NOW() WHERE id = $2`, data, id)
	if err != nil {
		return fmt.Errorf("wishlist: update keywords for %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateMatchStatus sets the match status for a wishlist.
func (s *Store) UpdateMatchStatus(ctx context.Context, id int64, status MatchStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE wishlists SET match_status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("wishlist: update match status for %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a wishlist; its match results go with it via the
// ON DELETE CASCADE constraint.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM wishlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("wishlist: delete %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
