package match

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	_ "github.com/lib/pq"

	"github.com/OpenProtects/willing-old-sell/internal/keyword"
	"github.com/OpenProtects/willing-old-sell/internal/wishlist"
)

// setupTestStore connects to the database named by TEST_DATABASE_URL and
// creates one wishlist row for match records to hang off. Tests are skipped
// when the variable is unset; the schema is expected to be migrated.
func setupTestStore(t *testing.T) (*Store, int64, context.Context) {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("skipping: TEST_DATABASE_URL not set")
	}

	db, err := sql.Open("postgres", url)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		t.Skipf("skipping: Postgres not available: %v", err)
	}

	wishlists := wishlist.NewStore(db)
	w := &wishlist.Wishlist{UserID: 1001, Name: "吉他", Keywords: keyword.NewSet("吉他")}
	if err := wishlists.Create(ctx, w); err != nil {
		t.Fatalf("create wishlist: %v", err)
	}

	t.Cleanup(func() {
		// Cascade removes the match rows.
		wishlists.Delete(ctx, w.ID)
		db.Close()
	})

	return NewStore(db), w.ID, ctx
}

func TestStore_ReplaceAndList(t *testing.T) {
	store, wishlistID, ctx := setupTestStore(t)

	rows := []Result{
		{GoodsID: 11, GoodsName: "民谣吉他", GoodsPrice: 450, Score: 0.65},
		{GoodsID: 10, GoodsName: "吉他", GoodsPrice: 300, Score: 0.85},
		{GoodsID: 12, GoodsName: "吉他 配件", GoodsPrice: 30, Score: 0.65},
	}
	if err := store.Replace(ctx, wishlistID, rows); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	got, err := store.ListByWishlist(ctx, wishlistID)
	if err != nil {
		t.Fatalf("ListByWishlist: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d rows, want 3", len(got))
	}
	// Ordered by score descending, goods id ascending on ties.
	wantOrder := []int64{10, 11, 12}
	for i, r := range got {
		if r.GoodsID != wantOrder[i] {
			t.Errorf("row %d goods = %d, want %d", i, r.GoodsID, wantOrder[i])
		}
		if r.ID == 0 || r.CreatedAt.IsZero() {
			t.Errorf("row %d missing generated fields: %+v", i, r)
		}
		if r.IsRead {
			t.Errorf("row %d created already read", i)
		}
	}
}

func TestStore_ReplaceDropsPriorSet(t *testing.T) {
	store, wishlistID, ctx := setupTestStore(t)

	first := []Result{
		{GoodsID: 10, GoodsName: "吉他", GoodsPrice: 300, Score: 0.8},
		{GoodsID: 11, GoodsName: "民谣吉他", GoodsPrice: 450, Score: 0.6},
	}
	if err := store.Replace(ctx, wishlistID, first); err != nil {
		t.Fatalf("first Replace: %v", err)
	}

	second := []Result{{GoodsID: 30, GoodsName: "电吉他", GoodsPrice: 900, Score: 0.7}}
	if err := store.Replace(ctx, wishlistID, second); err != nil {
		t.Fatalf("second Replace: %v", err)
	}

	got, err := store.ListByWishlist(ctx, wishlistID)
	if err != nil {
		t.Fatalf("ListByWishlist: %v", err)
	}
	if len(got) != 1 || got[0].GoodsID != 30 {
		t.Errorf("rows = %+v, want only goods 30 from the second replace", got)
	}
}

func TestStore_ReplaceWithEmptySetClears(t *testing.T) {
	store, wishlistID, ctx := setupTestStore(t)

	seed := []Result{{GoodsID: 10, GoodsName: "吉他", GoodsPrice: 300, Score: 0.8}}
	if err := store.Replace(ctx, wishlistID, seed); err != nil {
		t.Fatalf("seed Replace: %v", err)
	}
	if err := store.Replace(ctx, wishlistID, nil); err != nil {
		t.Fatalf("empty Replace: %v", err)
	}

	got, err := store.ListByWishlist(ctx, wishlistID)
	if err != nil {
		t.Fatalf("ListByWishlist: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("rows = %+v, want empty set", got)
	}
}

func TestStore_MarkRead(t *testing.T) {
	store, wishlistID, ctx := setupTestStore(t)

	rows := []Result{{GoodsID: 10, GoodsName: "吉他", GoodsPrice: 300, Score: 0.8}}
	if err := store.Replace(ctx, wishlistID, rows); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	gotWishlist, err := store.MarkRead(ctx, rows[0].ID)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if gotWishlist != wishlistID {
		t.Errorf("MarkRead wishlist = %d, want %d", gotWishlist, wishlistID)
	}

	got, err := store.ListByWishlist(ctx, wishlistID)
	if err != nil {
		t.Fatalf("ListByWishlist: %v", err)
	}
	if len(got) != 1 || !got[0].IsRead {
		t.Errorf("rows = %+v, want the single row marked read", got)
	}
}

func TestStore_MarkReadNotFound(t *testing.T) {
	store, _, ctx := setupTestStore(t)

	if _, err := store.MarkRead(ctx, -1); !errors.Is(err, ErrNotFound) {
		t.Errorf("MarkRead error = %v, want ErrNotFound", err)
	}
}
