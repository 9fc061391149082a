package matching

import (
	"context"
	"encoding/json"
	"log"

	"github.com/OpenProtects/willing-old-sell/internal/keyword"
	"github.com/OpenProtects/willing-old-sell/internal/match"
	"github.com/OpenProtects/willing-old-sell/internal/messaging"
	"github.com/OpenProtects/willing-old-sell/internal/wishlist"
)

// WishlistEvent is the NATS payload published by the wishlist handlers on
// create, update, and explicit rematch.
type WishlistEvent struct {
	WishlistID int64 `json:"wishlist_id"`
}

// Service consumes wishlist lifecycle events and runs matching synchronously
// for each one. Creation and update re-extract the keyword set first; update
// additionally resets the match status to pending before the run, since the
// wishlist's matching-relevant fields may have changed.
type Service struct {
	matcher   *Matcher
	wishlists WishlistStore
	extractor *keyword.Extractor
	nats      *messaging.Client
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewService creates the event-driven matching service.
func NewService(matcher *Matcher, wishlists WishlistStore, extractor *keyword.Extractor, nats *messaging.Client) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		matcher:   matcher,
		wishlists: wishlists,
		extractor: extractor,
		nats:      nats,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start subscribes to the wishlist event subjects.
func (s *Service) Start() error {
	if err := s.nats.SubscribeWishlistCreated(s.handle("created", s.OnCreated)); err != nil {
		return err
	}
	if err := s.nats.SubscribeWishlistUpdated(s.handle("updated", s.OnUpdated)); err != nil {
		return err
	}
	if err := s.nats.SubscribeWishlistRematch(s.handle("rematch", s.OnRematch)); err != nil {
		return err
	}

	log.Println("[matcher] service started")
	return nil
}

// Stop cancels in-flight runs.
func (s *Service) Stop() {
	s.cancel()
	log.Println("[matcher] service stopped")
}

// handle adapts an On* method into a NATS data handler.
func (s *Service) handle(kind string, fn func(ctx context.Context, wishlistID int64) ([]match.Result, error)) func(data []byte) {
	return func(data []byte) {
		var event WishlistEvent
		if err := json.Unmarshal(data, &event); err != nil {
			log.Printf("[matcher] invalid %s event: %v", kind, err)
			return
		}
		if _, err := fn(s.ctx, event.WishlistID); err != nil {
			log.Printf("[matcher] %s wishlist=%d: %v", kind, event.WishlistID, err)
		}
	}
}

// OnCreated extracts the initial keyword set and runs matching.
func (s *Service) OnCreated(ctx context.Context, wishlistID int64) ([]match.Result, error) {
	w, err := s.refreshKeywords(ctx, wishlistID)
	if err != nil {
		return nil, err
	}
	return s.matcher.RunMatching(ctx, w)
}

// OnUpdated re-extracts keywords, resets the match status to pending, and
// runs matching. The pending transition is edit-triggered only; a run that
// finds nothing never resets the status itself.
func (s *Service) OnUpdated(ctx context.Context, wishlistID int64) ([]match.Result, error) {
	w, err := s.refreshKeywords(ctx, wishlistID)
	if err != nil {
		return nil, err
	}
	if err := s.wishlists.UpdateMatchStatus(ctx, w.ID, wishlist.StatusPending); err != nil {
		return nil, err
	}
	w.MatchStatus = wishlist.StatusPending
	return s.matcher.RunMatching(ctx, w)
}

// OnRematch reruns matching against the current catalog without touching
// the stored keyword set.
func (s *Service) OnRematch(ctx context.Context, wishlistID int64) ([]match.Result, error) {
	w, err := s.wishlists.GetByID(ctx, wishlistID)
	if err != nil {
		return nil, err
	}
	return s.matcher.RunMatching(ctx, w)
}

// refreshKeywords recomputes and persists the keyword set from the
// wishlist's current name and description.
func (s *Service) refreshKeywords(ctx context.Context, wishlistID int64) (*wishlist.Wishlist, error) {
	w, err := s.wishlists.GetByID(ctx, wishlistID)
	if err != nil {
		return nil, err
	}

	keywords := s.extractor.Extract(w.SearchText())
	if err := s.wishlists.UpdateKeywords(ctx, w.ID, keywords); err != nil {
		return nil, err
	}
	w.Keywords = keywords
	return w, nil
}
