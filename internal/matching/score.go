package matching

import (
	"math"

	"github.com/OpenProtects/willing-old-sell/internal/catalog"
	"github.com/OpenProtects/willing-old-sell/internal/keyword"
	"github.com/OpenProtects/willing-old-sell/internal/wishlist"
)

// Scoring weights. The three components sum to at most 0.85; the final
// score is clamped to 1.0 anyway so the weights can evolve independently.
const (
	keywordWeight  = 0.5  // keyword overlap
	categoryWeight = 0.2  // exact category match
	priceInRange   = 0.15 // price inside [min, max]
	priceNear      = 0.05 // under budget, or at most 20% over max
	priceOneBound  = 0.1  // satisfies the single bound that is set
	maxOvershoot   = 0.2  // tolerated (price-max)/max before zeroing out
)

// Scorer rates how well a listing satisfies a wishlist.
type Scorer struct {
	extractor *keyword.Extractor
}

// NewScorer creates a scorer that uses the given extractor to tokenize
// listing text.
func NewScorer(extractor *keyword.Extractor) *Scorer {
	return &Scorer{extractor: extractor}
}

// Score returns a similarity in [0, 1] built from three components:
// keyword overlap between the wishlist's keyword set and the listing's
// name+description, category equality, and price fit against the wishlist's
// bounds. Pure and deterministic for fixed inputs.
func (s *Scorer) Score(w *wishlist.Wishlist, l *catalog.Listing) float64 {
	score := 0.0

	goodsKeywords := s.extractor.Extract(l.Name + " " + l.Description)
	if n := w.Keywords.IntersectCount(goodsKeywords); n > 0 {
		score += keywordWeight * float64(n) / math.Max(float64(w.Keywords.Len()), 1)
	}

	if w.CategoryID != nil && l.CategoryID != nil && *w.CategoryID == *l.CategoryID {
		score += categoryWeight
	}

	score += priceComponent(w.MinPrice, w.MaxPrice, l.Price)

	return math.Min(score, 1.0)
}

// priceComponent evaluates price fit by which bounds are present.
func priceComponent(min, max *float64, price float64) float64 {
	switch {
	case min != nil && max != nil:
		switch {
		case price >= *min && price <= *max:
			return priceInRange
		case price < *min:
			// Under budget is tolerated, mildly penalized.
			return priceNear
		default:
			if overshoot := (price - *max) / *max; overshoot <= maxOvershoot {
				return priceNear
			}
			return 0
		}
	case min != nil:
		if price >= *min {
			return priceOneBound
		}
		return 0
	case max != nil:
		if price <= *max {
			return priceOneBound
		}
		return 0
	default:
		return 0
	}
}
