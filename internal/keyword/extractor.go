// Package keyword extracts search keywords from free-form wishlist and
// listing text. The corpus is primarily Chinese, so extraction relies on
// dictionary-based segmentation rather than whitespace splitting. The
// segmenter is pluggable; the default is backed by gse's embedded dictionary.
package keyword

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-ego/gse"
)

// minTokenRunes is the minimum token length (in runes) kept after
// segmentation. Single characters are too ambiguous to match on.
const minTokenRunes = 2

// Segmenter splits free text into word-level tokens.
type Segmenter interface {
	Segment(text string) []string
}

// GseSegmenter is the default Segmenter, backed by the gse dictionary
// segmenter with HMM enabled for out-of-vocabulary words.
type GseSegmenter struct {
	seg gse.Segmenter
}

// NewGseSegmenter loads the embedded dictionary and returns a ready segmenter.
func NewGseSegmenter() (*GseSegmenter, error) {
	var g GseSegmenter
	if err := g.seg.LoadDict(); err != nil {
		return nil, fmt.Errorf("keyword: load dictionary: %w", err)
	}
	return &g, nil
}

// Segment splits text into candidate tokens.
func (g *GseSegmenter) Segment(text string) []string {
	return g.seg.Cut(text, true)
}

// Extractor turns free text into a filtered keyword Set.
type Extractor struct {
	seg Segmenter
}

// NewExtractor returns an Extractor using the given segmenter.
func NewExtractor(seg Segmenter) *Extractor {
	return &Extractor{seg: seg}
}

// Extract segments the text and returns the deduplicated tokens that survive
// the length and stop-word filters. Empty or blank input yields an empty set;
// Extract never fails.
func (e *Extractor) Extract(text string) Set {
	keywords := make(Set)
	if strings.TrimSpace(text) == "" {
		return keywords
	}

	for _, token := range e.seg.Segment(text) {
		token = strings.TrimSpace(token)
		if utf8.RuneCountInString(token) < minTokenRunes {
			continue
		}
		if IsStopWord(token) {
			continue
		}
		keywords.Add(token)
	}
	return keywords
}
