package keyword

import (
	"encoding/json"
	"sort"
)

// Set is a deduplicated collection of keywords. Internally it is a plain
// set; it serializes to a sorted JSON array so the persisted form is stable
// regardless of insertion order.
type Set map[string]struct{}

// NewSet builds a Set from the given words.
func NewSet(words ...string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Add inserts a word into the set.
func (s Set) Add(word string) {
	s[word] = struct{}{}
}

// Has reports whether the word is in the set.
func (s Set) Has(word string) bool {
	_, ok := s[word]
	return ok
}

// Len returns the number of distinct keywords.
func (s Set) Len() int {
	return len(s)
}

// IntersectCount returns the number of keywords present in both sets.
func (s Set) IntersectCount(other Set) int {
	// Iterate the smaller set.
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	n := 0
	for w := range small {
		if _, ok := large[w]; ok {
			n++
		}
	}
	return n
}

// Slice returns the keywords as a sorted slice.
func (s Set) Slice() []string {
	words := make([]string, 0, len(s))
	for w := range s {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// MarshalJSON encodes the set as a sorted JSON array.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

// UnmarshalJSON decodes a JSON array into the set, collapsing duplicates.
func (s *Set) UnmarshalJSON(data []byte) error {
	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return err
	}
	*s = NewSet(words...)
	return nil
}
