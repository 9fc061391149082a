package keyword

import (
	"strings"
	"testing"
)

// spaceSegmenter splits on whitespace. It stands in for the dictionary
// segmenter so the filtering rules can be tested deterministically.
type spaceSegmenter struct{}

func (spaceSegmenter) Segment(text string) []string {
	return strings.Fields(text)
}

func TestExtract_FiltersAndDeduplicates(t *testing.T) {
	e := NewExtractor(spaceSegmenter{})

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty input", "", nil},
		{"blank input", "   \t\n", nil},
		{"short tokens dropped", "a 数 高等数学", []string{"高等数学"}},
		{"stop words dropped", "求购 高等数学 教材 需要", []string{"教材", "高等数学"}},
		{"duplicates collapsed", "教材 教材 教材", []string{"教材"}},
		{"latin tokens kept", "iphone 充电器", []string{"iphone", "充电器"}},
		{"surrounding space trimmed", "  自行车  ", []string{"自行车"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			if got.Len() != len(tt.want) {
				t.Fatalf("Extract(%q) = %v, want %v", tt.text, got.Slice(), tt.want)
			}
			for _, w := range tt.want {
				if !got.Has(w) {
					t.Errorf("Extract(%q) missing %q, got %v", tt.text, w, got.Slice())
				}
			}
		})
	}
}

func TestExtract_TwoRuneMinimumCountsRunesNotBytes(t *testing.T) {
	e := NewExtractor(spaceSegmenter{})

	// 书包 is 2 runes / 6 bytes and must survive; 书 is 1 rune / 3 bytes
	// and must not.
	got := e.Extract("书 书包")
	if !got.Has("书包") {
		t.Errorf("expected 2-rune token to be kept, got %v", got.Slice())
	}
	if got.Has("书") {
		t.Errorf("expected 1-rune token to be dropped, got %v", got.Slice())
	}
}

func TestExtract_GseSegmenter(t *testing.T) {
	seg, err := NewGseSegmenter()
	if err != nil {
		t.Fatalf("NewGseSegmenter: %v", err)
	}
	e := NewExtractor(seg)

	got := e.Extract("求购 高等数学 教材 九成新")
	if got.Len() == 0 {
		t.Fatal("expected keywords from dictionary segmentation, got empty set")
	}
	if got.Has("求购") {
		t.Errorf("stop word 求购 leaked through: %v", got.Slice())
	}
	for w := range got {
		if IsStopWord(w) {
			t.Errorf("stop word %q in result %v", w, got.Slice())
		}
	}
}

func TestIsStopWord(t *testing.T) {
	for _, w := range []string{"的", "求购", "想要", "可以"} {
		if !IsStopWord(w) {
			t.Errorf("IsStopWord(%q) = false, want true", w)
		}
	}
	if IsStopWord("教材") {
		t.Error("IsStopWord(教材) = true, want false")
	}
}
