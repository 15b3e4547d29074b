package chunker

import (
	"errors"
	"strings"
	"testing"
)

func TestSplitInvalidMaxChars(t *testing.T) {
	for _, max := range []int{0, -1, -100} {
		if _, err := Split("some text", max); !errors.Is(err, ErrInvalidMaxChars) {
			t.Errorf("Split(max=%d) err = %v, want ErrInvalidMaxChars", max, err)
		}
	}
}

func TestSplitEmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t \n"} {
		segs, err := Split(text, 100)
		if err != nil {
			t.Fatalf("Split(%q): %v", text, err)
		}
		if len(segs) != 0 {
			t.Errorf("Split(%q) = %d segments, want 0", text, len(segs))
		}
	}
}

func TestSplitReconstructsInput(t *testing.T) {
	texts := []string{
		"One sentence.",
		"First sentence here. Second one follows! Third asks a question? Fourth ends.\n\nNew paragraph with more words in it, several clauses, and a finish.",
		strings.Repeat("word ", 500),
		"no punctuation at all just a very long run of words " + strings.Repeat("more words ", 100),
	}
	for _, text := range texts {
		for _, max := range []int{10, 50, 100, 4000} {
			segs, err := Split(text, max)
			if err != nil {
				t.Fatalf("Split(max=%d): %v", max, err)
			}
			got := strings.Join(strings.Fields(strings.Join(joinContents(segs), " ")), " ")
			want := strings.Join(strings.Fields(text), " ")
			if got != want {
				t.Errorf("Split(max=%d) does not reconstruct input:\ngot  %q\nwant %q", max, got, want)
			}
		}
	}
}

func TestSplitRespectsMaxChars(t *testing.T) {
	text := strings.Repeat("Some sentences to split. ", 100)
	for _, max := range []int{1, 7, 40, 120} {
		segs, err := Split(text, max)
		if err != nil {
			t.Fatalf("Split(max=%d): %v", max, err)
		}
		for _, s := range segs {
			if n := len([]rune(s.Content)); n > max {
				t.Errorf("Split(max=%d) segment %d has %d runes", max, s.Index, n)
			}
			if s.Content == "" {
				t.Errorf("Split(max=%d) produced empty segment %d", max, s.Index)
			}
		}
	}
}

func TestSplitIndexesContiguous(t *testing.T) {
	segs, err := Split(strings.Repeat("A sentence. ", 50), 40)
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range segs {
		if s.Index != i {
			t.Errorf("segment at position %d has index %d", i, s.Index)
		}
	}
}

// 250 characters with sentence breaks at positions 90 and 180 must split at
// those boundaries, not hard-cut at 100.
func TestSplitPrefersSentenceBoundaries(t *testing.T) {
	text := strings.Repeat("a", 89) + "." + strings.Repeat("b", 89) + "." + strings.Repeat("c", 70)
	segs, err := Split(text, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}
	if got := len([]rune(segs[0].Content)); got != 90 {
		t.Errorf("segment 0 length = %d, want 90", got)
	}
	if !strings.HasSuffix(segs[0].Content, ".") || !strings.HasSuffix(segs[1].Content, ".") {
		t.Error("segments 0 and 1 should end at sentence boundaries")
	}
	if got := len([]rune(segs[2].Content)); got != 70 {
		t.Errorf("segment 2 length = %d, want 70", got)
	}
}

// A single token longer than maxChars is force-split, never dropped.
func TestSplitOversizedToken(t *testing.T) {
	text := strings.Repeat("x", 500)
	segs, err := Split(text, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 5 {
		t.Fatalf("got %d segments, want 5", len(segs))
	}
	var total int
	for _, s := range segs {
		total += len(s.Content)
	}
	if total != 500 {
		t.Errorf("total runes after split = %d, want 500", total)
	}
}

func TestSplitIdempotent(t *testing.T) {
	text := strings.Repeat("Short sentence. Another one follows here. ", 30)
	first, err := Split(text, 80)
	if err != nil {
		t.Fatal(err)
	}
	rejoined := strings.Join(joinContents(first), " ")
	second, err := Split(rejoined, 80)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("segment count changed after rechunk: %d -> %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Content != second[i].Content {
			t.Errorf("segment %d changed after rechunk:\nfirst  %q\nsecond %q", i, first[i].Content, second[i].Content)
		}
	}
}

func joinContents(segs []Segment) []string {
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = s.Content
	}
	return out
}
