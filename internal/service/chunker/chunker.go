package chunker

import (
	"errors"
	"strings"
	"unicode"
)

// Segment is one bounded slice of the source text, submitted as a single
// synthesis request. Index defines playback order.
type Segment struct {
	Index   int
	Content string
}

// ErrInvalidMaxChars reports a non-positive chunk budget.
var ErrInvalidMaxChars = errors.New("chunker: max chars must be positive")

// boundaryWindow is how far back from the hard limit a split point is searched.
const boundaryWindow = 200

// Split cuts text into ordered segments of at most maxChars runes each.
// It accumulates greedily and prefers to cut right after a sentence boundary,
// then after any whitespace, within a trailing window; with no boundary in the
// window it hard-splits at maxChars. Joining the segments back reproduces the
// input text except for whitespace collapsed at the cut points. Empty input
// yields zero segments.
func Split(text string, maxChars int) ([]Segment, error) {
	if maxChars <= 0 {
		return nil, ErrInvalidMaxChars
	}

	runes := []rune(text)
	var segments []Segment
	for start := 0; start < len(runes); {
		for start < len(runes) && unicode.IsSpace(runes[start]) {
			start++
		}
		if start >= len(runes) {
			break
		}
		end := start + maxChars
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = splitPoint(runes, start, end)
		}
		if content := strings.TrimSpace(string(runes[start:end])); content != "" {
			segments = append(segments, Segment{Index: len(segments), Content: content})
		}
		start = end
	}
	return segments, nil
}

// splitPoint picks the cut position in (start, end], scanning backwards from
// the hard limit. Sentence boundaries win over plain whitespace; a cut lands
// right after the boundary rune so nothing is dropped.
func splitPoint(runes []rune, start, end int) int {
	lo := end - boundaryWindow
	if lo < start+1 {
		lo = start + 1
	}
	for i := end - 1; i >= lo; i-- {
		if isSentenceBoundary(runes[i]) {
			return i + 1
		}
	}
	for i := end - 1; i >= lo; i-- {
		if unicode.IsSpace(runes[i]) {
			return i + 1
		}
	}
	return end
}

func isSentenceBoundary(r rune) bool {
	switch r {
	case '\n', '.', '!', '?', ';', '。', '！', '？', '；', '…':
		return true
	default:
		return false
	}
}
