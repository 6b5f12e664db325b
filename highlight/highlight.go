// Package highlight marks literal occurrences of phrases inside a source text.
package highlight

import (
	"strings"

	"github.com/fwojciec/veritas"
)

// Compile-time interface verification.
var _ veritas.Highlighter = (*Segmenter)(nil)

// Segmenter splits a source text into plain and highlighted segments.
type Segmenter struct{}

// NewSegmenter creates a new Segmenter.
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// Highlight marks every non-overlapping, case-sensitive occurrence of each
// phrase in source. Phrases are applied in order and only ever split text that
// is still plain, so an earlier phrase keeps any span it claimed even when a
// later phrase would match inside it. Empty phrases are skipped.
//
// The result concatenates back to source and is ordered by position in
// source. An empty source yields no segments.
func (s *Segmenter) Highlight(source string, phrases []string) []veritas.HighlightSegment {
	if source == "" {
		return nil
	}

	segs := []veritas.HighlightSegment{{Kind: veritas.HighlightPlain, Value: source}}
	for _, phrase := range phrases {
		if phrase == "" {
			continue
		}
		segs = claim(segs, phrase)
	}
	return segs
}

// claim splits the plain segments of segs around occurrences of phrase.
func claim(segs []veritas.HighlightSegment, phrase string) []veritas.HighlightSegment {
	out := make([]veritas.HighlightSegment, 0, len(segs))
	for _, seg := range segs {
		if seg.Kind != veritas.HighlightPlain || !strings.Contains(seg.Value, phrase) {
			out = append(out, seg)
			continue
		}

		rest := seg.Value
		for {
			i := strings.Index(rest, phrase)
			if i < 0 {
				break
			}
			if i > 0 {
				out = append(out, veritas.HighlightSegment{Kind: veritas.HighlightPlain, Value: rest[:i]})
			}
			out = append(out, veritas.HighlightSegment{Kind: veritas.HighlightMarked, Value: rest[i : i+len(phrase)]})
			rest = rest[i+len(phrase):]
		}
		if rest != "" {
			out = append(out, veritas.HighlightSegment{Kind: veritas.HighlightPlain, Value: rest})
		}
	}
	return out
}
