// Package dmp implements veritas.Differ on the diff-match-patch algorithm.
// It runs in linear space, so it serves texts too large for the LCS table.
package dmp

import (
	"unicode/utf8"

	"github.com/fwojciec/veritas"
	"github.com/fwojciec/veritas/worddiff"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Compile-time interface verification.
var _ veritas.Differ = (*Differ)(nil)

// Differ computes word-level diffs by mapping each distinct token to a rune
// and diffing the rune strings.
type Differ struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewDiffer creates a Differ with no timeout.
func NewDiffer() *Differ {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	return &Differ{dmp: dmp}
}

// Diff returns one segment per token, like worddiff.Differ. The alignment may
// differ from the LCS one, but the segments always reconstruct both inputs.
func (d *Differ) Diff(original, revised string) []veritas.DiffSegment {
	var table tokenTable
	a := table.encode(worddiff.Tokenize(original))
	b := table.encode(worddiff.Tokenize(revised))

	diffs := d.dmp.DiffMainRunes(a, b, false)
	diffs = d.dmp.DiffCleanupMerge(diffs)

	var segs []veritas.DiffSegment
	for _, diff := range diffs {
		var kind veritas.DiffKind
		switch diff.Type {
		case diffmatchpatch.DiffEqual:
			kind = veritas.DiffSame
		case diffmatchpatch.DiffDelete:
			kind = veritas.DiffRemoved
		case diffmatchpatch.DiffInsert:
			kind = veritas.DiffAdded
		}
		for _, r := range diff.Text {
			segs = append(segs, veritas.DiffSegment{Kind: kind, Value: table.decode(r)})
		}
	}
	return segs
}

// tokenTable interns tokens as runes, skipping the surrogate range so every
// rune survives a round trip through a Go string.
type tokenTable struct {
	tokens []string
	index  map[string]rune
}

const surrogateMin, surrogateMax = 0xD800, 0xDFFF

func (t *tokenTable) encode(tokens []string) []rune {
	if t.index == nil {
		t.index = make(map[string]rune)
	}
	out := make([]rune, len(tokens))
	for i, tok := range tokens {
		r, ok := t.index[tok]
		if !ok {
			r = runeFor(len(t.tokens))
			t.tokens = append(t.tokens, tok)
			t.index[tok] = r
		}
		out[i] = r
	}
	return out
}

func (t *tokenTable) decode(r rune) string {
	i := int(r)
	if i > surrogateMax {
		i -= surrogateMax - surrogateMin + 1
	}
	return t.tokens[i]
}

func runeFor(i int) rune {
	r := rune(i)
	if r >= surrogateMin {
		r += surrogateMax - surrogateMin + 1
	}
	if r > utf8.MaxRune {
		panic("dmp: too many distinct tokens")
	}
	return r
}
