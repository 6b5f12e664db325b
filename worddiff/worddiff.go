// Package worddiff computes word-level diffs of prose using a longest common
// subsequence alignment over whitespace-preserving tokens.
package worddiff

import (
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/veritas"
)

// Compile-time interface verification.
var _ veritas.Differ = (*Differ)(nil)

// DefaultMaxCells caps the alignment table checked by DiffChecked.
// 4M cells is roughly 2000x2000 tokens, or 32MB of table.
const DefaultMaxCells = 4 * 1024 * 1024

// Differ tokenizes strings and computes word-level diffs.
type Differ struct {
	maxCells int
}

// Option configures a Differ.
type Option func(*Differ)

// WithMaxCells sets the largest alignment table DiffChecked will build.
// A value <= 0 disables the check.
func WithMaxCells(n int) Option {
	return func(d *Differ) {
		d.maxCells = n
	}
}

// NewDiffer creates a new Differ instance.
func NewDiffer(opts ...Option) *Differ {
	d := &Differ{maxCells: DefaultMaxCells}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Tokenize splits s into tokens with the package-level Tokenize.
func (d *Differ) Tokenize(s string) []string {
	return Tokenize(s)
}

// Tokenize splits s into alternating runs of whitespace and non-whitespace.
// Joining the tokens gives back s. The empty string has no tokens.
func Tokenize(s string) []string {
	if len(s) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(s)/4+1)
	start := 0
	r, _ := utf8.DecodeRuneInString(s)
	inSpace := isSpace(r)

	for i, r := range s {
		if sp := isSpace(r); sp != inSpace {
			tokens = append(tokens, s[start:i])
			start = i
			inSpace = sp
		}
	}
	return append(tokens, s[start:])
}

// isSpace matches the whitespace class used for tokenizing: Unicode White_Space
// minus NEL, plus the byte order mark.
func isSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

// Diff returns one segment per token. Same and Removed segments rebuild
// original; Same and Added segments rebuild revised. Adjacent segments of the
// same kind are not merged; use veritas.CoalesceDiff for that.
func (d *Differ) Diff(original, revised string) []veritas.DiffSegment {
	return align(d.Tokenize(original), d.Tokenize(revised))
}

// DiffChecked is Diff with a size guard: it returns veritas.ErrTooLarge
// instead of building an alignment table over the configured cap.
func (d *Differ) DiffChecked(original, revised string) ([]veritas.DiffSegment, error) {
	oldTokens, newTokens := d.Tokenize(original), d.Tokenize(revised)
	if d.maxCells > 0 && (len(oldTokens)+1)*(len(newTokens)+1) > d.maxCells {
		return nil, veritas.ErrTooLarge
	}
	return align(oldTokens, newTokens), nil
}

// align computes the LCS table of two token sequences and walks it back from
// the bottom-right corner. On ties the walk takes the insertion.
func align(oldTokens, newTokens []string) []veritas.DiffSegment {
	m, n := len(oldTokens), len(newTokens)
	if m == 0 && n == 0 {
		return nil
	}

	// Allocate DP table as a flat slice (single allocation)
	// table[i*(n+1)+j] corresponds to C[i][j]
	stride := n + 1
	table := make([]int, (m+1)*stride)

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if oldTokens[i-1] == newTokens[j-1] {
				table[i*stride+j] = table[(i-1)*stride+j-1] + 1
			} else if up, left := table[(i-1)*stride+j], table[i*stride+j-1]; up > left {
				table[i*stride+j] = up
			} else {
				table[i*stride+j] = left
			}
		}
	}

	segs := make([]veritas.DiffSegment, 0, m+n-table[m*stride+n])
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && oldTokens[i-1] == newTokens[j-1]:
			segs = append(segs, veritas.DiffSegment{Kind: veritas.DiffSame, Value: oldTokens[i-1]})
			i--
			j--
		case j > 0 && (i == 0 || table[i*stride+j-1] >= table[(i-1)*stride+j]):
			segs = append(segs, veritas.DiffSegment{Kind: veritas.DiffAdded, Value: newTokens[j-1]})
			j--
		default:
			segs = append(segs, veritas.DiffSegment{Kind: veritas.DiffRemoved, Value: oldTokens[i-1]})
			i--
		}
	}

	// Reverse (backtracking gives them in reverse order)
	for left, right := 0, len(segs)-1; left < right; left, right = left+1, right-1 {
		segs[left], segs[right] = segs[right], segs[left]
	}
	return segs
}
