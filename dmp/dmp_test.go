package dmp_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/veritas"
	"github.com/fwojciec/veritas/dmp"
	"github.com/fwojciec/veritas/worddiff"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestDiffer_Diff(t *testing.T) {
	t.Parallel()

	d := dmp.NewDiffer()

	got := d.Diff("The cat sat", "The dog sat")

	want := []veritas.DiffSegment{
		{Kind: veritas.DiffSame, Value: "The"},
		{Kind: veritas.DiffSame, Value: " "},
		{Kind: veritas.DiffRemoved, Value: "cat"},
		{Kind: veritas.DiffAdded, Value: "dog"},
		{Kind: veritas.DiffSame, Value: " "},
		{Kind: veritas.DiffSame, Value: "sat"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Diff mismatch (-want +got):\n%s", diff)
	}
}

func TestDiffer_Diff_Empty(t *testing.T) {
	t.Parallel()

	d := dmp.NewDiffer()

	assert.Empty(t, d.Diff("", ""))
	assert.Equal(t, []veritas.DiffSegment{{Kind: veritas.DiffAdded, Value: "new"}}, d.Diff("", "new"))
	assert.Equal(t, []veritas.DiffSegment{{Kind: veritas.DiffRemoved, Value: "old"}}, d.Diff("old", ""))
}

func TestDiffer_Diff_Reconstructs(t *testing.T) {
	t.Parallel()

	d := dmp.NewDiffer()
	pairs := [][2]string{
		{"the quick brown fox", "the slow red fox"},
		{"a b c d e", "e d c b a"},
		{"  leading and trailing  ", "leading\tand\ntrailing"},
		{"naïve café", "naive cafe"},
		{"It is worth noting that, in conclusion, cats sleep.", "Cats sleep. A lot."},
	}

	for _, p := range pairs {
		got := d.Diff(p[0], p[1])
		assert.Equal(t, p[0], veritas.OriginalText(got), "original of %q", p)
		assert.Equal(t, p[1], veritas.RevisedText(got), "revised of %q", p)
	}
}

func TestDiffer_Diff_ManyDistinctTokens(t *testing.T) {
	t.Parallel()

	// Enough distinct words to push token runes past the surrogate range.
	words := make([]string, 0, 60000)
	for i := range 60000 {
		words = append(words, fmt.Sprintf("w%d", i))
	}
	original := strings.Join(words, " ")
	revised := strings.Join(words[1:], " ") + " tail"

	got := dmp.NewDiffer().Diff(original, revised)

	assert.Equal(t, original, veritas.OriginalText(got))
	assert.Equal(t, revised, veritas.RevisedText(got))
	assert.Greater(t, len(worddiff.Tokenize(original)), 0xD800)
}
