package bubbletea_test

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/veritas"
	"github.com/fwojciec/veritas/bubbletea"
	"github.com/fwojciec/veritas/highlight"
	dv "github.com/fwojciec/veritas/lipgloss"
	"github.com/fwojciec/veritas/worddiff"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainRenderer() *bubbletea.Renderer {
	return bubbletea.NewRenderer(
		bubbletea.WithRenderer(lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.Ascii))),
	)
}

// colorRenderer forces true color. Output options are ignored when the writer
// is not a terminal, so the profile is set after construction.
func colorRenderer() *bubbletea.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	return bubbletea.NewRenderer(
		bubbletea.WithRenderer(r),
		bubbletea.WithTheme(dv.DefaultTheme()),
	)
}

func TestRenderer_Diff(t *testing.T) {
	t.Parallel()

	t.Run("plain output marks changes", func(t *testing.T) {
		t.Parallel()

		segs := []veritas.DiffSegment{
			{Kind: veritas.DiffSame, Value: "The "},
			{Kind: veritas.DiffRemoved, Value: "cat"},
			{Kind: veritas.DiffAdded, Value: "dog"},
			{Kind: veritas.DiffSame, Value: " sat"},
		}

		out := plainRenderer().Diff(segs)

		assert.Equal(t, "The [-cat-]{+dog+} sat", out)
	})

	t.Run("colored output keeps the text", func(t *testing.T) {
		t.Parallel()

		segs := []veritas.DiffSegment{
			{Kind: veritas.DiffSame, Value: "The "},
			{Kind: veritas.DiffAdded, Value: "dog"},
		}

		out := colorRenderer().Diff(segs)

		assert.Contains(t, out, "\x1b[", "should contain ANSI escapes")
		assert.Contains(t, out, "dog")
		assert.NotContains(t, out, "{+", "markers are only used without color")
	})

	t.Run("multi-line values keep their line breaks", func(t *testing.T) {
		t.Parallel()

		segs := []veritas.DiffSegment{
			{Kind: veritas.DiffSame, Value: "first\n\nsecond"},
		}

		out := plainRenderer().Diff(segs)

		assert.Equal(t, "first\n\nsecond", out)
	})

	t.Run("empty input renders nothing", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, plainRenderer().Diff(nil))
	})
}

func TestRenderer_Highlight(t *testing.T) {
	t.Parallel()

	segs := []veritas.HighlightSegment{
		{Kind: veritas.HighlightPlain, Value: "It is "},
		{Kind: veritas.HighlightMarked, Value: "worth noting"},
		{Kind: veritas.HighlightPlain, Value: " that."},
	}

	out := plainRenderer().Highlight(segs)

	assert.Equal(t, "It is [[worth noting]] that.", out)
}

func TestRenderer_Detection(t *testing.T) {
	t.Parallel()

	result := &veritas.DetectionResult{
		Score:         85,
		Confidence:    90,
		Label:         "Very Likely AI",
		Analysis:      "Uniform sentence length.",
		DetectedModel: "GPT-4",
		Phrases:       []string{"Moreover"},
	}
	input := "The cat sat. Moreover, it slept."
	segs := highlight.NewSegmenter().Highlight(input, result.Phrases)

	out := plainRenderer().Detection(result, segs)

	assert.Contains(t, out, "AI Detection")
	assert.Contains(t, out, "85% AI")
	assert.Contains(t, out, "["+strings.Repeat("#", 17)+strings.Repeat(".", 3)+"]")
	assert.Contains(t, out, "Very Likely AI")
	assert.Contains(t, out, "Confidence 90%")
	assert.Contains(t, out, "Model GPT-4")
	assert.Contains(t, out, "Uniform sentence length.")
	assert.Contains(t, out, "The cat sat. [[Moreover]], it slept.")
	assert.Contains(t, out, "1 passage highlighted")
}

func TestRenderer_Detection_OmitsEmptyParts(t *testing.T) {
	t.Parallel()

	result := &veritas.DetectionResult{Score: 10, Label: "Likely Human"}

	out := plainRenderer().Detection(result, nil)

	assert.Contains(t, out, "10% AI")
	assert.Contains(t, out, "[##"+strings.Repeat(".", 18)+"]")
	assert.NotContains(t, out, "Confidence")
	assert.NotContains(t, out, "Model")
	assert.NotContains(t, out, "Highlighted input")
}

func TestRenderer_Humanize(t *testing.T) {
	t.Parallel()

	result := &veritas.HumanizeResult{
		OriginalText:   "The cat sat",
		HumanizedText:  "The dog sat",
		ChangesSummary: "Swapped the animal.",
	}
	segs := veritas.CoalesceDiff(worddiff.NewDiffer().Diff(result.OriginalText, result.HumanizedText))

	out := plainRenderer().Humanize(result, segs)

	assert.Contains(t, out, "Humanized Text")
	assert.Contains(t, out, "The dog sat")
	assert.Contains(t, out, "The [-cat-]{+dog+} sat")
	assert.Contains(t, out, "1 added  ·  1 removed  ·  2 unchanged")
	assert.Contains(t, out, "Swapped the animal.")
}

func TestRenderer_Item(t *testing.T) {
	t.Parallel()

	differ := worddiff.NewDiffer()
	highlighter := highlight.NewSegmenter()

	t.Run("humanize item shows coalesced diff", func(t *testing.T) {
		t.Parallel()

		item := veritas.HistoryItem{
			Mode:  veritas.ModeHumanize,
			Input: "a b c",
			Humanize: &veritas.HumanizeResult{
				OriginalText:  "a b c",
				HumanizedText: "a x y c",
			},
		}

		out := plainRenderer().Item(item, differ, highlighter)

		assert.Contains(t, out, "a [-b-]{+x y+} c")
	})

	t.Run("detection item highlights input", func(t *testing.T) {
		t.Parallel()

		item := veritas.HistoryItem{
			Mode:  veritas.ModeDetect,
			Input: "delve into it",
			Detection: &veritas.DetectionResult{
				Score:   75,
				Label:   "Likely AI",
				Phrases: []string{"delve"},
			},
		}

		out := plainRenderer().Item(item, differ, highlighter)

		assert.Contains(t, out, "[[delve]] into it")
	})

	t.Run("item without result", func(t *testing.T) {
		t.Parallel()

		out := plainRenderer().Item(veritas.HistoryItem{Mode: veritas.ModeDetect}, differ, highlighter)

		assert.Equal(t, "(no result)\n", out)
	})
}

func TestRenderer_Tokens(t *testing.T) {
	t.Parallel()

	tokens := []veritas.Token{
		{Text: `"score"`, Style: veritas.Style{Foreground: "#89b4fa", Bold: true}},
		{Text: ": "},
		{Text: "85", Style: veritas.Style{Foreground: "#fab387"}},
	}

	plain := plainRenderer().Tokens(tokens)
	colored := colorRenderer().Tokens(tokens)

	assert.Equal(t, `"score": 85`, plain)
	require.Contains(t, colored, "\x1b[")
	assert.Contains(t, colored, "85")
}

func TestRenderer_WrapsAnalysis(t *testing.T) {
	t.Parallel()

	r := bubbletea.NewRenderer(
		bubbletea.WithRenderer(lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.Ascii))),
		bubbletea.WithWidth(20),
	)
	result := &veritas.DetectionResult{
		Score:    50,
		Label:    "Mixed",
		Analysis: "one two three four five six seven eight nine ten",
	}

	out := r.Detection(result, nil)

	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "one") || strings.Contains(line, "ten") {
			assert.LessOrEqual(t, lipgloss.Width(line), 20)
		}
	}
}
