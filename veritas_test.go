package veritas_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/veritas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffKind_JSON(t *testing.T) {
	t.Parallel()

	t.Run("encodes segments with lowercase type names", func(t *testing.T) {
		t.Parallel()

		segs := []veritas.DiffSegment{
			{Kind: veritas.DiffSame, Value: "a"},
			{Kind: veritas.DiffAdded, Value: "b"},
			{Kind: veritas.DiffRemoved, Value: "c"},
		}

		data, err := json.Marshal(segs)

		require.NoError(t, err)
		assert.JSONEq(t, `[{"type":"same","value":"a"},{"type":"added","value":"b"},{"type":"removed","value":"c"}]`, string(data))
	})

	t.Run("decodes known names", func(t *testing.T) {
		t.Parallel()

		var seg veritas.DiffSegment
		require.NoError(t, json.Unmarshal([]byte(`{"type":"removed","value":"x"}`), &seg))

		assert.Equal(t, veritas.DiffSegment{Kind: veritas.DiffRemoved, Value: "x"}, seg)
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		t.Parallel()

		var seg veritas.DiffSegment
		err := json.Unmarshal([]byte(`{"type":"changed","value":"x"}`), &seg)

		assert.Error(t, err)
	})
}

func TestHighlightKind_JSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(veritas.HighlightSegment{Kind: veritas.HighlightMarked, Value: "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"highlighted","value":"x"}`, string(data))

	var seg veritas.HighlightSegment
	require.NoError(t, json.Unmarshal([]byte(`{"type":"plain","value":"y"}`), &seg))
	assert.Equal(t, veritas.HighlightPlain, seg.Kind)
	assert.Equal(t, "plain", seg.Kind.String())
}

func TestOriginalAndRevisedText(t *testing.T) {
	t.Parallel()

	segs := []veritas.DiffSegment{
		{Kind: veritas.DiffSame, Value: "The "},
		{Kind: veritas.DiffRemoved, Value: "cat"},
		{Kind: veritas.DiffAdded, Value: "dog"},
		{Kind: veritas.DiffSame, Value: " sat"},
	}

	assert.Equal(t, "The cat sat", veritas.OriginalText(segs))
	assert.Equal(t, "The dog sat", veritas.RevisedText(segs))
	assert.Equal(t, "", veritas.OriginalText(nil))
}

func TestCoalesceDiff(t *testing.T) {
	t.Parallel()

	t.Run("merges adjacent segments of the same kind", func(t *testing.T) {
		t.Parallel()

		segs := []veritas.DiffSegment{
			{Kind: veritas.DiffSame, Value: "a"},
			{Kind: veritas.DiffSame, Value: " "},
			{Kind: veritas.DiffRemoved, Value: "b"},
			{Kind: veritas.DiffRemoved, Value: " "},
			{Kind: veritas.DiffAdded, Value: "c"},
			{Kind: veritas.DiffSame, Value: "d"},
		}

		got := veritas.CoalesceDiff(segs)

		assert.Equal(t, []veritas.DiffSegment{
			{Kind: veritas.DiffSame, Value: "a "},
			{Kind: veritas.DiffRemoved, Value: "b "},
			{Kind: veritas.DiffAdded, Value: "c"},
			{Kind: veritas.DiffSame, Value: "d"},
		}, got)
		assert.Equal(t, veritas.OriginalText(segs), veritas.OriginalText(got))
		assert.Equal(t, veritas.RevisedText(segs), veritas.RevisedText(got))
	})

	t.Run("does not modify its input", func(t *testing.T) {
		t.Parallel()

		segs := []veritas.DiffSegment{
			{Kind: veritas.DiffSame, Value: "a"},
			{Kind: veritas.DiffSame, Value: "b"},
		}

		veritas.CoalesceDiff(segs)

		assert.Equal(t, "a", segs[0].Value)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, veritas.CoalesceDiff(nil))
	})
}

func TestCoalesceHighlight(t *testing.T) {
	t.Parallel()

	segs := []veritas.HighlightSegment{
		{Kind: veritas.HighlightMarked, Value: "ab"},
		{Kind: veritas.HighlightMarked, Value: "ab"},
		{Kind: veritas.HighlightPlain, Value: " "},
	}

	got := veritas.CoalesceHighlight(segs)

	assert.Equal(t, []veritas.HighlightSegment{
		{Kind: veritas.HighlightMarked, Value: "abab"},
		{Kind: veritas.HighlightPlain, Value: " "},
	}, got)
	assert.Equal(t, veritas.SourceText(segs), veritas.SourceText(got))
}

func TestDiffStatsOf(t *testing.T) {
	t.Parallel()

	segs := []veritas.DiffSegment{
		{Kind: veritas.DiffSame, Value: "The"},
		{Kind: veritas.DiffSame, Value: " "},
		{Kind: veritas.DiffRemoved, Value: "cat"},
		{Kind: veritas.DiffAdded, Value: "dog"},
		{Kind: veritas.DiffAdded, Value: "  "},
		{Kind: veritas.DiffSame, Value: "sat"},
	}

	st := veritas.DiffStatsOf(segs)

	assert.Equal(t, veritas.DiffStats{Same: 2, Added: 1, Removed: 1}, st)
	assert.True(t, st.Changed())
	assert.False(t, veritas.DiffStats{Same: 3}.Changed())
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", veritas.ErrorCode(nil))
		assert.Equal(t, "", veritas.ErrorMessage(nil))
	})

	t.Run("wrapped domain error", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("loading: %w", veritas.Errorf(veritas.ENOTFOUND, "item %q not found", "x"))

		assert.Equal(t, veritas.ENOTFOUND, veritas.ErrorCode(err))
		assert.Equal(t, `item "x" not found`, veritas.ErrorMessage(err))
	})

	t.Run("other errors are internal", func(t *testing.T) {
		t.Parallel()

		err := errors.New("boom")

		assert.Equal(t, veritas.EINTERNAL, veritas.ErrorCode(err))
		assert.Contains(t, veritas.ErrorMessage(err), "Please try again")
	})
}

func TestValidateText(t *testing.T) {
	t.Parallel()

	assert.NoError(t, veritas.ValidateText("text", "héllo"))
	assert.NoError(t, veritas.ValidateText("text", ""))

	err := veritas.ValidateText("original", "bad \xff byte")
	require.Error(t, err)
	assert.Equal(t, veritas.EINVALID, veritas.ErrorCode(err))
	assert.Contains(t, veritas.ErrorMessage(err), "original")

	assert.NoError(t, veritas.ValidatePhrases(nil))
	assert.Equal(t, veritas.EINVALID, veritas.ErrorCode(veritas.ValidatePhrases([]string{"ok", "\xfe"})))
}

func TestDetectionResult_Validate(t *testing.T) {
	t.Parallel()

	valid := veritas.DetectionResult{Score: 85, Confidence: 70, Label: "Likely AI"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		result veritas.DetectionResult
	}{
		{"score too high", veritas.DetectionResult{Score: 101, Label: "x"}},
		{"score negative", veritas.DetectionResult{Score: -1, Label: "x"}},
		{"confidence too high", veritas.DetectionResult{Score: 10, Confidence: 150, Label: "x"}},
		{"missing label", veritas.DetectionResult{Score: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.result.Validate()

			assert.Equal(t, veritas.EINVALID, veritas.ErrorCode(err))
		})
	}
}

func TestDetectionResult_JSONUsesOriginalFieldNames(t *testing.T) {
	t.Parallel()

	var r veritas.DetectionResult
	require.NoError(t, json.Unmarshal([]byte(`{"score":90,"confidence":80,"label":"Very Likely AI","analysis":"uniform","highlightedSentences":["a","b"]}`), &r))

	assert.Equal(t, []string{"a", "b"}, r.Phrases)
	assert.Equal(t, 90, r.Score)
}

func TestBandFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, veritas.BandHuman, veritas.BandFor(0))
	assert.Equal(t, veritas.BandHuman, veritas.BandFor(29))
	assert.Equal(t, veritas.BandMixed, veritas.BandFor(30))
	assert.Equal(t, veritas.BandMixed, veritas.BandFor(69))
	assert.Equal(t, veritas.BandAI, veritas.BandFor(70))
	assert.Equal(t, veritas.BandAI, veritas.BandFor(100))
	assert.Equal(t, "Mixed", veritas.BandMixed.String())
}

func TestSettings_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, veritas.DefaultSettings().Validate())

	tests := []struct {
		name   string
		mutate func(*veritas.Settings)
	}{
		{"unknown model", func(s *veritas.Settings) { s.Model = "gpt-4" }},
		{"temperature above 1", func(s *veritas.Settings) { s.Temperature = 1.5 }},
		{"temperature below 0", func(s *veritas.Settings) { s.Temperature = -0.1 }},
		{"max tokens too small", func(s *veritas.Settings) { s.MaxTokens = 99 }},
		{"max tokens too large", func(s *veritas.Settings) { s.MaxTokens = 8001 }},
		{"unknown backend", func(s *veritas.Settings) { s.HistoryBackend = "redis" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := veritas.DefaultSettings()
			tt.mutate(&s)

			assert.Equal(t, veritas.EINVALID, veritas.ErrorCode(s.Validate()))
		})
	}
}

func TestSettings_Set(t *testing.T) {
	t.Parallel()

	t.Run("assigns parsed values", func(t *testing.T) {
		t.Parallel()

		s := veritas.DefaultSettings()
		require.NoError(t, s.Set("model", "gemini-2.0-flash"))
		require.NoError(t, s.Set("temperature", "0.9"))
		require.NoError(t, s.Set("max_tokens", "8000"))
		require.NoError(t, s.Set("enable_history", "false"))
		require.NoError(t, s.Set("history_backend", "sqlite"))

		assert.Equal(t, veritas.Settings{
			Model:          "gemini-2.0-flash",
			Temperature:    0.9,
			MaxTokens:      8000,
			EnableHistory:  false,
			HistoryBackend: veritas.BackendSQLite,
		}, s)
	})

	tests := []struct {
		key, value string
	}{
		{"temperature", "warm"},
		{"temperature", "2"},
		{"max_tokens", "1.5"},
		{"max_tokens", "10"},
		{"enable_history", "maybe"},
		{"model", "gpt-4"},
		{"colour", "red"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Parallel()

			s := veritas.DefaultSettings()
			err := s.Set(tt.key, tt.value)

			assert.Equal(t, veritas.EINVALID, veritas.ErrorCode(err))
			assert.Equal(t, veritas.DefaultSettings(), s, "settings are unchanged on error")
		})
	}
}

func TestAppendHistory(t *testing.T) {
	t.Parallel()

	t.Run("appends under the limit", func(t *testing.T) {
		t.Parallel()

		items := []veritas.HistoryItem{{ID: "1"}}

		got := veritas.AppendHistory(items, veritas.HistoryItem{ID: "2"})

		require.Len(t, got, 2)
		assert.Equal(t, "2", got[1].ID)
		assert.Len(t, items, 1, "input is not modified")
	})

	t.Run("keeps only the most recent items", func(t *testing.T) {
		t.Parallel()

		var items []veritas.HistoryItem
		for i := range 15 {
			items = veritas.AppendHistory(items, veritas.HistoryItem{ID: fmt.Sprint(i)})
		}

		require.Len(t, items, veritas.HistoryLimit)
		assert.Equal(t, "5", items[0].ID)
		assert.Equal(t, "14", items[len(items)-1].ID)
	})
}

func TestNewExport(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("detection", func(t *testing.T) {
		t.Parallel()

		item := veritas.HistoryItem{
			Mode:      veritas.ModeDetect,
			Input:     "some text",
			Detection: &veritas.DetectionResult{Score: 12, Label: "Likely Human"},
		}

		exp := veritas.NewExport(item, now)

		assert.Equal(t, "DETECTION", exp.Mode)
		assert.Equal(t, "some text", exp.Input)
		assert.Equal(t, item.Detection, exp.Result)
		assert.Equal(t, "veritas-detection-result-1767323045000.json", veritas.ExportFilename(item.Mode, now))
	})

	t.Run("humanization", func(t *testing.T) {
		t.Parallel()

		item := veritas.HistoryItem{
			Mode:     veritas.ModeHumanize,
			Input:    "robotic",
			Humanize: &veritas.HumanizeResult{OriginalText: "robotic", HumanizedText: "human"},
		}

		exp := veritas.NewExport(item, now)

		assert.Equal(t, "HUMANIZATION", exp.Mode)
		assert.Equal(t, item.Humanize, exp.Result)
		assert.Equal(t, "veritas-humanization-result-1767323045000.json", veritas.ExportFilename(item.Mode, now))
	})
}

func TestTextStats(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, veritas.WordCount("   "))
	assert.Equal(t, 3, veritas.WordCount("  one two\nthree "))
	assert.Equal(t, 5, veritas.CharCount("héllo"))
	assert.True(t, veritas.IsBlank(" \n\t"))
	assert.False(t, veritas.IsBlank(" x "))
	assert.Equal(t, "Humanization", veritas.ModeHumanize.DisplayName())
}

func TestStyles_Band(t *testing.T) {
	t.Parallel()

	styles := veritas.Styles{
		Human: veritas.ColorPair{Foreground: "#10b981"},
		Mixed: veritas.ColorPair{Foreground: "#f59e0b"},
		AI:    veritas.ColorPair{Foreground: "#ef4444"},
	}

	assert.Equal(t, "#10b981", styles.Band(veritas.BandHuman).Foreground)
	assert.Equal(t, "#f59e0b", styles.Band(veritas.BandMixed).Foreground)
	assert.Equal(t, "#ef4444", styles.Band(veritas.BandAI).Foreground)
}
