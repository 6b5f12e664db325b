package veritas

import (
	"strings"
	"unicode/utf8"
)

// WordCount returns the number of whitespace-separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// CharCount returns the number of runes in s.
func CharCount(s string) int {
	return utf8.RuneCountInString(s)
}

// IsBlank reports whether s holds nothing but whitespace. Blank input is never
// sent to a collaborator.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// TokenCounter estimates how many model tokens a text occupies.
type TokenCounter interface {
	Count(text string) int
}

// TextStats summarizes an input text.
type TextStats struct {
	Words  int `json:"words"`
	Chars  int `json:"chars"`
	Tokens int `json:"tokens"` // 0 when no TokenCounter is available
}

// StatsOf computes TextStats for s. counter may be nil.
func StatsOf(s string, counter TokenCounter) TextStats {
	stats := TextStats{Words: WordCount(s), Chars: CharCount(s)}
	if counter != nil {
		stats.Tokens = counter.Count(s)
	}
	return stats
}
