// Package veritas provides domain types for annotating prose with AI-detection
// evidence and for visualizing what a rewrite changed.
package veritas

import (
	"encoding/json"
	"fmt"
)

// DiffKind classifies a DiffSegment.
type DiffKind int

// Diff segment kinds.
const (
	DiffSame DiffKind = iota
	DiffAdded
	DiffRemoved
)

var diffKindNames = [...]string{
	DiffSame:    "same",
	DiffAdded:   "added",
	DiffRemoved: "removed",
}

// String returns the lowercase name of the kind.
func (k DiffKind) String() string {
	if k < 0 || int(k) >= len(diffKindNames) {
		return fmt.Sprintf("DiffKind(%d)", int(k))
	}
	return diffKindNames[k]
}

// MarshalJSON encodes the kind as its lowercase name.
func (k DiffKind) MarshalJSON() ([]byte, error) {
	if k < 0 || int(k) >= len(diffKindNames) {
		return nil, fmt.Errorf("veritas: unknown diff kind %d", int(k))
	}
	return json.Marshal(diffKindNames[k])
}

// UnmarshalJSON decodes a lowercase kind name.
func (k *DiffKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, name := range diffKindNames {
		if name == s {
			*k = DiffKind(i)
			return nil
		}
	}
	return fmt.Errorf("veritas: unknown diff kind %q", s)
}

// DiffSegment is a token (or run of tokens) tagged with how it relates the
// original text to the revised text.
type DiffSegment struct {
	Kind  DiffKind `json:"type"`
	Value string   `json:"value"`
}

// HighlightKind classifies a HighlightSegment.
type HighlightKind int

// Highlight segment kinds.
const (
	HighlightPlain HighlightKind = iota
	HighlightMarked
)

var highlightKindNames = [...]string{
	HighlightPlain:  "plain",
	HighlightMarked: "highlighted",
}

// String returns the lowercase name of the kind.
func (k HighlightKind) String() string {
	if k < 0 || int(k) >= len(highlightKindNames) {
		return fmt.Sprintf("HighlightKind(%d)", int(k))
	}
	return highlightKindNames[k]
}

// MarshalJSON encodes the kind as its lowercase name.
func (k HighlightKind) MarshalJSON() ([]byte, error) {
	if k < 0 || int(k) >= len(highlightKindNames) {
		return nil, fmt.Errorf("veritas: unknown highlight kind %d", int(k))
	}
	return json.Marshal(highlightKindNames[k])
}

// UnmarshalJSON decodes a lowercase kind name.
func (k *HighlightKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, name := range highlightKindNames {
		if name == s {
			*k = HighlightKind(i)
			return nil
		}
	}
	return fmt.Errorf("veritas: unknown highlight kind %q", s)
}

// HighlightSegment is a contiguous piece of a source text, either plain or
// marked as matching a suspicious phrase.
type HighlightSegment struct {
	Kind  HighlightKind `json:"type"`
	Value string        `json:"value"`
}

// Differ computes a word-level diff between an original and a revised text.
type Differ interface {
	// Diff returns segments whose Same+Removed values rebuild original and
	// whose Same+Added values rebuild revised.
	Diff(original, revised string) []DiffSegment
}

// Highlighter marks occurrences of phrases inside a source text.
type Highlighter interface {
	// Highlight returns segments that concatenate back to source. Earlier
	// phrases claim text before later ones.
	Highlight(source string, phrases []string) []HighlightSegment
}

// Clipboard provides copy-to-clipboard functionality.
type Clipboard interface {
	Copy(content string) error
}
