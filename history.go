package veritas

import (
	"context"
	"time"
)

// Mode is the operation a user ran.
type Mode string

// Modes.
const (
	ModeDetect   Mode = "DETECT"
	ModeHumanize Mode = "HUMANIZE"
)

// DisplayName returns the name shown in history listings.
func (m Mode) DisplayName() string {
	switch m {
	case ModeDetect:
		return "Detection"
	case ModeHumanize:
		return "Humanization"
	default:
		return string(m)
	}
}

// HistoryLimit is the number of items kept in history.
const HistoryLimit = 10

// HistoryItem records one detect or humanize run.
type HistoryItem struct {
	ID        string           `json:"id"`
	Mode      Mode             `json:"mode"`
	Input     string           `json:"input"`
	Detection *DetectionResult `json:"detection,omitempty"` // Set when Mode is ModeDetect
	Humanize  *HumanizeResult  `json:"humanize,omitempty"`  // Set when Mode is ModeHumanize
	Timestamp time.Time        `json:"timestamp"`
}

// Result returns whichever result the item holds.
func (h HistoryItem) Result() any {
	if h.Mode == ModeHumanize {
		return h.Humanize
	}
	return h.Detection
}

// AppendHistory appends item and drops the oldest entries so that at most
// HistoryLimit remain. items is not modified.
func AppendHistory(items []HistoryItem, item HistoryItem) []HistoryItem {
	start := 0
	if len(items) >= HistoryLimit {
		start = len(items) - (HistoryLimit - 1)
	}
	out := make([]HistoryItem, 0, len(items)-start+1)
	out = append(out, items[start:]...)
	return append(out, item)
}

// HistoryStore persists recent HistoryItems, oldest first.
type HistoryStore interface {
	Load(ctx context.Context) ([]HistoryItem, error)
	// Append adds an item and trims the store to HistoryLimit.
	Append(ctx context.Context, item HistoryItem) error
	// Get returns the item with the given ID or an ENOTFOUND error.
	Get(ctx context.Context, id string) (*HistoryItem, error)
	Clear(ctx context.Context) error
}

// Viewer displays a recorded run interactively.
type Viewer interface {
	View(ctx context.Context, item HistoryItem) error
}
