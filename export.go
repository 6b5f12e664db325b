package veritas

import (
	"fmt"
	"strings"
	"time"
)

// Export is the downloadable record of a single result.
type Export struct {
	Mode      string    `json:"mode"` // DETECTION or HUMANIZATION
	Input     string    `json:"input"`
	Result    any       `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExport builds an Export for a history item, stamped at now.
func NewExport(item HistoryItem, now time.Time) Export {
	return Export{
		Mode:      exportMode(item.Mode),
		Input:     item.Input,
		Result:    item.Result(),
		Timestamp: now.UTC(),
	}
}

// ExportFilename returns the default file name for an export of mode taken at t.
func ExportFilename(mode Mode, t time.Time) string {
	return fmt.Sprintf("veritas-%s-result-%d.json", strings.ToLower(exportMode(mode)), t.UnixMilli())
}

func exportMode(m Mode) string {
	if m == ModeHumanize {
		return "HUMANIZATION"
	}
	return "DETECTION"
}
