package veritas

import "context"

// HumanizeResult is the rewriting collaborator's output. OriginalText and
// HumanizedText are the two arguments of a Differ.
type HumanizeResult struct {
	OriginalText   string `json:"originalText"`
	HumanizedText  string `json:"humanizedText"`
	ChangesSummary string `json:"changesSummary"`
}

// Humanizer rewrites a text so it reads as human-written.
type Humanizer interface {
	Humanize(ctx context.Context, text string, settings Settings) (*HumanizeResult, error)
}
