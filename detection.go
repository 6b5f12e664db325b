package veritas

import (
	"context"
	"fmt"
)

// DetectionResult is the classification collaborator's verdict on a text.
type DetectionResult struct {
	Score         int      `json:"score"`                          // 0-100, 100 is fully AI
	Confidence    int      `json:"confidence"`                     // 0-100, 0 if not reported
	Label         string   `json:"label"`                          // e.g. "Very Likely AI", "Likely Human"
	Analysis      string   `json:"analysis"`                       // Free-text reasoning
	DetectedModel string   `json:"detectedModel,omitempty"`        // Suspected generator, if any
	Phrases       []string `json:"highlightedSentences,omitempty"` // Suspicious spans, highest priority first
}

// Validate checks that scores are in range and a label is present.
func (r *DetectionResult) Validate() error {
	if r.Score < 0 || r.Score > 100 {
		return Errorf(EINVALID, "score %d out of range 0-100", r.Score)
	}
	if r.Confidence < 0 || r.Confidence > 100 {
		return Errorf(EINVALID, "confidence %d out of range 0-100", r.Confidence)
	}
	if r.Label == "" {
		return Errorf(EINVALID, "label is required")
	}
	return nil
}

// Band groups AI-likelihood scores for display.
type Band int

// Score bands.
const (
	BandHuman Band = iota
	BandMixed
	BandAI
)

// String returns a display name for the band.
func (b Band) String() string {
	switch b {
	case BandHuman:
		return "Human"
	case BandMixed:
		return "Mixed"
	case BandAI:
		return "AI"
	default:
		return fmt.Sprintf("Band(%d)", int(b))
	}
}

// BandFor returns the band of an AI-likelihood score.
func BandFor(score int) Band {
	switch {
	case score < 30:
		return BandHuman
	case score < 70:
		return BandMixed
	default:
		return BandAI
	}
}

// Detector classifies whether a text was AI-written.
type Detector interface {
	Detect(ctx context.Context, text string, settings Settings) (*DetectionResult, error)
}
