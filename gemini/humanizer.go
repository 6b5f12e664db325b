package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/veritas"
)

// Humanizer implements veritas.Humanizer using Google Gemini.
type Humanizer struct {
	client  GenerativeClient
	timeout time.Duration
}

// NewHumanizer creates a new Humanizer.
func NewHumanizer(client GenerativeClient, opts ...Option) *Humanizer {
	o := newOptions(opts)
	return &Humanizer{client: client, timeout: o.timeout}
}

// Humanize asks the model to rewrite text so it reads as human-written.
// OriginalText is always the given text, whatever the model echoes back.
func (h *Humanizer) Humanize(ctx context.Context, text string, settings veritas.Settings) (*veritas.HumanizeResult, error) {
	var result veritas.HumanizeResult
	if err := generate(ctx, h.client, h.timeout, settings, BuildHumanizePrompt(text), BuildHumanizeConfig(), &result); err != nil {
		return nil, err
	}
	if result.HumanizedText == "" {
		return nil, fmt.Errorf("gemini: empty rewrite")
	}
	result.OriginalText = text
	return &result, nil
}

// BuildHumanizePrompt creates the user prompt for rewriting.
func BuildHumanizePrompt(text string) string {
	return fmt.Sprintf(`Rewrite the following text so it reads as if a thoughtful person wrote it.

<text>
%s
</text>

## Task

- Keep the meaning, facts and overall length
- Vary sentence length and structure
- Replace stock phrases ("delve into", "it is worth noting", "in conclusion") with plain wording
- Keep paragraph breaks where they are
- Change only what needs changing so the edits stay easy to review

Respond with:
- **humanizedText**: the rewritten text
- **changesSummary**: one or two sentences describing what you changed`, text)
}

// BuildHumanizeConfig returns config for rewriting calls.
func BuildHumanizeConfig() *GenerateContentConfig {
	return &GenerateContentConfig{
		SystemInstruction: &Content{
			Parts: []*Part{{
				Text: `You are an editor who turns stiff, machine-sounding prose into natural writing without changing what it says.`,
			}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   humanizeSchema,
	}
}

var humanizeSchema = &Schema{
	Type: "object",
	Properties: map[string]*Schema{
		"humanizedText":  {Type: "string"},
		"changesSummary": {Type: "string"},
	},
	Required:         []string{"humanizedText", "changesSummary"},
	PropertyOrdering: []string{"humanizedText", "changesSummary"},
}
