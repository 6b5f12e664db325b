package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fortio.org/safecast"
	"github.com/fwojciec/veritas"
)

// Compile-time interface verification.
var (
	_ veritas.Detector  = (*Detector)(nil)
	_ veritas.Humanizer = (*Humanizer)(nil)
)

// DefaultTimeout is the default timeout for a single model call.
const DefaultTimeout = 60 * time.Second

type options struct {
	timeout time.Duration
}

// Option configures a Detector or Humanizer.
type Option func(*options)

// WithTimeout sets the timeout for API calls.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

func newOptions(opts []Option) options {
	o := options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Detector implements veritas.Detector using Google Gemini.
type Detector struct {
	client  GenerativeClient
	timeout time.Duration
}

// NewDetector creates a new Detector.
func NewDetector(client GenerativeClient, opts ...Option) *Detector {
	o := newOptions(opts)
	return &Detector{client: client, timeout: o.timeout}
}

// Detect asks the model how likely text is to be AI-written.
func (d *Detector) Detect(ctx context.Context, text string, settings veritas.Settings) (*veritas.DetectionResult, error) {
	var result veritas.DetectionResult
	if err := generate(ctx, d.client, d.timeout, settings, BuildDetectionPrompt(text), BuildDetectionConfig(), &result); err != nil {
		return nil, err
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("gemini: invalid detection: %w", err)
	}
	return &result, nil
}

// generate runs one JSON-mode call and decodes the response into v.
func generate(ctx context.Context, client GenerativeClient, timeout time.Duration, settings veritas.Settings, prompt string, config *GenerateContentConfig, v any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	maxTokens, err := safecast.Conv[int32](settings.MaxTokens)
	if err != nil {
		return veritas.Errorf(veritas.EINVALID, "max tokens %d: %v", settings.MaxTokens, err)
	}
	temp := settings.Temperature
	config.Temperature = &temp
	config.MaxOutputTokens = maxTokens

	contents := []*Content{{
		Parts: []*Part{{Text: prompt}},
	}}

	resp, err := client.GenerateContent(ctx, settings.Model, contents, config)
	if err != nil {
		return err
	}
	if resp == nil {
		return fmt.Errorf("gemini: returned nil response")
	}

	if err := json.Unmarshal([]byte(resp.Text), v); err != nil {
		return fmt.Errorf("gemini: failed to parse response: %w", err)
	}
	return nil
}

// BuildDetectionPrompt creates the user prompt for detection.
func BuildDetectionPrompt(text string) string {
	return fmt.Sprintf(`Analyze the following text and estimate how likely it is to have been written by an AI language model.

<text>
%s
</text>

## Task

Determine:
- **score**: 0-100, where 0 is certainly human and 100 is certainly AI
- **confidence**: 0-100, how sure you are of the score
- **label**: a short verdict such as "Very Likely AI", "Possibly AI", "Likely Human"
- **analysis**: two or three sentences explaining the verdict
- **detectedModel**: the model family the text most resembles, or an empty string
- **highlightedSentences**: exact substrings of the text that read as machine-written, most characteristic first

Rules:
- Every highlighted sentence must be copied verbatim from the text, including punctuation and case
- Do not paraphrase or merge separate passages into one entry
- Return an empty list when nothing stands out`, text)
}

// BuildDetectionConfig returns config for detection calls.
func BuildDetectionConfig() *GenerateContentConfig {
	return &GenerateContentConfig{
		SystemInstruction: &Content{
			Parts: []*Part{{
				Text: `You are a forensic linguist who specializes in telling AI-generated prose from human writing.

Look for uniform sentence rhythm, stock transitions, hedging, generic summaries and an absence of concrete personal detail.

Be calibrated. Short or ambiguous texts deserve scores near the middle and low confidence.`,
			}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   detectionSchema,
	}
}

var detectionSchema = &Schema{
	Type: "object",
	Properties: map[string]*Schema{
		"score":         {Type: "integer", Description: "AI likelihood from 0 to 100"},
		"confidence":    {Type: "integer", Description: "Confidence from 0 to 100"},
		"label":         {Type: "string"},
		"analysis":      {Type: "string"},
		"detectedModel": {Type: "string"},
		"highlightedSentences": {
			Type:        "array",
			Items:       &Schema{Type: "string"},
			Description: "Verbatim substrings of the input",
		},
	},
	Required:         []string{"score", "label", "analysis", "highlightedSentences"},
	PropertyOrdering: []string{"score", "confidence", "label", "analysis", "detectedModel", "highlightedSentences"},
}
