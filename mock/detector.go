package mock

import (
	"context"

	"github.com/fwojciec/veritas"
)

// Compile-time interface verification.
var (
	_ veritas.Detector  = (*Detector)(nil)
	_ veritas.Humanizer = (*Humanizer)(nil)
)

// Detector is a mock implementation of veritas.Detector.
type Detector struct {
	DetectFn func(ctx context.Context, text string, settings veritas.Settings) (*veritas.DetectionResult, error)
}

func (d *Detector) Detect(ctx context.Context, text string, settings veritas.Settings) (*veritas.DetectionResult, error) {
	return d.DetectFn(ctx, text, settings)
}

// Humanizer is a mock implementation of veritas.Humanizer.
type Humanizer struct {
	HumanizeFn func(ctx context.Context, text string, settings veritas.Settings) (*veritas.HumanizeResult, error)
}

func (h *Humanizer) Humanize(ctx context.Context, text string, settings veritas.Settings) (*veritas.HumanizeResult, error) {
	return h.HumanizeFn(ctx, text, settings)
}
