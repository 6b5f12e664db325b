package mock

import (
	"context"

	"github.com/fwojciec/veritas"
)

// Compile-time interface verification.
var (
	_ veritas.Viewer       = (*Viewer)(nil)
	_ veritas.TokenCounter = (*TokenCounter)(nil)
)

// Viewer is a mock implementation of veritas.Viewer.
type Viewer struct {
	ViewFn func(ctx context.Context, item veritas.HistoryItem) error
}

func (v *Viewer) View(ctx context.Context, item veritas.HistoryItem) error {
	return v.ViewFn(ctx, item)
}

// TokenCounter is a mock implementation of veritas.TokenCounter.
type TokenCounter struct {
	CountFn func(text string) int
}

func (c *TokenCounter) Count(text string) int {
	return c.CountFn(text)
}
