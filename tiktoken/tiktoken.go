// Package tiktoken estimates model token counts with a BPE tokenizer.
package tiktoken

import (
	"fmt"

	"github.com/fwojciec/veritas"
	"github.com/tiktoken-go/tokenizer"
)

// Compile-time interface verification.
var _ veritas.TokenCounter = (*Counter)(nil)

// Counter counts tokens with the o200k_base encoding. Gemini's tokenizer is
// not public, so the count is an estimate.
type Counter struct {
	enc tokenizer.Codec
}

// NewCounter creates a Counter.
func NewCounter() (*Counter, error) {
	enc, err := tokenizer.Get(tokenizer.O200kBase)
	if err != nil {
		return nil, fmt.Errorf("tiktoken: load %s: %w", tokenizer.O200kBase, err)
	}
	return &Counter{enc: enc}, nil
}

// Count returns the token count of text, falling back to a four bytes per
// token estimate if encoding fails.
func (c *Counter) Count(text string) int {
	n, err := c.enc.Count(text)
	if err != nil {
		return len(text) / 4
	}
	return n
}
