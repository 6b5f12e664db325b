package mock

import "github.com/fwojciec/veritas"

// Compile-time interface verification.
var _ veritas.Clipboard = (*Clipboard)(nil)

// Clipboard is a mock implementation of veritas.Clipboard.
type Clipboard struct {
	CopyFn func(text string) error
}

func (c *Clipboard) Copy(text string) error {
	return c.CopyFn(text)
}
