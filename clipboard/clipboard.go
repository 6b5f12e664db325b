// Package clipboard copies text to the system clipboard.
package clipboard

import (
	"errors"

	atotto "github.com/atotto/clipboard"
	"github.com/fwojciec/veritas"
)

// Ensure System implements the Clipboard interface.
var _ veritas.Clipboard = (*System)(nil)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard: no clipboard utility available (install xclip, xsel or wl-clipboard)")

// System implements Clipboard using the platform clipboard (pbcopy, xclip,
// xsel, wl-copy or the Windows API).
type System struct{}

// NewSystem returns a new System clipboard.
func NewSystem() *System {
	return &System{}
}

// Copy writes content to the system clipboard.
func (s *System) Copy(content string) error {
	if atotto.Unsupported {
		return ErrUnsupported
	}
	return atotto.WriteAll(content)
}

// Paste reads the system clipboard.
func (s *System) Paste() (string, error) {
	if atotto.Unsupported {
		return "", ErrUnsupported
	}
	return atotto.ReadAll()
}
