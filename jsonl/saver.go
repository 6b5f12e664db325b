package jsonl

import (
	"os"
	"path/filepath"

	"github.com/fwojciec/veritas"
)

// Compile-time interface verification.
var _ veritas.SampleResultSaver = (*Saver)(nil)

// Saver appends SampleResult records to JSONL files.
type Saver struct{}

// NewSaver creates a new Saver.
func NewSaver() *Saver {
	return &Saver{}
}

// Save appends a SampleResult to a JSONL file, creating parent directories if needed.
func (s *Saver) Save(path string, r veritas.SampleResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	return encode(f, r)
}
