package jsonl

import (
	"os"

	"github.com/fwojciec/veritas"
)

// Compile-time interface verification.
var _ veritas.SampleLoader = (*Loader)(nil)

// Loader loads Sample records from JSONL files.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads a JSONL file and returns all Sample records.
func (l *Loader) Load(path string) ([]veritas.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return decode[veritas.Sample](f)
}
