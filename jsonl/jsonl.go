// Package jsonl provides JSONL file handling for history, batch samples and
// batch results.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// maxLineSize is the maximum size for a single JSONL line (4MB).
// This accommodates long texts while preventing memory issues.
const maxLineSize = 4 * 1024 * 1024

// decode reads one JSON value per non-blank line of r.
func decode[T any](r io.Reader) ([]T, error) {
	var out []T
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var v T
		if err := json.Unmarshal([]byte(line), &v); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		out = append(out, v)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// encode writes v as a single JSON line.
func encode(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
