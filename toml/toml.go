// Package toml persists veritas.Settings as a TOML file.
package toml

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/veritas"
	"github.com/pkg/errors"
)

// Compile-time interface verification.
var _ veritas.SettingsStore = (*Store)(nil)

// SettingsFile is the file name of the settings inside the config directory.
const SettingsFile = "settings.toml"

// Store reads and writes settings at a fixed path.
type Store struct {
	path string
}

// NewStore creates a Store for the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored settings merged over the defaults. A missing file
// yields the defaults.
func (s *Store) Load() (veritas.Settings, error) {
	settings := veritas.DefaultSettings()
	meta, err := toml.DecodeFile(s.path, &settings)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return veritas.DefaultSettings(), nil
		}
		return veritas.Settings{}, errors.Wrapf(err, "%s: failed to parse TOML", s.path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return veritas.Settings{}, veritas.Errorf(veritas.EINVALID, "%s: unknown setting %q", s.path, undecoded[0].String())
	}
	if err := settings.Validate(); err != nil {
		return veritas.Settings{}, errors.Wrap(err, s.path)
	}
	return settings, nil
}

// Save validates settings and writes them, creating the directory if needed.
func (s *Store) Save(settings veritas.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(settings); err != nil {
		return errors.Wrapf(err, "%s: failed to encode TOML", s.path)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	mode := os.FileMode(0o600)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(s.path, buf.Bytes(), mode); err != nil {
		return errors.Wrapf(err, "failed to write %s", s.path)
	}
	return nil
}
