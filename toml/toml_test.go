package toml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/veritas"
	"github.com/fwojciec/veritas/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), toml.SettingsFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestStore_Load(t *testing.T) {
	t.Parallel()

	t.Run("missing file yields defaults", func(t *testing.T) {
		t.Parallel()

		settings, err := toml.NewStore(filepath.Join(t.TempDir(), "nope", toml.SettingsFile)).Load()

		require.NoError(t, err)
		assert.Equal(t, veritas.DefaultSettings(), settings)
	})

	t.Run("partial file is merged over defaults", func(t *testing.T) {
		t.Parallel()

		path := writeSettings(t, "model = \"gemini-2.5-pro\"\nenable_history = false\n")

		settings, err := toml.NewStore(path).Load()

		require.NoError(t, err)
		expected := veritas.DefaultSettings()
		expected.Model = "gemini-2.5-pro"
		expected.EnableHistory = false
		assert.Equal(t, expected, settings)
	})

	t.Run("full file", func(t *testing.T) {
		t.Parallel()

		path := writeSettings(t, `model = "gemini-2.0-flash"
temperature = 0.5
max_tokens = 4000
enable_history = true
history_backend = "sqlite"
`)

		settings, err := toml.NewStore(path).Load()

		require.NoError(t, err)
		assert.Equal(t, veritas.Settings{
			Model:          "gemini-2.0-flash",
			Temperature:    0.5,
			MaxTokens:      4000,
			EnableHistory:  true,
			HistoryBackend: veritas.BackendSQLite,
		}, settings)
	})

	t.Run("malformed TOML", func(t *testing.T) {
		t.Parallel()

		path := writeSettings(t, "model = \n")

		_, err := toml.NewStore(path).Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse TOML")
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		path := writeSettings(t, "colour = \"red\"\n")

		_, err := toml.NewStore(path).Load()

		require.Error(t, err)
		assert.Equal(t, veritas.EINVALID, veritas.ErrorCode(err))
		assert.Contains(t, err.Error(), "colour")
	})

	t.Run("out of range value", func(t *testing.T) {
		t.Parallel()

		path := writeSettings(t, "max_tokens = 50\n")

		_, err := toml.NewStore(path).Load()

		require.Error(t, err)
		assert.Equal(t, veritas.EINVALID, veritas.ErrorCode(err))
	})
}

func TestStore_Save(t *testing.T) {
	t.Parallel()

	t.Run("round trips through Load", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config", toml.SettingsFile)
		store := toml.NewStore(path)
		settings := veritas.Settings{
			Model:          "gemini-2.5-pro",
			Temperature:    0.75,
			MaxTokens:      2500,
			EnableHistory:  false,
			HistoryBackend: veritas.BackendSQLite,
		}

		require.NoError(t, store.Save(settings))
		got, err := store.Load()

		require.NoError(t, err)
		assert.Equal(t, settings, got)
		assert.Equal(t, path, store.Path())
	})

	t.Run("rejects invalid settings", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), toml.SettingsFile)
		settings := veritas.DefaultSettings()
		settings.Model = "gpt-4"

		err := toml.NewStore(path).Save(settings)

		require.Error(t, err)
		assert.Equal(t, veritas.EINVALID, veritas.ErrorCode(err))
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})
}
