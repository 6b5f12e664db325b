package veritas

import (
	"slices"
	"strconv"
)

// Models lists the Gemini models a user may select.
var Models = []string{
	"gemini-2.5-flash",
	"gemini-2.5-pro",
	"gemini-2.0-flash",
}

// History backends.
const (
	BackendJSONL  = "jsonl"
	BackendSQLite = "sqlite"
)

// Output token limits accepted in Settings.MaxTokens.
const (
	MinMaxTokens = 100
	MaxMaxTokens = 8000
)

// Settings are the user's persistent preferences.
type Settings struct {
	Model          string  `json:"model" toml:"model"`
	Temperature    float32 `json:"temperature" toml:"temperature"`
	MaxTokens      int     `json:"maxTokens" toml:"max_tokens"`
	EnableHistory  bool    `json:"enableHistory" toml:"enable_history"`
	HistoryBackend string  `json:"historyBackend" toml:"history_backend"`
}

// DefaultSettings returns the settings used before the user changes anything.
func DefaultSettings() Settings {
	return Settings{
		Model:          "gemini-2.5-flash",
		Temperature:    0.3,
		MaxTokens:      1000,
		EnableHistory:  true,
		HistoryBackend: BackendJSONL,
	}
}

// Validate checks every field against its allowed range.
func (s Settings) Validate() error {
	if !slices.Contains(Models, s.Model) {
		return Errorf(EINVALID, "unknown model %q", s.Model)
	}
	if s.Temperature < 0 || s.Temperature > 1 {
		return Errorf(EINVALID, "temperature %.2f out of range 0-1", s.Temperature)
	}
	if s.MaxTokens < MinMaxTokens || s.MaxTokens > MaxMaxTokens {
		return Errorf(EINVALID, "max tokens %d out of range %d-%d", s.MaxTokens, MinMaxTokens, MaxMaxTokens)
	}
	switch s.HistoryBackend {
	case BackendJSONL, BackendSQLite:
	default:
		return Errorf(EINVALID, "unknown history backend %q", s.HistoryBackend)
	}
	return nil
}

// SettingsStore persists Settings.
type SettingsStore interface {
	// Load returns the stored settings merged over DefaultSettings.
	Load() (Settings, error)
	Save(s Settings) error
}

// SettingKeys lists the keys accepted by Settings.Set, in display order.
var SettingKeys = []string{"model", "temperature", "max_tokens", "enable_history", "history_backend"}

// Set parses value and assigns it to the field named by key. The result is
// validated; on error s is left unchanged.
func (s *Settings) Set(key, value string) error {
	next := *s
	switch key {
	case "model":
		next.Model = value
	case "temperature":
		f, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return Errorf(EINVALID, "temperature must be a number, got %q", value)
		}
		next.Temperature = float32(f)
	case "max_tokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return Errorf(EINVALID, "max_tokens must be an integer, got %q", value)
		}
		next.MaxTokens = n
	case "enable_history":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return Errorf(EINVALID, "enable_history must be true or false, got %q", value)
		}
		next.EnableHistory = b
	case "history_backend":
		next.HistoryBackend = value
	default:
		return Errorf(EINVALID, "unknown setting %q", key)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*s = next
	return nil
}
