package main

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/veritas"
	"github.com/fwojciec/veritas/bubbletea"
	"github.com/fwojciec/veritas/chroma"
	"github.com/fwojciec/veritas/clipboard"
	"github.com/fwojciec/veritas/fs"
	"github.com/fwojciec/veritas/gemini"
	"github.com/fwojciec/veritas/jsonl"
	dv "github.com/fwojciec/veritas/lipgloss"
	"github.com/fwojciec/veritas/sqlite"
	"github.com/fwojciec/veritas/tiktoken"
	"github.com/fwojciec/veritas/toml"
	"github.com/google/uuid"
	perrors "github.com/pkg/errors"
)

// ErrNoInput is returned when no text is provided.
var ErrNoInput = veritas.Errorf(veritas.EINVALID, "no input: pipe text, pass a file path, or use --paste")

// ErrNoAPIKey is returned when a command needs Gemini and no key is set.
var ErrNoAPIKey = veritas.Errorf(veritas.EUNAVAILABLE, "GEMINI_API_KEY environment variable required")

// App holds the dependencies shared by every command. Nil collaborators are
// built on first use, so tests can substitute mocks.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer

	ConfigDir string
	DataDir   string
	CacheDir  string
	ThemeName string

	Now   func() time.Time
	NewID func() string

	Detector      veritas.Detector
	Humanizer     veritas.Humanizer
	Clipboard     veritas.Clipboard
	Paste         func() (string, error)
	Viewer        veritas.Viewer
	Counter       veritas.TokenCounter
	Renderer      *bubbletea.Renderer
	SettingsStore veritas.SettingsStore
	HistoryStore  veritas.HistoryStore

	closers []func() error
}

// NewApp returns an App wired to the process environment.
func NewApp() *App {
	return &App{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Now:    time.Now,
		NewID:  uuid.NewString,
	}
}

// Close releases resources opened by the App.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) configDir() string {
	if a.ConfigDir != "" {
		return a.ConfigDir
	}
	return fs.DefaultConfigDir()
}

func (a *App) dataDir() string {
	if a.DataDir != "" {
		return a.DataDir
	}
	return fs.DefaultDataDir()
}

func (a *App) cacheDir() string {
	if a.CacheDir != "" {
		return a.CacheDir
	}
	return fs.DefaultCacheDir()
}

func (a *App) theme() (veritas.Theme, error) {
	t, ok := dv.ThemeByName(a.ThemeName)
	if !ok {
		return nil, veritas.Errorf(veritas.EINVALID, "unknown theme %q (want dark or light)", a.ThemeName)
	}
	return t, nil
}

func (a *App) renderer() (*bubbletea.Renderer, error) {
	if a.Renderer != nil {
		return a.Renderer, nil
	}
	t, err := a.theme()
	if err != nil {
		return nil, err
	}
	a.Renderer = bubbletea.NewRenderer(bubbletea.WithTheme(t))
	return a.Renderer, nil
}

func (a *App) tokenizer() (*chroma.Tokenizer, error) {
	t, err := a.theme()
	if err != nil {
		return nil, err
	}
	return chroma.NewTokenizer(chroma.StyleFromPalette(t.Palette()))
}

func (a *App) settingsStore() veritas.SettingsStore {
	if a.SettingsStore == nil {
		a.SettingsStore = toml.NewStore(filepath.Join(a.configDir(), toml.SettingsFile))
	}
	return a.SettingsStore
}

func (a *App) settings() (veritas.Settings, error) {
	s, err := a.settingsStore().Load()
	if err != nil {
		return veritas.Settings{}, perrors.Wrap(err, "loading settings")
	}
	return s, nil
}

// historyStore opens the store selected by the settings' backend.
func (a *App) historyStore(settings veritas.Settings) (veritas.HistoryStore, error) {
	if a.HistoryStore != nil {
		return a.HistoryStore, nil
	}
	switch settings.HistoryBackend {
	case veritas.BackendSQLite:
		if err := os.MkdirAll(a.dataDir(), 0o755); err != nil {
			return nil, perrors.Wrap(err, "creating data directory")
		}
		store, err := sqlite.Open(filepath.Join(a.dataDir(), sqlite.HistoryFile))
		if err != nil {
			return nil, perrors.Wrap(err, "opening history database")
		}
		a.closers = append(a.closers, store.Close)
		a.HistoryStore = store
	default:
		a.HistoryStore = jsonl.NewStore(filepath.Join(a.dataDir(), jsonl.HistoryFile))
	}
	return a.HistoryStore, nil
}

// gemini creates the Gemini-backed collaborators, wrapped with the response
// cache, if they were not provided.
func (a *App) gemini(ctx context.Context) error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return ErrNoAPIKey
	}
	client, err := gemini.NewClient(ctx, apiKey)
	if err != nil {
		return perrors.Wrap(err, "creating Gemini client")
	}
	a.closers = append(a.closers, client.Close)

	cache := fs.NewCache(a.cacheDir())
	if a.Detector == nil {
		a.Detector = fs.NewDetector(gemini.NewDetector(client), cache)
	}
	if a.Humanizer == nil {
		a.Humanizer = fs.NewHumanizer(gemini.NewHumanizer(client), cache)
	}
	return nil
}

func (a *App) detector(ctx context.Context) (veritas.Detector, error) {
	if a.Detector == nil {
		if err := a.gemini(ctx); err != nil {
			return nil, err
		}
	}
	return a.Detector, nil
}

func (a *App) humanizer(ctx context.Context) (veritas.Humanizer, error) {
	if a.Humanizer == nil {
		if err := a.gemini(ctx); err != nil {
			return nil, err
		}
	}
	return a.Humanizer, nil
}

// counter returns the token counter, or nil if the encoding is unavailable.
func (a *App) counter() veritas.TokenCounter {
	if a.Counter == nil {
		c, err := tiktoken.NewCounter()
		if err != nil {
			return nil
		}
		a.Counter = c
	}
	return a.Counter
}

func (a *App) clipboard() veritas.Clipboard {
	if a.Clipboard == nil {
		a.Clipboard = clipboard.NewSystem()
	}
	return a.Clipboard
}

func (a *App) paste() (string, error) {
	if a.Paste == nil {
		a.Paste = clipboard.NewSystem().Paste
	}
	return a.Paste()
}

func (a *App) viewer() (veritas.Viewer, error) {
	if a.Viewer != nil {
		return a.Viewer, nil
	}
	t, err := a.theme()
	if err != nil {
		return nil, err
	}
	a.Viewer = bubbletea.NewViewer(
		bubbletea.WithModelTheme(t),
		bubbletea.WithClipboard(a.clipboard()),
	)
	return a.Viewer, nil
}

// record appends a run to history when the settings allow it and returns the
// ID it was saved under, or "" if it was not saved.
func (a *App) record(ctx context.Context, settings veritas.Settings, item veritas.HistoryItem) (string, error) {
	if !settings.EnableHistory {
		return "", nil
	}
	item.ID = a.NewID()
	item.Timestamp = a.Now().UTC()
	store, err := a.historyStore(settings)
	if err != nil {
		return "", err
	}
	if err := store.Append(ctx, item); err != nil {
		return "", perrors.Wrap(err, "recording history")
	}
	return item.ID, nil
}

// readInput returns the text named by args: a file path, "-" or nothing for
// stdin, or the clipboard when paste is set.
func (a *App) readInput(args []string, paste bool) (string, error) {
	var text string
	switch {
	case paste:
		s, err := a.paste()
		if err != nil {
			return "", perrors.Wrap(err, "reading clipboard")
		}
		text = s
	case len(args) > 0 && args[0] != "-":
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		text = string(b)
	default:
		if f, ok := a.Stdin.(*os.File); ok {
			stat, err := f.Stat()
			if err != nil {
				return "", perrors.Wrap(err, "checking stdin")
			}
			if stat.Mode()&os.ModeCharDevice != 0 {
				return "", ErrNoInput
			}
		}
		b, err := io.ReadAll(a.Stdin)
		if err != nil {
			return "", perrors.Wrap(err, "reading stdin")
		}
		text = string(b)
	}

	if err := veritas.ValidateText("input", text); err != nil {
		return "", err
	}
	if veritas.IsBlank(text) {
		return "", ErrNoInput
	}
	return text, nil
}
