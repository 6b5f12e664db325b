// Package bubbletea renders detection and humanize results for the terminal
// and provides an interactive viewer built on Bubble Tea.
package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/veritas"
	"github.com/fwojciec/veritas/highlight"
	"github.com/fwojciec/veritas/worddiff"
)

// Compile-time interface verification.
var _ veritas.Viewer = (*Viewer)(nil)

// Model is the Bubble Tea model for viewing a recorded run.
type Model struct {
	item        veritas.HistoryItem
	differ      veritas.Differ
	highlighter veritas.Highlighter
	clipboard   veritas.Clipboard

	viewport   viewport.Model
	keymap     KeyMap
	styles     veritas.Styles
	theme      veritas.Theme
	renderer   *lipgloss.Renderer
	width      int
	ready      bool
	pendingKey string
	status     string
}

// ModelOption configures a Model.
type ModelOption func(*modelConfig)

type modelConfig struct {
	renderer    *lipgloss.Renderer
	theme       veritas.Theme
	differ      veritas.Differ
	highlighter veritas.Highlighter
	clipboard   veritas.Clipboard
}

// WithModelRenderer sets a custom lipgloss renderer for the model.
func WithModelRenderer(r *lipgloss.Renderer) ModelOption {
	return func(cfg *modelConfig) {
		cfg.renderer = r
	}
}

// WithModelTheme sets the theme for the model.
func WithModelTheme(t veritas.Theme) ModelOption {
	return func(cfg *modelConfig) {
		cfg.theme = t
	}
}

// WithDiffer sets the differ used for humanize results.
func WithDiffer(d veritas.Differ) ModelOption {
	return func(cfg *modelConfig) {
		cfg.differ = d
	}
}

// WithHighlighter sets the highlighter used for detection results.
func WithHighlighter(h veritas.Highlighter) ModelOption {
	return func(cfg *modelConfig) {
		cfg.highlighter = h
	}
}

// WithClipboard enables the copy key.
func WithClipboard(c veritas.Clipboard) ModelOption {
	return func(cfg *modelConfig) {
		cfg.clipboard = c
	}
}

// NewModel creates a new Model showing item.
func NewModel(item veritas.HistoryItem, opts ...ModelOption) Model {
	cfg := &modelConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.differ == nil {
		cfg.differ = worddiff.NewDiffer()
	}
	if cfg.highlighter == nil {
		cfg.highlighter = highlight.NewSegmenter()
	}

	styles := defaultStyles()
	if cfg.theme != nil {
		styles = cfg.theme.Styles()
	}

	return Model{
		item:        item,
		differ:      cfg.differ,
		highlighter: cfg.highlighter,
		clipboard:   cfg.clipboard,
		keymap:      DefaultKeyMap(),
		styles:      styles,
		theme:       cfg.theme,
		renderer:    cfg.renderer,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Handle multi-key sequences (gg for go to top)
		if m.pendingKey == "g" && key.Matches(msg, m.keymap.GotoTop) {
			m.viewport.GotoTop()
			m.pendingKey = ""
			return m, nil
		}

		if key.Matches(msg, m.keymap.GotoTop) {
			m.pendingKey = "g"
			return m, nil
		}

		m.pendingKey = ""

		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keymap.GotoBottom):
			m.viewport.GotoBottom()
			return m, nil
		case key.Matches(msg, m.keymap.HalfPageUp):
			m.viewport.HalfPageUp()
			return m, nil
		case key.Matches(msg, m.keymap.HalfPageDown):
			m.viewport.HalfPageDown()
			return m, nil
		case key.Matches(msg, m.keymap.Up):
			m.viewport.ScrollUp(1)
			return m, nil
		case key.Matches(msg, m.keymap.Down):
			m.viewport.ScrollDown(1)
			return m, nil
		case key.Matches(msg, m.keymap.Copy):
			m.copy()
			return m, nil
		}
	case tea.WindowSizeMsg:
		statusBarHeight := 1
		widthChanged := m.width != msg.Width
		m.width = msg.Width

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-statusBarHeight)
			m.viewport.SetContent(m.renderContent())
			m.ready = true
		} else if widthChanged {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - statusBarHeight
			m.viewport.SetContent(m.renderContent())
		} else {
			m.viewport.Height = msg.Height - statusBarHeight
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), m.statusBarView())
}

// CopyText returns what the copy key puts on the clipboard: the rewrite of a
// humanize run or the analysis of a detection.
func CopyText(item veritas.HistoryItem) string {
	switch {
	case item.Mode == veritas.ModeHumanize && item.Humanize != nil:
		return item.Humanize.HumanizedText
	case item.Detection != nil:
		return item.Detection.Analysis
	default:
		return ""
	}
}

func (m *Model) copy() {
	text := CopyText(m.item)
	switch {
	case m.clipboard == nil:
		m.status = "clipboard unavailable"
	case text == "":
		m.status = "nothing to copy"
	default:
		if err := m.clipboard.Copy(text); err != nil {
			m.status = "copy failed: " + err.Error()
			return
		}
		m.status = "copied"
	}
}

func (m Model) renderContent() string {
	opts := []RendererOption{WithRenderer(m.renderer), WithWidth(m.width)}
	if m.theme != nil {
		opts = append(opts, WithTheme(m.theme))
	}
	return NewRenderer(opts...).Item(m.item, m.differ, m.highlighter)
}

// newStyle creates a new lipgloss style using the model's renderer.
func (m Model) newStyle() lipgloss.Style {
	if m.renderer != nil {
		return m.renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

// statusBarView renders the status bar with mode, scroll position and hints.
func (m Model) statusBarView() string {
	barStyle := m.newStyle().Foreground(lipgloss.Color(m.styles.Same.Foreground))
	dimStyle := m.newStyle().Foreground(lipgloss.Color(m.styles.Muted.Foreground))
	sep := dimStyle.Render(" │ ")

	content := barStyle.Render(m.item.Mode.DisplayName()) + sep +
		barStyle.Render(m.scrollPosition()) + sep
	if m.status != "" {
		content += barStyle.Render(m.status) + sep
	}
	content += dimStyle.Render("j/k:scroll  c:copy  q:quit")

	// Right-align by padding the left side
	contentWidth := lipgloss.Width(content)
	if m.width > contentWidth {
		content = strings.Repeat(" ", m.width-contentWidth) + content
	}
	return content
}

// scrollPosition returns a string indicating the scroll position.
func (m Model) scrollPosition() string {
	if m.viewport.AtTop() {
		return "Top"
	}
	if m.viewport.AtBottom() {
		return "Bot"
	}
	percent := int(m.viewport.ScrollPercent() * 100)
	return fmt.Sprintf("%2d%%", percent)
}

// Viewer implements veritas.Viewer using a Bubble Tea TUI.
type Viewer struct {
	opts []ModelOption
}

// NewViewer creates a new Viewer. The options apply to every Model it shows.
func NewViewer(opts ...ModelOption) *Viewer {
	return &Viewer{opts: opts}
}

// View displays the item and blocks until the user exits.
func (v *Viewer) View(ctx context.Context, item veritas.HistoryItem) error {
	m := NewModel(item, v.opts...)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
