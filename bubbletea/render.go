package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/veritas"
	"github.com/muesli/termenv"
)

// Plain-text markers used when the renderer has no colors. They follow the
// git --word-diff convention for diffs.
const (
	removedOpen  = "[-"
	removedClose = "-]"
	addedOpen    = "{+"
	addedClose   = "+}"
	markOpen     = "[["
	markClose    = "]]"
)

// gaugeCells is the width of the score gauge.
const gaugeCells = 20

// Renderer turns results into styled terminal text. Segments are styled
// exactly as given; a Renderer never merges or splits them.
type Renderer struct {
	styles   veritas.Styles
	renderer *lipgloss.Renderer
	width    int
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithRenderer sets a custom lipgloss renderer.
func WithRenderer(r *lipgloss.Renderer) RendererOption {
	return func(rr *Renderer) {
		rr.renderer = r
	}
}

// WithTheme sets the theme.
func WithTheme(t veritas.Theme) RendererOption {
	return func(rr *Renderer) {
		rr.styles = t.Styles()
	}
}

// WithWidth wraps prose at width columns. Zero disables wrapping.
func WithWidth(width int) RendererOption {
	return func(rr *Renderer) {
		rr.width = width
	}
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{styles: defaultStyles()}
	for _, opt := range opts {
		opt(r)
	}
	if r.renderer == nil {
		r.renderer = lipgloss.DefaultRenderer()
	}
	return r
}

// plain reports whether output carries no colors, in which case changes are
// shown with text markers.
func (r *Renderer) plain() bool {
	return r.renderer.ColorProfile() == termenv.Ascii
}

func (r *Renderer) style(cp veritas.ColorPair) lipgloss.Style {
	return styleFromColorPair(cp, r.renderer)
}

// Diff renders diff segments inline.
func (r *Renderer) Diff(segs []veritas.DiffSegment) string {
	same := r.style(r.styles.Same)
	added := r.style(r.styles.Added).Underline(true)
	removed := r.style(r.styles.Removed).Strikethrough(true)
	plain := r.plain()

	var sb strings.Builder
	for _, seg := range segs {
		switch seg.Kind {
		case veritas.DiffAdded:
			if plain {
				sb.WriteString(addedOpen + seg.Value + addedClose)
				continue
			}
			writeStyled(&sb, added, seg.Value)
		case veritas.DiffRemoved:
			if plain {
				sb.WriteString(removedOpen + seg.Value + removedClose)
				continue
			}
			writeStyled(&sb, removed, seg.Value)
		default:
			writeStyled(&sb, same, seg.Value)
		}
	}
	return sb.String()
}

// Highlight renders highlight segments inline.
func (r *Renderer) Highlight(segs []veritas.HighlightSegment) string {
	text := r.style(r.styles.Plain)
	marked := r.style(r.styles.Highlighted).Bold(true)
	plain := r.plain()

	var sb strings.Builder
	for _, seg := range segs {
		switch {
		case seg.Kind != veritas.HighlightMarked:
			writeStyled(&sb, text, seg.Value)
		case plain:
			sb.WriteString(markOpen + seg.Value + markClose)
		default:
			writeStyled(&sb, marked, seg.Value)
		}
	}
	return sb.String()
}

// Detection renders a detection card. segs is the input with the result's
// phrases highlighted.
func (r *Renderer) Detection(result *veritas.DetectionResult, segs []veritas.HighlightSegment) string {
	heading := r.style(r.styles.Heading).Bold(true)
	muted := r.style(r.styles.Muted)
	band := r.style(r.styles.Band(veritas.BandFor(result.Score)))

	var b strings.Builder
	b.WriteString(heading.Render("AI Detection"))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s  %s  %s\n",
		band.Bold(true).Render(fmt.Sprintf("%d%% AI", result.Score)),
		r.gauge(result.Score, band),
		band.Render(result.Label),
	)

	var meta []string
	if result.Confidence > 0 {
		meta = append(meta, fmt.Sprintf("Confidence %d%%", result.Confidence))
	}
	if result.DetectedModel != "" {
		meta = append(meta, "Model "+result.DetectedModel)
	}
	if len(meta) > 0 {
		b.WriteString(muted.Render(strings.Join(meta, "  ·  ")))
		b.WriteString("\n")
	}

	if result.Analysis != "" {
		b.WriteString("\n")
		b.WriteString(r.wrap(result.Analysis))
		b.WriteString("\n")
	}

	if len(segs) > 0 {
		b.WriteString("\n")
		b.WriteString(heading.Render("Highlighted input"))
		b.WriteString("\n")
		b.WriteString(r.Highlight(segs))
		b.WriteString("\n")
		n := len(veritas.HighlightedValues(segs))
		b.WriteString(muted.Render(fmt.Sprintf("%d %s highlighted", n, plural(n, "passage", "passages"))))
		b.WriteString("\n")
	}
	return b.String()
}

// Humanize renders a humanize card. segs is the diff from the original to
// the rewrite.
func (r *Renderer) Humanize(result *veritas.HumanizeResult, segs []veritas.DiffSegment) string {
	heading := r.style(r.styles.Heading).Bold(true)
	muted := r.style(r.styles.Muted)

	var b strings.Builder
	b.WriteString(heading.Render("Humanized Text"))
	b.WriteString("\n\n")
	b.WriteString(result.HumanizedText)
	b.WriteString("\n\n")

	b.WriteString(heading.Render("Changes"))
	b.WriteString("\n")
	b.WriteString(r.Diff(segs))
	b.WriteString("\n")
	stats := veritas.DiffStatsOf(segs)
	b.WriteString(muted.Render(fmt.Sprintf("%d added  ·  %d removed  ·  %d unchanged", stats.Added, stats.Removed, stats.Same)))
	b.WriteString("\n")

	if result.ChangesSummary != "" {
		b.WriteString("\n")
		b.WriteString(heading.Render("Summary"))
		b.WriteString("\n")
		b.WriteString(r.wrap(result.ChangesSummary))
		b.WriteString("\n")
	}
	return b.String()
}

// Item renders the card for a recorded run, computing segments with the
// given engines.
func (r *Renderer) Item(item veritas.HistoryItem, differ veritas.Differ, highlighter veritas.Highlighter) string {
	switch {
	case item.Mode == veritas.ModeHumanize && item.Humanize != nil:
		segs := veritas.CoalesceDiff(differ.Diff(item.Humanize.OriginalText, item.Humanize.HumanizedText))
		return r.Humanize(item.Humanize, segs)
	case item.Detection != nil:
		return r.Detection(item.Detection, highlighter.Highlight(item.Input, item.Detection.Phrases))
	default:
		return r.style(r.styles.Muted).Render("(no result)") + "\n"
	}
}

// Tokens renders syntax tokens, such as highlighted JSON.
func (r *Renderer) Tokens(tokens []veritas.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		style := r.renderer.NewStyle()
		if tok.Style.Foreground != "" {
			style = style.Foreground(lipgloss.Color(tok.Style.Foreground))
		}
		if tok.Style.Bold {
			style = style.Bold(true)
		}
		writeStyled(&sb, style, tok.Text)
	}
	return sb.String()
}

func (r *Renderer) gauge(score int, style lipgloss.Style) string {
	filled := max(0, min(gaugeCells, score*gaugeCells/100))
	if r.plain() {
		return "[" + strings.Repeat("#", filled) + strings.Repeat(".", gaugeCells-filled) + "]"
	}
	empty := r.style(r.styles.Muted)
	return style.Render(strings.Repeat("█", filled)) + empty.Render(strings.Repeat("░", gaugeCells-filled))
}

func (r *Renderer) wrap(s string) string {
	if r.width <= 0 {
		return s
	}
	return r.renderer.NewStyle().Width(r.width).Render(s)
}

// writeStyled renders text line by line so lipgloss never pads a multi-line
// value to a common width.
func writeStyled(sb *strings.Builder, style lipgloss.Style, text string) {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if line != "" {
			sb.WriteString(style.Render(line))
		}
	}
}

// styleFromColorPair creates a lipgloss style from a ColorPair.
// If renderer is nil, the default lipgloss renderer is used.
func styleFromColorPair(cp veritas.ColorPair, renderer *lipgloss.Renderer) lipgloss.Style {
	var style lipgloss.Style
	if renderer != nil {
		style = renderer.NewStyle()
	} else {
		style = lipgloss.NewStyle()
	}
	if cp.Foreground != "" {
		style = style.Foreground(lipgloss.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipgloss.Color(cp.Background))
	}
	return style
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// defaultStyles mirrors the dark theme so the package renders without a
// theme dependency.
func defaultStyles() veritas.Styles {
	return veritas.Styles{
		Same:        veritas.ColorPair{Foreground: "#cdd6f4"},
		Added:       veritas.ColorPair{Foreground: "#a6e3a1", Background: "#004000"},
		Removed:     veritas.ColorPair{Foreground: "#f38ba8", Background: "#3f0001"},
		Plain:       veritas.ColorPair{Foreground: "#cdd6f4"},
		Highlighted: veritas.ColorPair{Foreground: "#1e1e2e", Background: "#f9e2af"},
		Heading:     veritas.ColorPair{Foreground: "#89b4fa"},
		Muted:       veritas.ColorPair{Foreground: "#6c7086"},
		Human:       veritas.ColorPair{Foreground: "#10b981"},
		Mixed:       veritas.ColorPair{Foreground: "#f59e0b"},
		AI:          veritas.ColorPair{Foreground: "#ef4444"},
	}
}
