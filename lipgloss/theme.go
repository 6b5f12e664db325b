// Package lipgloss provides theme implementations using the Lipgloss styling library.
package lipgloss

import "github.com/fwojciec/veritas"

// Compile-time interface verification.
var _ veritas.Theme = (*Theme)(nil)

// Theme implements veritas.Theme with Lipgloss-compatible colors.
type Theme struct {
	styles  veritas.Styles
	palette veritas.Palette
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() veritas.Styles {
	return t.styles
}

// Palette returns the syntax color palette for this theme.
func (t *Theme) Palette() veritas.Palette {
	return t.palette
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// ThemeByName returns the theme called name ("dark" or "light") and whether
// it exists.
func ThemeByName(name string) (*Theme, bool) {
	switch name {
	case "dark", "":
		return DarkTheme(), true
	case "light":
		return LightTheme(), true
	default:
		return nil, false
	}
}

// The band colors match the score gauge of the web client on both
// backgrounds.
const (
	bandHuman = "#10b981"
	bandMixed = "#f59e0b"
	bandAI    = "#ef4444"
)

// DarkTheme returns a theme optimized for dark terminal backgrounds.
func DarkTheme() *Theme {
	return &Theme{
		styles: veritas.Styles{
			Same: veritas.ColorPair{
				Foreground: "#cdd6f4",
			},
			Added: veritas.ColorPair{
				Foreground: "#a6e3a1", // Green
				Background: "#004000", // Very dark green
			},
			Removed: veritas.ColorPair{
				Foreground: "#f38ba8", // Red
				Background: "#3f0001", // Very dark red
			},
			Plain: veritas.ColorPair{
				Foreground: "#cdd6f4",
			},
			Highlighted: veritas.ColorPair{
				Foreground: "#1e1e2e", // Dark text on bright background
				Background: "#f9e2af", // Yellow marker
			},
			Heading: veritas.ColorPair{
				Foreground: "#89b4fa", // Blue
			},
			Muted: veritas.ColorPair{
				Foreground: "#6c7086", // Muted gray
			},
			Human: veritas.ColorPair{Foreground: bandHuman},
			Mixed: veritas.ColorPair{Foreground: bandMixed},
			AI:    veritas.ColorPair{Foreground: bandAI},
		},
		palette: veritas.Palette{
			// Catppuccin Mocha
			Foreground:  "#cdd6f4",
			Key:         "#89b4fa",
			String:      "#a6e3a1",
			Number:      "#fab387",
			Keyword:     "#cba6f7",
			Punctuation: "#9399b2",
		},
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		styles: veritas.Styles{
			Same: veritas.ColorPair{
				Foreground: "#4c4f69",
			},
			Added: veritas.ColorPair{
				Foreground: "#40a02b", // Green
				Background: "#d4f4d4", // Subtle green background
			},
			Removed: veritas.ColorPair{
				Foreground: "#d20f39", // Red
				Background: "#f4d4d4", // Subtle red background
			},
			Plain: veritas.ColorPair{
				Foreground: "#4c4f69",
			},
			Highlighted: veritas.ColorPair{
				Foreground: "#4c4f69",
				Background: "#f9e2af", // Pale yellow marker
			},
			Heading: veritas.ColorPair{
				Foreground: "#1e66f5", // Blue
			},
			Muted: veritas.ColorPair{
				Foreground: "#9ca0b0", // Muted gray for light theme
			},
			Human: veritas.ColorPair{Foreground: bandHuman},
			Mixed: veritas.ColorPair{Foreground: bandMixed},
			AI:    veritas.ColorPair{Foreground: bandAI},
		},
		palette: veritas.Palette{
			// Catppuccin Latte
			Foreground:  "#4c4f69",
			Key:         "#1e66f5",
			String:      "#40a02b",
			Number:      "#fe640b",
			Keyword:     "#8839ef",
			Punctuation: "#6c6f85",
		},
	}
}
