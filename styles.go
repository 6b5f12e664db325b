package veritas

// ColorPair represents a foreground and background color combination.
// Colors should be hex strings in "#RRGGBB" format (e.g., "#ff0000" for red).
// Empty strings are valid and indicate no color override (use terminal default).
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for all visual elements of a result.
type Styles struct {
	Same        ColorPair // Unchanged text in a diff
	Added       ColorPair // Text the rewrite introduced
	Removed     ColorPair // Text the rewrite dropped
	Plain       ColorPair // Unmarked source text
	Highlighted ColorPair // Text matching a suspicious phrase
	Heading     ColorPair // Card titles
	Muted       ColorPair // Secondary text (hints, timestamps)
	Human       ColorPair // Score band below 30
	Mixed       ColorPair // Score band 30-69
	AI          ColorPair // Score band 70 and up
}

// Band returns the color pair for a score band.
func (s Styles) Band(b Band) ColorPair {
	switch b {
	case BandHuman:
		return s.Human
	case BandMixed:
		return s.Mixed
	default:
		return s.AI
	}
}

// Color is a hex color string in "#RRGGBB" format.
type Color string

// Palette holds the colors used to syntax-highlight structured output such as
// exported JSON.
type Palette struct {
	Foreground  Color
	Key         Color // Object keys
	String      Color
	Number      Color
	Keyword     Color // true, false, null
	Punctuation Color
}

// Theme provides styles for rendering results.
// Different implementations can provide light/dark variants.
type Theme interface {
	Styles() Styles
	Palette() Palette
}
