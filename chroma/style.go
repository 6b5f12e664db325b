package chroma

import (
	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/fwojciec/veritas"
)

// StyleFromPalette returns a function that maps chroma token types to veritas
// styles based on the provided palette colors.
func StyleFromPalette(p veritas.Palette) StyleFunc {
	return func(tt chromalib.TokenType) veritas.Style {
		switch tt {
		// Object keys
		case chromalib.NameTag, chromalib.NameAttribute, chromalib.NameProperty:
			return veritas.Style{Foreground: string(p.Key), Bold: true}

		// true, false, null
		case chromalib.Keyword, chromalib.KeywordConstant:
			return veritas.Style{Foreground: string(p.Keyword)}

		case chromalib.String, chromalib.StringDouble, chromalib.StringSingle, chromalib.StringEscape:
			return veritas.Style{Foreground: string(p.String)}

		case chromalib.Number, chromalib.NumberFloat, chromalib.NumberInteger:
			return veritas.Style{Foreground: string(p.Number)}

		case chromalib.Punctuation, chromalib.Operator:
			return veritas.Style{Foreground: string(p.Punctuation)}

		default:
			return veritas.Style{Foreground: string(p.Foreground)}
		}
	}
}
