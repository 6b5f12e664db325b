package bubbletea

import (
	"fmt"
	"strings"
	"time"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/dustin/go-humanize"
	"github.com/fwojciec/veritas"
)

// PreviewLength is the number of user-perceived characters shown for each
// history entry.
const PreviewLength = 100

// Preview shortens s to at most n grapheme clusters, appending "..." when
// anything was cut. Line breaks become spaces so the preview fits one line.
func Preview(s string, n int) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")

	iter := graphemes.FromString(s)
	count := 0
	for iter.Next() {
		if count == n {
			return s[:iter.Start()] + "..."
		}
		count++
	}
	return s
}

// History renders history items newest first. now anchors relative times.
func (r *Renderer) History(items []veritas.HistoryItem, now time.Time) string {
	if len(items) == 0 {
		return r.style(r.styles.Muted).Render("No history yet.") + "\n"
	}

	heading := r.style(r.styles.Heading).Bold(true)
	muted := r.style(r.styles.Muted)

	var b strings.Builder
	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]
		fmt.Fprintf(&b, "%s  %s  %s\n",
			heading.Render(item.Mode.DisplayName()),
			muted.Render(humanize.RelTime(item.Timestamp, now, "ago", "from now")),
			muted.Render(item.ID),
		)
		if item.Mode == veritas.ModeDetect && item.Detection != nil {
			band := r.style(r.styles.Band(veritas.BandFor(item.Detection.Score)))
			b.WriteString("  ")
			b.WriteString(band.Render(fmt.Sprintf("%d%% %s", item.Detection.Score, item.Detection.Label)))
			b.WriteString("\n")
		}
		b.WriteString("  ")
		b.WriteString(Preview(item.Input, PreviewLength))
		b.WriteString("\n")
		if i > 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
