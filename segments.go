package veritas

import "strings"

// OriginalText rebuilds the original input of a diff from its Same and
// Removed segments.
func OriginalText(segs []DiffSegment) string {
	var sb strings.Builder
	for _, s := range segs {
		if s.Kind != DiffAdded {
			sb.WriteString(s.Value)
		}
	}
	return sb.String()
}

// RevisedText rebuilds the revised input of a diff from its Same and Added
// segments.
func RevisedText(segs []DiffSegment) string {
	var sb strings.Builder
	for _, s := range segs {
		if s.Kind != DiffRemoved {
			sb.WriteString(s.Value)
		}
	}
	return sb.String()
}

// SourceText rebuilds the source of a highlight by concatenating every segment.
func SourceText(segs []HighlightSegment) string {
	var sb strings.Builder
	for _, s := range segs {
		sb.WriteString(s.Value)
	}
	return sb.String()
}

// CoalesceDiff merges adjacent segments of the same kind. The result
// reconstructs the same texts as the input with fewer segments.
func CoalesceDiff(segs []DiffSegment) []DiffSegment {
	if len(segs) == 0 {
		return nil
	}
	out := make([]DiffSegment, 0, len(segs))
	cur := segs[0]
	for _, s := range segs[1:] {
		if s.Kind == cur.Kind {
			cur.Value += s.Value
			continue
		}
		out = append(out, cur)
		cur = s
	}
	return append(out, cur)
}

// CoalesceHighlight merges adjacent segments of the same kind.
//
// Adjacent highlighted segments come from separate matches; merging them is a
// rendering choice and loses the match boundaries.
func CoalesceHighlight(segs []HighlightSegment) []HighlightSegment {
	if len(segs) == 0 {
		return nil
	}
	out := make([]HighlightSegment, 0, len(segs))
	cur := segs[0]
	for _, s := range segs[1:] {
		if s.Kind == cur.Kind {
			cur.Value += s.Value
			continue
		}
		out = append(out, cur)
		cur = s
	}
	return append(out, cur)
}

// DiffStats counts segments by kind.
type DiffStats struct {
	Same    int `json:"same"`
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// Changed reports whether any segment was added or removed.
func (s DiffStats) Changed() bool {
	return s.Added > 0 || s.Removed > 0
}

// DiffStatsOf counts the segments in segs by kind. Whitespace-only segments
// are not counted, so on per-token output the numbers are word counts.
func DiffStatsOf(segs []DiffSegment) DiffStats {
	var st DiffStats
	for _, s := range segs {
		if strings.TrimSpace(s.Value) == "" {
			continue
		}
		switch s.Kind {
		case DiffSame:
			st.Same++
		case DiffAdded:
			st.Added++
		case DiffRemoved:
			st.Removed++
		}
	}
	return st
}

// HighlightedValues returns the values of the highlighted segments in source
// order.
func HighlightedValues(segs []HighlightSegment) []string {
	var out []string
	for _, s := range segs {
		if s.Kind == HighlightMarked {
			out = append(out, s.Value)
		}
	}
	return out
}
