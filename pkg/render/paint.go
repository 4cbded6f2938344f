package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Segment is a maximal run of bytes sharing the same winning directive.
// Unstyled runs have Styled set to false.
type Segment struct {
	Start     int
	End       int
	Styled    bool
	Directive Directive
}

// Paint applies directives in order to a style buffer of the given length and
// returns the resulting runs, covering [0, length) without gaps. The last
// directive touching a byte wins.
func Paint(length int, directives []Directive) []Segment {
	if length <= 0 {
		return nil
	}
	owner := make([]int32, length)
	for i := range owner {
		owner[i] = -1
	}
	for i, d := range directives {
		start, end := max(d.Start, 0), min(d.End, length)
		for p := start; p < end; p++ {
			owner[p] = int32(i)
		}
	}

	var out []Segment
	runStart := 0
	for p := 1; p <= length; p++ {
		if p < length && owner[p] == owner[runStart] {
			continue
		}
		seg := Segment{Start: runStart, End: p}
		if idx := owner[runStart]; idx >= 0 {
			seg.Styled = true
			seg.Directive = directives[idx]
		}
		out = append(out, seg)
		runStart = p
	}
	return out
}

// Styler maps a directive to the terminal style used to draw it.
type Styler interface {
	StyleFor(d Directive) lipgloss.Style
}

// Apply paints text with directives and returns it with terminal styling.
// Newlines are never passed through a style so multi-line runs stay aligned.
func Apply(text string, directives []Directive, styler Styler) string {
	var b strings.Builder
	b.Grow(len(text) * 2)
	for _, seg := range Paint(len(text), directives) {
		chunk := text[seg.Start:seg.End]
		if !seg.Styled {
			b.WriteString(chunk)
			continue
		}
		style := styler.StyleFor(seg.Directive)
		for i, line := range strings.Split(chunk, "\n") {
			if i > 0 {
				b.WriteByte('\n')
			}
			if line != "" {
				b.WriteString(style.Render(line))
			}
		}
	}
	return b.String()
}
