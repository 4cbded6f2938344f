// Package scrollbar draws a one-column scrollbar beside a viewport.
package scrollbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

const (
	thumb = "█"
	track = "░"
)

// Generate returns one scrollbar cell per row for a bar of the given height.
// The thumb is sized by the visible share of the content and placed by the
// scroll position. Content that fits entirely is drawn as a full thumb.
func Generate(vp *viewport.Model, height int, style lipgloss.Style) []string {
	if height <= 0 {
		return []string{}
	}
	bar := make([]string, height)

	total := vp.TotalLineCount()
	if total == 0 {
		for i := range bar {
			bar[i] = " "
		}
		return bar
	}
	if total <= vp.Height {
		for i := range bar {
			bar[i] = style.Render(thumb)
		}
		return bar
	}

	size := max(1, height*vp.Height/total)
	percent := min(max(vp.ScrollPercent(), 0), 1)
	maxStart := height - size
	start := min(max(int(float64(maxStart)*percent+0.5), 0), maxStart)

	for i := range bar {
		if i >= start && i < start+size {
			bar[i] = style.Render(thumb)
		} else {
			bar[i] = style.Render(track)
		}
	}
	return bar
}

// Overlay returns the viewport's visible rows with a scrollbar cell appended
// to each. Short rows are padded so the bar stays in one column.
func Overlay(vp *viewport.Model, style lipgloss.Style) string {
	lines := strings.Split(vp.View(), "\n")
	bar := Generate(vp, len(lines), style)

	for i, line := range lines {
		if pad := vp.Width - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		lines[i] = line + bar[i]
	}
	return strings.Join(lines, "\n")
}
