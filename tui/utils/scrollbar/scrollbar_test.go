package scrollbar

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func newViewport(lines, height int) *viewport.Model {
	vp := viewport.New(10, height)
	var rows []string
	for i := 0; i < lines; i++ {
		rows = append(rows, fmt.Sprintf("row %d", i))
	}
	vp.SetContent(strings.Join(rows, "\n"))
	return &vp
}

func TestGenerateFits(t *testing.T) {
	bar := Generate(newViewport(3, 5), 5, lipgloss.NewStyle())
	assert.Equal(t, []string{thumb, thumb, thumb, thumb, thumb}, bar)
}

func TestGenerateScrolls(t *testing.T) {
	vp := newViewport(40, 10)

	bar := Generate(vp, 10, lipgloss.NewStyle())
	assert.Equal(t, thumb, bar[0])
	assert.Equal(t, thumb, bar[1])
	assert.Equal(t, track, bar[2])
	assert.Equal(t, track, bar[9])

	vp.GotoBottom()
	bar = Generate(vp, 10, lipgloss.NewStyle())
	assert.Equal(t, track, bar[0])
	assert.Equal(t, thumb, bar[9])
}

func TestGenerateEmpty(t *testing.T) {
	assert.Empty(t, Generate(newViewport(3, 5), 0, lipgloss.NewStyle()))
}

func TestOverlay(t *testing.T) {
	out := Overlay(newViewport(3, 3), lipgloss.NewStyle())
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, 11, lipgloss.Width(line))
		assert.True(t, strings.HasSuffix(line, thumb))
	}
}
