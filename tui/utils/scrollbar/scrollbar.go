package scrollbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/grovetools/plantview/tui/theme"
)

const (
	thumb = "█"
	track = "░"
)

// Generate returns one scrollbar cell per line of height for content of
// total lines, of which visible are shown starting at offset.
func Generate(total, visible, offset, height int) []string {
	if height <= 0 {
		return []string{}
	}

	t := theme.DefaultTheme
	bar := make([]string, height)

	if total <= 0 {
		for i := range bar {
			bar[i] = " "
		}
		return bar
	}
	if total <= visible {
		for i := range bar {
			bar[i] = t.Muted.Render(thumb)
		}
		return bar
	}

	size := max(1, height*visible/total)
	maxStart := height - size
	maxOffset := total - visible
	offset = min(max(offset, 0), maxOffset)

	start := 0
	if maxOffset > 0 {
		start = int(float64(maxStart)*float64(offset)/float64(maxOffset) + 0.5)
	}
	start = min(max(start, 0), maxStart)

	for i := range bar {
		if i >= start && i < start+size {
			bar[i] = t.Muted.Render(thumb)
		} else {
			bar[i] = t.Muted.Render(track)
		}
	}
	return bar
}

// ForViewport returns the scrollbar for a viewport's current position.
func ForViewport(vp *viewport.Model, height int) []string {
	return Generate(vp.TotalLineCount(), vp.Height, vp.YOffset, height)
}

// Append adds a bar cell to the end of each line of content.
func Append(content string, bar []string) string {
	lines := strings.Split(content, "\n")
	for i := range lines {
		cell := " "
		if i < len(bar) {
			cell = bar[i]
		}
		lines[i] += cell
	}
	return strings.Join(lines, "\n")
}
