package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/grovetools/plantview/tui/theme"
)

// RenderHeader creates a consistent header line: a title and an optional
// muted subtitle on the same line.
func RenderHeader(t *theme.Theme, icon, title string, subtitle ...string) string {
	header := t.Header.Render(strings.TrimSpace(fmt.Sprintf("%s %s", icon, title)))
	if len(subtitle) > 0 && subtitle[0] != "" {
		return header + " " + t.Muted.Render(subtitle[0])
	}
	return header
}

// RenderStatusBar lays out left and right content on one line of width,
// padding between them. When both do not fit, right is dropped and left
// is truncated.
func RenderStatusBar(left, right string, width int) string {
	lw := ansi.StringWidth(left)
	rw := ansi.StringWidth(right)
	if width <= 0 {
		return left
	}
	if lw+rw+1 > width {
		return ansi.Truncate(left, width, "…")
	}
	return left + strings.Repeat(" ", width-lw-rw) + right
}

// RenderDivider creates a horizontal divider.
func RenderDivider(t *theme.Theme, width int) string {
	if width <= 0 {
		return ""
	}
	return t.TableBorder.Render(strings.Repeat("─", width))
}


// PlaceOverlay draws fg over bg with its top-left corner at (x, y).
// Cells of bg outside fg are kept; fg lines falling outside bg are
// dropped.
func PlaceOverlay(x, y int, fg, bg string) string {
	if fg == "" {
		return bg
	}
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")
	if x < 0 {
		x = 0
	}

	for i, line := range fgLines {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		base := bgLines[row]
		w := ansi.StringWidth(line)

		left := ansi.Truncate(base, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ""
		if ansi.StringWidth(base) > x+w {
			right = ansi.TruncateLeft(base, x+w, "")
		}
		bgLines[row] = left + ansi.ResetStyle + line + ansi.ResetStyle + right
	}
	return strings.Join(bgLines, "\n")
}
