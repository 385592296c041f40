package plantview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/grovetools/plantview/pkg/dashboard"
	"github.com/grovetools/plantview/tui/components"
	"github.com/grovetools/plantview/tui/theme"
	"github.com/grovetools/plantview/tui/utils/scrollbar"
)

const tooltipMaxWidth = 44

// View renders the dashboard.
func (m *Model) View() string {
	width, height := m.screenSize()

	lines := make([]string, 0, height)
	lines = append(lines, m.renderHeader(width), "")
	lines = append(lines, m.renderBoard(width)...)
	for len(lines) < height-footerLines {
		lines = append(lines, "")
	}
	lines = append(lines[:height-footerLines], m.renderFooter(width)...)
	screen := strings.Join(lines, "\n")

	if tip := m.ctrl.Tooltip(); tip.Visible {
		box := m.renderTooltip(tip)
		x, y := clampBox(tip.X, tip.Y, box, width, height)
		screen = components.PlaceOverlay(x, y, box, screen)
	}

	if menu := m.ctrl.Menu(); menu.Visible {
		x, y, _, _ := m.menuFrame(menu)
		screen = components.PlaceOverlay(x, y, m.renderMenu(menu), screen)
	}

	if m.help.ShowAll {
		screen = centerOverlay(m.help.FullView(), screen, width, height)
	}

	if len(m.notices) > 0 {
		screen = centerOverlay(m.renderNotice(m.notices[0]), screen, width, height)
	}
	return screen
}

func (m *Model) renderHeader(width int) string {
	t := m.theme
	left := components.RenderHeader(t, theme.IconRunning, "Plant Dashboard", m.serverURL)

	counts := map[string]int{}
	blocks := m.ctrl.Blocks()
	for _, b := range blocks {
		counts[b.Status]++
	}
	right := fmt.Sprintf("%s %s %s %s",
		t.Muted.Render(fmt.Sprintf("%d modules", len(blocks))),
		t.StatusStyle("online").Render(fmt.Sprintf("%s %d", theme.IconOnline, counts["online"])),
		t.StatusStyle("standby").Render(fmt.Sprintf("%s %d", theme.IconStandby, counts["standby"])),
		t.StatusStyle("offline").Render(fmt.Sprintf("%s %d", theme.IconOffline, counts["offline"])),
	)
	return components.RenderStatusBar(left, right, width)
}

// renderBoard returns the visible board lines, with a scrollbar when the
// board is taller than the screen.
func (m *Model) renderBoard(width int) []string {
	if len(m.layout.rects) == 0 {
		msg := "Waiting for plant data..."
		if _, err := m.ctrl.LastPoll(); err != nil {
			msg = "No plant data: " + err.Error()
		}
		return []string{m.theme.Muted.Render(msg)}
	}

	var all []string
	for _, s := range m.layout.sections {
		for len(all) < s.y {
			all = append(all, "")
		}
		all = append(all, m.theme.Category.Render(s.category))
		for _, row := range s.rows {
			rendered := make([]string, 0, len(row)*2)
			for i, b := range row {
				if i > 0 {
					rendered = append(rendered, strings.Repeat(" ", blockGap))
				}
				rendered = append(rendered, m.renderBlock(b))
			}
			all = append(all, strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, rendered...), "\n")...)
		}
	}

	h := m.boardHeight()
	end := min(m.offset+h, len(all))
	visible := all[m.offset:end]

	if len(all) > h {
		bar := scrollbar.Generate(len(all), h, m.offset, len(visible))
		for i := range visible {
			pad := max(width-1-ansi.StringWidth(visible[i]), 0)
			visible[i] += strings.Repeat(" ", pad) + bar[i]
		}
	}
	return visible
}

func (m *Model) renderBlock(b dashboard.Block) string {
	t := m.theme
	style := t.Block
	if b.ID == m.focusID {
		style = t.BlockFocused
	}
	style = style.BorderForeground(t.StatusColor(b.Status)).Width(blockInner + 2)

	status := b.Status
	if status == "" {
		status = "unknown"
	}
	name := ansi.Truncate(b.Name, blockInner, "…")
	line := t.StatusStyle(b.Status).Render(ansi.Truncate(fmt.Sprintf("%s %s", theme.StatusIcon(b.Status), status), blockInner, "…"))
	return style.Render(t.Bold.Render(name) + "\n" + line)
}

func (m *Model) renderTooltip(tip dashboard.Tooltip) string {
	t := m.theme
	lines := []string{
		t.Bold.Render(tip.Name),
		fmt.Sprintf("%s %s", t.Muted.Render("Status:"), t.StatusStyle(strings.ToLower(tip.Status)).Render(tip.Status)),
	}
	for _, d := range tip.Details {
		lines = append(lines, fmt.Sprintf("%s %s", t.Muted.Render(d.Label+":"), d.Value))
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, tooltipMaxWidth, "…")
	}
	return t.Tooltip.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderMenu(menu dashboard.Menu) string {
	t := m.theme
	if len(menu.Items) == 0 {
		return t.Menu.Render(t.MenuItem.Render(t.Muted.Render("no actions")))
	}

	labels := make([]string, len(menu.Items))
	w := 0
	for i, item := range menu.Items {
		labels[i] = fmt.Sprintf("%d %s", i+1, item.Label)
		w = max(w, ansi.StringWidth(labels[i]))
	}
	rows := make([]string, len(labels))
	for i, l := range labels {
		style := t.MenuItem
		if i == m.menuHot {
			style = t.MenuItemHot
		}
		rows[i] = style.Width(w + 2).Render(l)
	}
	return t.Menu.Render(strings.Join(rows, "\n"))
}

// menuFrame returns the on-screen position and size of the menu box,
// kept inside the screen.
func (m *Model) menuFrame(menu dashboard.Menu) (x, y, w, h int) {
	box := m.renderMenu(menu)
	w, h = lipgloss.Width(box), lipgloss.Height(box)
	width, height := m.screenSize()
	x, y = clampBox(menu.X, menu.Y, box, width, height)
	return x, y, w, h
}

func (m *Model) renderNotice(n dashboard.Notice) string {
	t := m.theme
	style, icon, title := t.Notice, theme.IconSuccess, "Success"
	switch n.Level {
	case dashboard.NoticeError:
		style, icon, title = t.NoticeError, theme.IconError, "Error"
	case dashboard.NoticeInfo:
		icon, title = theme.IconInfo, "Notice"
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		t.Bold.Render(fmt.Sprintf("%s %s", icon, title)),
		"",
		n.Text,
		"",
		t.Muted.Render("enter to dismiss"),
	)
	return style.Render(body)
}

func (m *Model) renderFooter(width int) []string {
	t := m.theme
	var status string
	at, err := m.ctrl.LastPoll()
	switch {
	case err != nil:
		status = t.Error.Render(fmt.Sprintf("%s refresh failed", theme.IconError))
	case at.IsZero():
		status = t.Muted.Render("not refreshed yet")
	default:
		status = t.Muted.Render("updated " + at.Format("15:04:05"))
	}
	if m.ctrl.Polling() {
		status = m.spinner.View() + " " + status
	}
	status += t.Muted.Render(fmt.Sprintf(" • every %s", m.interval))

	return []string{
		components.RenderDivider(t, width),
		components.RenderStatusBar(m.help.ShortView(), status, width),
	}
}

// screenSize returns the terminal size, or the board's natural size
// before the first WindowSizeMsg.
func (m *Model) screenSize() (int, int) {
	width, height := m.width, m.height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = headerLines + m.layout.height + footerLines
	}
	return width, max(height, headerLines+footerLines+1)
}

// clampBox keeps a box anchored at (x, y) inside a width x height screen.
func clampBox(x, y int, box string, width, height int) (int, int) {
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	x = max(min(x, width-w), 0)
	y = max(min(y, height-h), 0)
	return x, y
}

func centerOverlay(box, screen string, width, height int) string {
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	return components.PlaceOverlay(max((width-w)/2, 0), max((height-h)/2, 0), box, screen)
}
