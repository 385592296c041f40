package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/grovetools/plantview/tui/theme"
)

// KeyMap is implemented by keymaps that can describe themselves.
// Each FullHelp group may start with a binding that has only a
// description; it becomes the group's title.
type KeyMap interface {
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
}

// Model is an embeddable help component: a one-line hint for the footer
// and a full-screen modal listing every binding.
type Model struct {
	Keys    KeyMap
	ShowAll bool
	Width   int
	Height  int
	Theme   *theme.Theme
	Title   string
}

// New creates a help model for keys.
func New(keys KeyMap) Model {
	return Model{
		Keys:  keys,
		Theme: theme.DefaultTheme,
		Title: "Help",
	}
}

// Toggle shows or hides the full help.
func (m *Model) Toggle() {
	m.ShowAll = !m.ShowAll
}

// SetSize records the screen size used to center the modal.
func (m *Model) SetSize(width, height int) {
	m.Width = width
	m.Height = height
}

// ShortView renders the compact, single-line help.
func (m Model) ShortView() string {
	if m.Keys == nil {
		return ""
	}
	t := m.theme()

	var pairs []string
	for _, binding := range m.Keys.ShortHelp() {
		if !binding.Enabled() {
			continue
		}
		h := binding.Help()
		if h.Key == "" || h.Desc == "" {
			continue
		}
		pairs = append(pairs, fmt.Sprintf("%s %s", t.Highlight.Render(h.Key), t.Muted.Render(h.Desc)))
	}
	if len(pairs) == 0 {
		return ""
	}
	return strings.Join(pairs, t.Muted.Render(" • "))
}

// FullView renders the help box, one bordered section per group.
func (m Model) FullView() string {
	if m.Keys == nil {
		return ""
	}
	t := m.theme()

	var sections []string
	for _, group := range m.Keys.FullHelp() {
		if s := m.renderGroup(group); s != "" {
			sections = append(sections, s)
		}
	}
	if len(sections) == 0 {
		return ""
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, sections...)
	if m.Width > 0 && lipgloss.Width(body) > m.Width-4 {
		body = lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Colors.Orange).
		Width(lipgloss.Width(body)).
		Align(lipgloss.Center).
		Render(m.Title)

	return lipgloss.JoinVertical(lipgloss.Left, title, body)
}

func (m Model) renderGroup(group []key.Binding) string {
	t := m.theme()
	name := ""
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Cyan)

	table := ltable.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})

	rows := 0
	for _, binding := range group {
		if !binding.Enabled() {
			continue
		}
		h := binding.Help()
		switch {
		case h.Key == "" && h.Desc != "":
			name = h.Desc
		case h.Key != "" && h.Desc != "":
			table = table.Row(keyStyle.Render(h.Key), t.Muted.Italic(true).Render(h.Desc))
			rows++
		}
	}
	if rows == 0 {
		return ""
	}

	content := table.String()
	if name != "" {
		heading := lipgloss.NewStyle().Foreground(t.Colors.Orange).Italic(true).Render(name)
		content = lipgloss.JoinVertical(lipgloss.Left, heading, content)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Colors.Border).
		Padding(0, 1).
		Render(content)
}

func (m Model) theme() *theme.Theme {
	if m.Theme == nil {
		return theme.DefaultTheme
	}
	return m.Theme
}
