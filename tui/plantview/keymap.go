package plantview

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/grovetools/plantview/config"
	"github.com/grovetools/plantview/tui/keymap"
)

// KeyMap defines the dashboard key bindings.
type KeyMap struct {
	keymap.Base
	OpenMenu   key.Binding
	MenuItem   key.Binding
	Dismiss    key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
}

// DefaultKeyMap returns the dashboard bindings with tui.keybindings
// overrides applied. Unknown override names are returned.
func DefaultKeyMap(overrides config.KeybindingConfig) (KeyMap, []string) {
	km := KeyMap{
		Base:     keymap.DefaultVim(),
		OpenMenu: key.NewBinding(key.WithKeys("m", "enter"), key.WithHelp("m/enter", "actions")),
		MenuItem: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "pick action"),
		),
		Dismiss:    keymap.New("close", "esc"),
		ScrollUp:   key.NewBinding(key.WithKeys("ctrl+u", "pgup"), key.WithHelp("C-u", "scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys("ctrl+d", "pgdown"), key.WithHelp("C-d", "scroll down")),
	}
	unknown := keymap.ApplyOverrides(&km, overrides)
	return km, unknown
}

// ShortHelp returns the footer bindings.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.OpenMenu, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns all bindings, grouped.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{
			key.NewBinding(key.WithHelp("", "Navigation")),
			k.Up, k.Down, k.Left, k.Right, k.ScrollUp, k.ScrollDown,
		},
		{
			key.NewBinding(key.WithHelp("", "Modules")),
			k.OpenMenu, k.MenuItem, k.Dismiss, k.Refresh,
		},
		{
			key.NewBinding(key.WithHelp("", "Mouse")),
			key.NewBinding(key.WithKeys("hover"), key.WithHelp("hover", "module details")),
			key.NewBinding(key.WithKeys("right"), key.WithHelp("right-click", "actions")),
			key.NewBinding(key.WithKeys("left"), key.WithHelp("click", "pick / close")),
		},
		{
			key.NewBinding(key.WithHelp("", "General")),
			k.Help, k.Quit,
		},
	}
}

// menuIndex maps a digit key to a zero-based menu item index.
func menuIndex(msg string) (int, bool) {
	if len(msg) != 1 || msg[0] < '1' || msg[0] > '9' {
		return 0, false
	}
	return int(msg[0] - '1'), true
}
