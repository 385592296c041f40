// Package keymap holds the bindings every plantview screen shares and the
// tui.keybindings override mechanism.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// Base is embedded by screen keymaps. Field names double as the snake_case
// override names (Refresh -> "refresh").
type Base struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// New builds a binding whose help text lists keys[0].
func New(desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], desc))
}

// DefaultVim moves with hjkl as well as the arrows.
func DefaultVim() Base {
	return Base{
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/up", "up")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/down", "down")),
		Left:    key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/left", "left")),
		Right:   key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/right", "right")),
		Refresh: New("refresh now", "r"),
		Help:    New("help", "?"),
		Quit:    New("quit", "q", "ctrl+c"),
	}
}
