package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewThemeWithName(t *testing.T) {
	assert.Equal(t, "gruvbox", NewThemeWithName("Gruvbox Dark").Name)
	assert.Equal(t, "kanagawa", NewThemeWithName("kanagawa_wave").Name)
	assert.Equal(t, "terminal", NewThemeWithName("terminal").Name)
	assert.Equal(t, defaultThemeName, NewThemeWithName("does-not-exist").Name)
}

func TestStatusColor(t *testing.T) {
	th := NewThemeWithName("terminal")
	assert.Equal(t, th.Colors.Green, th.StatusColor("online"))
	assert.Equal(t, th.Colors.Red, th.StatusColor("offline"))
	assert.Equal(t, th.Colors.Yellow, th.StatusColor("standby"))
	assert.Equal(t, th.Colors.Border, th.StatusColor("maintenance"))
}

func TestStatusIcon(t *testing.T) {
	SetASCII(true)
	defer SetASCII(false)

	assert.Equal(t, "●", StatusIcon("online"))
	assert.Equal(t, "○", StatusIcon("offline"))
	assert.Equal(t, "◐", StatusIcon("standby"))
	assert.Equal(t, "?", StatusIcon(""))
}
