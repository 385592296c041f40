package theme

import (
	"os"

	"github.com/grovetools/plantview/config"
)

// Icon set, chosen once at startup from PLANTVIEW_ICONS or tui.icons.
var (
	IconSuccess string
	IconError   string
	IconWarning string
	IconInfo    string
	IconRunning string
	IconArrow   string
	IconOnline  string
	IconOffline string
	IconStandby string
	IconUnknown string
)

func init() {
	useASCII := os.Getenv("PLANTVIEW_ICONS") == "ascii"
	if !useASCII {
		if cfg, err := config.LoadDefault(); err == nil && cfg.TUI.Icons == "ascii" {
			useASCII = true
		}
	}
	SetASCII(useASCII)
}

// SetASCII switches between the Nerd Font and the plain icon set.
func SetASCII(ascii bool) {
	if ascii {
		IconSuccess = "✓"
		IconError = "✗"
		IconWarning = "!"
		IconInfo = "i"
		IconRunning = "*"
		IconArrow = ">"
		IconOnline = "●"
		IconOffline = "○"
		IconStandby = "◐"
		IconUnknown = "?"
		return
	}
	IconSuccess = "󰄬" // md-check
	IconError = "\uea87"   // cod-error
	IconWarning = "\uf071" // fa-warning
	IconInfo = "󰋼" // md-information
	IconRunning = "\uf021" // fa-refresh
	IconArrow = "󰁔" // md-arrow_right
	IconOnline = "󰐥" // md-power
	IconOffline = "󰤂" // md-power_off
	IconStandby = "󰒲" // md-sleep
	IconUnknown = "󰘥" // md-help_circle_outline
}

// StatusIcon returns the icon for a lower-cased module status.
func StatusIcon(status string) string {
	switch status {
	case "online":
		return IconOnline
	case "offline":
		return IconOffline
	case "standby":
		return IconStandby
	default:
		return IconUnknown
	}
}
