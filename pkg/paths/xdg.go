// Package paths resolves where plantview keeps its configuration, state
// and logs.
//
// PLANTVIEW_HOME makes the install portable ($PLANTVIEW_HOME/config,
// $PLANTVIEW_HOME/state). Otherwise XDG_CONFIG_HOME and XDG_STATE_HOME are
// honoured, falling back to ~/.config and ~/.local/state.
package paths

import (
	"os"
	"path/filepath"
)

const appName = "plantview"

// appDir returns <base>/plantview where base comes from the portable
// root, the XDG variable, or home-relative fallback, in that order.
func appDir(portable, xdgVar string, fallback ...string) string {
	var base string
	switch {
	case os.Getenv("PLANTVIEW_HOME") != "":
		base = filepath.Join(os.Getenv("PLANTVIEW_HOME"), portable)
	case os.Getenv(xdgVar) != "":
		base = os.Getenv(xdgVar)
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(append([]string{home}, fallback...)...)
	}
	return filepath.Join(base, appName)
}

// ConfigDir holds the user-level plantview.yml.
func ConfigDir() string {
	return appDir("config", "XDG_CONFIG_HOME", ".config")
}

// StateDir holds state.yml and the logs directory.
func StateDir() string {
	return appDir("state", "XDG_STATE_HOME", ".local", "state")
}

// LogsDir returns the directory the dashboard writes its log files to.
func LogsDir() string {
	if dir := StateDir(); dir != "" {
		return filepath.Join(dir, "logs")
	}
	return ""
}
