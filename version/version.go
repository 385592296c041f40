// Package version reports build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Set by the linker, e.g.
// -X github.com/grovetools/plantview/version.Version=v0.3.0
var (
	Version   = "dev"
	Commit    = "none"
	Branch    = "unknown"
	BuildDate = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Branch    string `json:"branch"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// GetInfo returns the build information of the running binary.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Branch:    Branch,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Rows lists the build details below the version line, in display order.
func (i Info) Rows() [][]string {
	return [][]string{
		{"Commit", i.Commit},
		{"Branch", i.Branch},
		{"Built", i.BuildDate},
		{"Go", i.GoVersion},
		{"Platform", i.Platform},
	}
}

// String renders Rows as indented, aligned lines.
func (i Info) String() string {
	rows := i.Rows()
	lines := make([]string, len(rows))
	for n, r := range rows {
		lines[n] = fmt.Sprintf("  %-10s %s", r[0]+":", r[1])
	}
	return strings.Join(lines, "\n")
}
