package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grovetools/plantview/errors"
	"github.com/grovetools/plantview/version"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardCommandFlags(t *testing.T) {
	cmd := NewStandardCommand("plantview", "test")
	cmd.RunE = func(*cobra.Command, []string) error { return nil }
	cmd.SetArgs([]string{"-v", "--json", "-c", "x.yml", "--server", "http://h:1"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, CommandOptions{
		ConfigFile: "x.yml",
		Verbose:    true,
		JSONOutput: true,
		Server:     "http://h:1",
	}, GetOptions(cmd))
}

func TestLoadConfigServerOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plantview.yml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  base_url: http://plant:5000\n"), 0o600))

	cfg, err := LoadConfig(CommandOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "http://plant:5000", cfg.Server.BaseURL)

	cfg, err = LoadConfig(CommandOptions{ConfigFile: path, Server: "https://other:8443"})
	require.NoError(t, err)
	assert.Equal(t, "https://other:8443", cfg.Server.BaseURL)

	_, err = LoadConfig(CommandOptions{ConfigFile: path, Server: "not a url"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigValidation, errors.GetCode(err))
}

func TestHelpListsCommandsAndFlags(t *testing.T) {
	root := NewStandardCommand("plantview", "Terminal dashboard")
	root.Long = "Shows the plant.\n\nExamples:\n  # open it\n  plantview"
	root.AddCommand(&cobra.Command{Use: "status", Short: "Print statuses", Run: func(*cobra.Command, []string) {}})

	var buf bytes.Buffer
	renderHelp(&buf, root, 60)
	out := buf.String()

	assert.Contains(t, out, "PLANTVIEW")
	assert.Contains(t, out, "COMMANDS")
	assert.Contains(t, out, "status")
	assert.Contains(t, out, "Print statuses")
	assert.Contains(t, out, "FLAGS")
	assert.Contains(t, out, "--server")
	assert.Contains(t, out, "EXAMPLES")
	assert.Contains(t, out, "# open it")
	assert.NotContains(t, out, "Examples:")
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four five", 9)
	for _, line := range strings.Split(got, "\n") {
		assert.LessOrEqual(t, len(line), 9)
	}
	assert.Equal(t, "keep\nbreaks", wrapText("keep\nbreaks", 40))
}

func TestErrorHandlerMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"config not found", errors.ConfigNotFound("/tmp/p.yml"), "Configuration file not found: /tmp/p.yml"},
		{"request failed", errors.RequestFailed("GET", "http://h/api/plant_data", fmt.Errorf("refused")), "Could not reach the plant server at http://h/api/plant_data"},
		{"status", errors.UnexpectedStatus("POST", "http://h/module_action", 500), "answered 500 for POST http://h/module_action"},
		{"module", errors.ModuleNotFound("reactor_9"), "Module 'reactor_9' not found"},
		{"plain", fmt.Errorf("boom"), "Error: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &ErrorHandler{Out: &buf}
			assert.Equal(t, tt.err, h.Handle(tt.err))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestErrorHandlerValidationProblems(t *testing.T) {
	err := errors.New(errors.ErrCodeConfigValidation, "schema validation failed:\n- /tui/theme: bad").
		WithDetail("problems", []string{"- /tui/theme: bad"})

	var buf bytes.Buffer
	h := &ErrorHandler{Out: &buf, Verbose: true}
	_ = h.Handle(err)

	out := buf.String()
	assert.Contains(t, out, "Invalid configuration: schema validation failed:")
	assert.Equal(t, 1, strings.Count(out, "/tui/theme: bad\n"), "problem listed once outside the details")
	assert.Contains(t, out, "Error details:")
}

func TestVersionCommandText(t *testing.T) {
	info := version.Info{Version: "v1.2.3", Commit: "abc123", Branch: "main", BuildDate: "2026-10-01", GoVersion: "go1.24", Platform: "linux/amd64"}
	root := NewStandardCommand("plantview", "test")
	root.AddCommand(NewVersionCommand("plantview", info))

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())

	out := buf.String()
	assert.Contains(t, out, "plantview v1.2.3")
	assert.Contains(t, out, "Commit:")
	assert.Contains(t, out, "abc123")
	assert.Contains(t, out, "linux/amd64")
}
