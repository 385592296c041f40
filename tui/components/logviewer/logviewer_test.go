package logviewer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLineText(t *testing.T) {
	line := "2026-10-17 10:00:00 [ERROR] [dashboard] Failed to fetch live data"
	assert.Equal(t, line, ansi.Strip(FormatLine(line)))
}

func TestFormatLineJSON(t *testing.T) {
	line := `{"component":"dashboard","level":"warning","msg":"slow","time":"2026-10-17T10:00:00Z"}`
	assert.Equal(t, "2026-10-17 10:00:00 [WARNING] [dashboard] slow", ansi.Strip(FormatLine(line)))
}

func TestUpdateAppendsLines(t *testing.T) {
	m := New(40, 10)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	m, cmd := m.Update(LogLineMsg{Line: "[INFO] hello"})
	assert.NotNil(t, cmd)
	assert.Equal(t, []string{"[INFO] hello"}, stripAll(m.Lines()))
	assert.Contains(t, ansi.Strip(m.View()), "hello")
	assert.Contains(t, ansi.Strip(m.View()), "following")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	assert.False(t, m.IsFollowing())
}

func TestStartTailsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plantview.log")
	require.NoError(t, os.WriteFile(path, []byte("[INFO] first\n"), 0o644))

	m := New(40, 10)
	cmd := m.Start(path)
	require.NotNil(t, cmd)
	defer m.Stop()

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		assert.Equal(t, LogLineMsg{Line: "[INFO] first"}, msg)
	case <-time.After(5 * time.Second):
		t.Fatal("no line tailed")
	}
}

func TestAppQuits(t *testing.T) {
	app := NewApp(filepath.Join(t.TempDir(), "missing.log"))
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func stripAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = ansi.Strip(l)
	}
	return out
}
