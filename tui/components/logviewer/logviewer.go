package logviewer

import (
	"encoding/json"
	"fmt"
	"io"
	stdlog "log"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hpcloud/tail"
	"github.com/grovetools/plantview/tui/theme"
	"github.com/grovetools/plantview/tui/utils/scrollbar"
)

// LogLineMsg is sent when a new log line is received.
type LogLineMsg struct {
	Line string
}

// TailErrorMsg is sent when a file cannot be tailed.
type TailErrorMsg struct {
	Path string
	Err  error
}

// Model is the TUI component for viewing a log file.
type Model struct {
	viewport viewport.Model
	tail     *tail.Tail
	mu       sync.Mutex
	follow   bool
	ready    bool
	width    int
	height   int
	lines    chan LogLineMsg
	content  []string
}

// New creates a new log viewer model.
func New(width, height int) *Model {
	return &Model{
		viewport: viewport.New(width, max(height-1, 0)),
		follow:   true,
		width:    width,
		height:   height,
		lines:    make(chan LogLineMsg, 100),
	}
}

// Start tails path from the beginning and keeps following it, surviving
// rotation.
func (m *Model) Start(path string) tea.Cmd {
	m.Stop()
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := tail.TailFile(path, tail.Config{
		Follow:   true,
		ReOpen:   true,
		Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekStart},
		Logger:   stdlog.New(io.Discard, "", 0),
	})
	if err != nil {
		return func() tea.Msg { return TailErrorMsg{Path: path, Err: err} }
	}
	m.tail = t

	go func(t *tail.Tail) {
		for line := range t.Lines {
			m.lines <- LogLineMsg{Line: line.Text}
		}
	}(t)

	return m.waitForLogLine()
}

// Stop halts tailing.
func (m *Model) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tail != nil {
		_ = m.tail.Stop()
		m.tail.Cleanup()
		m.tail = nil
	}
}

// SetContent shows static content, stopping any tail.
func (m *Model) SetContent(content string) {
	m.Stop()
	m.content = strings.Split(content, "\n")
	m.refresh()
	m.viewport.GotoBottom()
}

// Lines returns the formatted lines received so far.
func (m *Model) Lines() []string {
	return append([]string(nil), m.content...)
}

// IsFollowing reports whether new lines scroll the view to the bottom.
func (m *Model) IsFollowing() bool {
	return m.follow
}

func (m *Model) waitForLogLine() tea.Cmd {
	return func() tea.Msg {
		return <-m.lines
	}
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	// One column is kept for the scrollbar.
	wrap := lipgloss.NewStyle().Width(max(m.viewport.Width-1, 1))
	wrapped := make([]string, 0, len(m.content))
	for _, line := range m.content {
		wrapped = append(wrapped, wrap.Render(line))
	}
	m.viewport.SetContent(strings.Join(wrapped, "\n"))
}

// Init initializes the component.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-1, 0)
		m.ready = true
		m.refresh()
	case LogLineMsg:
		m.content = append(m.content, FormatLine(msg.Line))
		m.refresh()
		if m.follow {
			m.viewport.GotoBottom()
		}
		cmds = append(cmds, m.waitForLogLine())
	case TailErrorMsg:
		m.content = append(m.content, theme.DefaultTheme.Error.Render(
			fmt.Sprintf("cannot follow %s: %v", msg.Path, msg.Err)))
		m.refresh()
	case tea.KeyMsg:
		if msg.String() == "f" {
			m.follow = !m.follow
			if m.follow {
				m.viewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View renders the log lines with a scrollbar and a status line.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing log viewer..."
	}
	t := theme.DefaultTheme
	body := scrollbar.Append(m.viewport.View(), scrollbar.ForViewport(&m.viewport, m.viewport.Height))

	mode := t.Muted.Render("paused")
	if m.follow {
		mode = t.Success.Render("following")
	}
	status := fmt.Sprintf("%s %s", mode, t.Muted.Render(fmt.Sprintf("%d lines • f toggle follow • q quit", len(m.content))))
	return body + "\n" + status
}

// App runs a Model as a standalone program that quits on q or ctrl+c.
type App struct {
	Viewer *Model
	Path   string
	Quit   key.Binding
}

// NewApp creates a standalone viewer for path.
func NewApp(path string) *App {
	return &App{
		Viewer: New(0, 0),
		Path:   path,
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc")),
	}
}

// Init starts tailing.
func (a *App) Init() tea.Cmd {
	return a.Viewer.Start(a.Path)
}

// Update forwards to the viewer.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, a.Quit) {
		a.Viewer.Stop()
		return a, tea.Quit
	}
	var cmd tea.Cmd
	a.Viewer, cmd = a.Viewer.Update(msg)
	return a, cmd
}

// View renders the viewer.
func (a *App) View() string {
	return a.Viewer.View()
}

var levelToken = regexp.MustCompile(`\[(TRACE|DEBUG|INFO|WARN|ERROR|FATAL|PANIC)\]`)

// FormatLine colors a log line by level. JSON lines, as written with the
// json format preset, are rendered in the text layout.
func FormatLine(line string) string {
	t := theme.DefaultTheme

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		return levelToken.ReplaceAllStringFunc(line, func(tok string) string {
			return LevelStyle(strings.Trim(tok, "[]")).Render(tok)
		})
	}

	msg, _ := entry["msg"].(string)
	level, _ := entry["level"].(string)
	ts, _ := entry["time"].(string)
	component, _ := entry["component"].(string)

	var parts []string
	if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
		parts = append(parts, t.Muted.Render(parsed.Format("2006-01-02 15:04:05")))
	}
	parts = append(parts, LevelStyle(level).Render(fmt.Sprintf("[%s]", strings.ToUpper(level))))
	if component != "" {
		parts = append(parts, fmt.Sprintf("[%s]", t.Accent.Render(component)))
	}
	parts = append(parts, msg)
	return strings.Join(parts, " ")
}

// LevelStyle returns the style used for a log level.
func LevelStyle(level string) lipgloss.Style {
	t := theme.DefaultTheme
	switch strings.ToLower(level) {
	case "info":
		return t.Success
	case "warn", "warning":
		return t.Warning
	case "error", "fatal", "panic":
		return t.Error
	case "debug", "trace":
		return t.Muted
	default:
		return lipgloss.NewStyle()
	}
}
