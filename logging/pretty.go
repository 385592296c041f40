package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/plantview/tui/theme"
)

// PrettyLogger writes user-facing console lines for the headless commands.
// Structured records still go through NewLogger.
type PrettyLogger struct {
	writer io.Writer
	theme  *theme.Theme
}

// NewPrettyLogger creates a pretty logger writing to stderr with the
// active theme.
func NewPrettyLogger() *PrettyLogger {
	return &PrettyLogger{writer: os.Stderr, theme: theme.DefaultTheme}
}

// WithWriter sets a custom writer for pretty output
func (p *PrettyLogger) WithWriter(w io.Writer) *PrettyLogger {
	p.writer = w
	return p
}

func (p *PrettyLogger) line(style lipgloss.Style, icon, message string) {
	if icon != "" {
		fmt.Fprintf(p.writer, "%s %s\n", style.Render(icon), style.Render(message))
		return
	}
	fmt.Fprintln(p.writer, style.Render(message))
}

func (p *PrettyLogger) Success(message string) {
	p.line(p.theme.Success, theme.IconSuccess, message)
}

func (p *PrettyLogger) InfoPretty(message string) {
	p.line(p.theme.Info, "", message)
}

func (p *PrettyLogger) WarnPretty(message string) {
	p.line(p.theme.Warning, theme.IconWarning, message)
}

// ErrorPretty prints message and, when present, the error text.
func (p *PrettyLogger) ErrorPretty(message string, err error) {
	if err != nil {
		message += ": " + err.Error()
	}
	p.line(p.theme.Error, theme.IconError, message)
}

// Field prints a key-value pair.
func (p *PrettyLogger) Field(key string, value interface{}) {
	fmt.Fprintf(p.writer, "%s: %s\n", p.theme.Muted.Render(key), p.theme.Bold.Render(fmt.Sprint(value)))
}

// Transition prints a module status change, coloring both statuses. An
// empty from means the module was not known before.
func (p *PrettyLogger) Transition(module, from, to string) {
	if from == "" {
		from = "-"
	}
	fmt.Fprintf(p.writer, "%s %s: %s %s %s\n",
		p.theme.StatusStyle(to).Render(theme.StatusIcon(to)),
		p.theme.Bold.Render(module),
		p.theme.StatusStyle(from).Render(from),
		p.theme.Muted.Render(theme.IconArrow),
		p.theme.StatusStyle(to).Render(to))
}
