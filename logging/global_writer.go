package logging

import (
	"io"
	"os"
	"sync"
)

// terminalSink is where every logger's stderr side ends up. The target
// can change while loggers are in use.
type terminalSink struct {
	mu     sync.RWMutex
	target io.Writer
}

func (t *terminalSink) Write(p []byte) (int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.target.Write(p)
}

func (t *terminalSink) swap(w io.Writer) io.Writer {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev := t.target
	t.target = w
	return prev
}

var terminal = &terminalSink{target: os.Stderr}

// SetGlobalOutput redirects the terminal side of every logger.
func SetGlobalOutput(w io.Writer) {
	terminal.swap(w)
}

// GetGlobalOutput returns the shared terminal writer. Loggers hold on to
// it, so later SetGlobalOutput calls still reach them.
func GetGlobalOutput() io.Writer {
	return terminal
}

// MuteTerminal discards terminal log output until the returned func is
// called. File sinks keep writing. The dashboard mutes while the alternate
// screen is up.
func MuteTerminal() (restore func()) {
	prev := terminal.swap(io.Discard)
	return func() { terminal.swap(prev) }
}
