// Package profiling times the phases of a one-shot command (config load,
// fetch, dispatch) and optionally writes a CPU profile.
package profiling

import (
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
)

// Stopper ends a span.
type Stopper interface {
	Stop()
}

type span struct {
	name     string
	start    time.Time
	duration time.Duration
	children []*span
	p        *Profiler
}

func (s *span) Stop() {
	s.p.mu.Lock()
	defer s.p.mu.Unlock()
	s.duration = time.Since(s.start)
	if n := len(s.p.stack); n > 1 && s.p.stack[n-1] == s {
		s.p.stack = s.p.stack[:n-1]
	}
}

type noop struct{}

func (noop) Stop() {}

// Profiler collects nested spans. The zero value is disabled.
type Profiler struct {
	mu      sync.Mutex
	enabled bool
	root    *span
	stack   []*span
}

// Enable starts collecting.
func (p *Profiler) Enable() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled {
		return
	}
	p.enabled = true
	p.root = &span{name: "total", start: time.Now(), p: p}
	p.stack = []*span{p.root}
}

// Start opens a span nested in the innermost open one.
func (p *Profiler) Start(name string) Stopper {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return noop{}
	}
	s := &span{name: name, start: time.Now(), p: p}
	parent := p.stack[len(p.stack)-1]
	parent.children = append(parent.children, s)
	p.stack = append(p.stack, s)
	return s
}

// Summarize writes the span tree with each span's share of the total.
func (p *Profiler) Summarize(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	total := time.Since(p.root.start)
	fmt.Fprintf(w, "timing: %v total\n", total.Round(100*time.Microsecond))
	for _, c := range p.root.children {
		writeSpan(w, c, 1, total)
	}
}

func writeSpan(w io.Writer, s *span, depth int, total time.Duration) {
	pct := 0.0
	if total > 0 {
		pct = float64(s.duration) / float64(total) * 100
	}
	fmt.Fprintf(w, "%s- %s (%v, %.1f%%)\n", strings.Repeat("  ", depth), s.name, s.duration.Round(100*time.Microsecond), pct)
	for _, c := range s.children {
		writeSpan(w, c, depth+1, total)
	}
}

var defaultProfiler = &Profiler{}

// Start opens a span on the process-wide profiler.
func Start(name string) Stopper { return defaultProfiler.Start(name) }

// CobraProfiler adds --timing and --cpu-profile to a command tree.
type CobraProfiler struct {
	timing     bool
	cpuProfile string
	cpuFile    *os.File
}

// AddFlags registers the hidden profiling flags on cmd.
func (c *CobraProfiler) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&c.timing, "timing", false, "Print a timing summary on exit")
	cmd.PersistentFlags().StringVar(&c.cpuProfile, "cpu-profile", "", "Write a CPU profile to this file")
	_ = cmd.PersistentFlags().MarkHidden("timing")
	_ = cmd.PersistentFlags().MarkHidden("cpu-profile")
}

// PreRun starts whatever the flags asked for.
func (c *CobraProfiler) PreRun(cmd *cobra.Command, args []string) error {
	if c.timing {
		defaultProfiler.Enable()
	}
	if c.cpuProfile != "" {
		f, err := os.Create(c.cpuProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		c.cpuFile = f
	}
	return nil
}

// PostRun stops profiling and prints the timing summary to stderr.
func (c *CobraProfiler) PostRun(cmd *cobra.Command, args []string) {
	if c.cpuFile != nil {
		pprof.StopCPUProfile()
		c.cpuFile.Close()
		c.cpuFile = nil
	}
	if c.timing {
		defaultProfiler.Summarize(cmd.ErrOrStderr())
	}
}
