package profiling

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabledProfilerIsSilent(t *testing.T) {
	var p Profiler
	p.Start("fetch").Stop()

	var buf bytes.Buffer
	p.Summarize(&buf)
	assert.Empty(t, buf.String())
}

func TestNestedSpans(t *testing.T) {
	var p Profiler
	p.Enable()

	outer := p.Start("action")
	p.Start("fetch plant data").Stop()
	p.Start("dispatch").Stop()
	outer.Stop()
	p.Start("render").Stop()

	var buf bytes.Buffer
	p.Summarize(&buf)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	assert.Len(t, lines, 5)
	assert.Contains(t, lines[0], "total")
	assert.True(t, strings.HasPrefix(lines[1], "  - action"))
	assert.True(t, strings.HasPrefix(lines[2], "    - fetch plant data"))
	assert.True(t, strings.HasPrefix(lines[3], "    - dispatch"))
	assert.True(t, strings.HasPrefix(lines[4], "  - render"))
}
