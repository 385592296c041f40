package plant

import (
	"fmt"

	"github.com/moby/patternmatcher"
)

// Matcher selects modules by name using glob patterns. Patterns prefixed
// with "!" exclude. An empty matcher selects everything.
type Matcher struct {
	pm *patternmatcher.PatternMatcher
}

// NewMatcher compiles the given patterns.
func NewMatcher(patterns []string) (*Matcher, error) {
	if len(patterns) == 0 {
		return &Matcher{}, nil
	}
	pm, err := patternmatcher.New(patterns)
	if err != nil {
		return nil, fmt.Errorf("invalid module pattern: %w", err)
	}
	return &Matcher{pm: pm}, nil
}

// Match reports whether a module name is selected.
func (m *Matcher) Match(name string) bool {
	if m == nil || m.pm == nil {
		return true
	}
	ok, err := m.pm.MatchesOrParentMatches(name)
	if err != nil {
		return false
	}
	return ok
}

// Filter returns the modules of d whose names match.
func (m *Matcher) Filter(d *Dataset) []Module {
	var out []Module
	for _, mod := range d.All() {
		if m.Match(mod.Name) {
			out = append(out, mod)
		}
	}
	return out
}
