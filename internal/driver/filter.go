package driver

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dlclark/regexp2"
)

// filterTimeout bounds a single match; backtracking patterns are allowed.
const filterTimeout = 100 * time.Millisecond

// SourceFilter excludes paths matching any of its patterns. Patterns use
// the .NET/ECMAScript regex dialect, so lookarounds like `^(?!src/)` work.
// Paths are matched in slash form. A nil filter excludes nothing.
type SourceFilter struct {
	patterns []*regexp2.Regexp
}

func NewSourceFilter(patterns []string) (*SourceFilter, error) {
	f := &SourceFilter{}
	for _, p := range patterns {
		if p == "" {
			continue
		}
		re, err := regexp2.Compile(p, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		re.MatchTimeout = filterTimeout
		f.patterns = append(f.patterns, re)
	}
	return f, nil
}

// Excluded reports whether path matches an exclude pattern. A match that
// times out counts as no match.
func (f *SourceFilter) Excluded(path string) bool {
	if f == nil {
		return false
	}
	slashed := filepath.ToSlash(path)
	for _, re := range f.patterns {
		if ok, err := re.MatchString(slashed); err == nil && ok {
			return true
		}
	}
	return false
}

func (f *SourceFilter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.patterns)
}
