// Package filter provides the built-in cast stream transformations:
// regex rewriting of output text, trimming by marker, and rendering of
// status-bar comments into real output events.
package filter

import (
	"fmt"
	"regexp"

	"github.com/robmoss/asciinema-scripted/internal/cast"
)

// RegexReplacement rewrites the payload of every Output event; all other
// event kinds pass through unchanged.
type RegexReplacement struct {
	re          *regexp.Regexp
	replacement string
}

// NewRegexReplacement compiles pattern and returns the filter. The
// replacement text uses Go capture-group syntax ($1, ${name}).
func NewRegexReplacement(pattern, replacement string) (*RegexReplacement, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling replacement pattern: %w", err)
	}
	return &RegexReplacement{re: re, replacement: replacement}, nil
}

// Apply implements cast.Filter.
func (f *RegexReplacement) Apply(h cast.Header, events []cast.Event) []cast.Event {
	out := make([]cast.Event, len(events))
	for i, ev := range events {
		if ev.Kind == cast.Output {
			ev.Data = f.re.ReplaceAllString(ev.Data, f.replacement)
		}
		out[i] = ev
	}
	return out
}
