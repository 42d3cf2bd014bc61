package filter

import "github.com/robmoss/asciinema-scripted/internal/cast"

// StartMarker drops every event up to and including the first marker
// whose label matches. When no marker matches, the output is empty:
// nothing found means nothing kept.
type StartMarker struct {
	Label string
}

// Apply implements cast.Filter.
func (f StartMarker) Apply(h cast.Header, events []cast.Event) []cast.Event {
	out := []cast.Event{}
	started := false
	for _, ev := range events {
		if started {
			out = append(out, ev)
		} else if ev.Kind == cast.Marker && ev.Data == f.Label {
			started = true
		}
	}
	return out
}

// EndMarker keeps every event strictly before the first marker whose
// label matches, excluding the marker itself. When no marker matches,
// the input passes through unchanged. The asymmetry with StartMarker's
// empty-output behavior is intentional.
type EndMarker struct {
	Label string
}

// Apply implements cast.Filter.
func (f EndMarker) Apply(h cast.Header, events []cast.Event) []cast.Event {
	out := []cast.Event{}
	for _, ev := range events {
		if ev.Kind == cast.Marker && ev.Data == f.Label {
			break
		}
		out = append(out, ev)
	}
	return out
}
