// Package cast implements the asciicast v2 data model: a header plus a
// time-ordered event stream, with parsing, serialization and chronological
// merging of late-bound events.
package cast

// Theme describes the recorded terminal's colour scheme.
type Theme struct {
	Fg      string   `json:"fg"`
	Bg      string   `json:"bg"`
	Palette []string `json:"palette"`
}

// Header is the first record of a cast file. Optional fields are pointers
// (or empty values) so that absent fields are omitted from the wire form
// rather than written as null.
type Header struct {
	Version       int               `json:"version"`
	Width         int               `json:"width"`
	Height        int               `json:"height"`
	Timestamp     *int64            `json:"timestamp,omitempty"`
	Duration      *float64          `json:"duration,omitempty"`
	IdleTimeLimit *float64          `json:"idle_time_limit,omitempty"`
	Command       string            `json:"command,omitempty"`
	Title         string            `json:"title,omitempty"`
	Env           map[string]string `json:"env,omitempty"`
	Theme         *Theme            `json:"theme,omitempty"`
}

// EventKind discriminates the event payload variants.
type EventKind int

const (
	// Output is text written to the terminal by the recorded program.
	Output EventKind = iota
	// Input is text fed to the recorded program.
	Input
	// Marker is a named bookmark with no rendering effect.
	Marker
	// Resize is a terminal geometry change.
	Resize
	// Comment is a pending status-bar annotation. It has no wire
	// representation and must be converted to an Output event before a
	// cast is serialized.
	Comment
)

// Event is a single timed entry in a cast. Kind selects which payload
// fields are meaningful.
type Event struct {
	Time float64
	Kind EventKind
	Data string // Output/Input text, Marker label, Comment text
	Cols int    // Resize geometry
	Rows int
	Top  bool // Comment placement: top status line instead of bottom
}

// OutputEvent returns an Output event carrying data.
func OutputEvent(t float64, data string) Event {
	return Event{Time: t, Kind: Output, Data: data}
}

// InputEvent returns an Input event carrying data.
func InputEvent(t float64, data string) Event {
	return Event{Time: t, Kind: Input, Data: data}
}

// MarkerEvent returns a Marker event with the given label.
func MarkerEvent(t float64, label string) Event {
	return Event{Time: t, Kind: Marker, Data: label}
}

// ResizeEvent returns a Resize event with the given geometry.
func ResizeEvent(t float64, cols, rows int) Event {
	return Event{Time: t, Kind: Resize, Cols: cols, Rows: rows}
}

// CommentEvent returns an internal Comment event. top selects the first
// status line; otherwise the comment renders on the last line.
func CommentEvent(t float64, top bool, text string) Event {
	return Event{Time: t, Kind: Comment, Data: text, Top: top}
}

// Filter is a single stream transformation. Implementations must return a
// new slice rather than mutate events in place.
type Filter interface {
	Apply(h Header, events []Event) []Event
}

// AsciiCast is a recorded terminal session: one header plus events in
// non-decreasing time order. Transformations return new values; an
// AsciiCast is never mutated after construction.
type AsciiCast struct {
	Header Header
	Events []Event
}

// FilterEvents applies each filter in order, feeding the output of one
// stage into the next, and returns the resulting cast.
func (c *AsciiCast) FilterEvents(filters []Filter) *AsciiCast {
	events := c.Events
	for _, f := range filters {
		events = f.Apply(c.Header, events)
	}
	return &AsciiCast{Header: c.Header, Events: events}
}
