package cast

import "fmt"

// FormatErrorKind identifies the constraint a cast file violated.
type FormatErrorKind int

const (
	// MissingHeader: line 0 did not decode to an object-shaped record.
	MissingHeader FormatErrorKind = iota
	// InvalidHeader: the header object had unknown or missing fields.
	InvalidHeader
	// UnsupportedVersion: the header version is not 2.
	UnsupportedVersion
	// InvalidEvent: an event line was not a 3-element array.
	InvalidEvent
	// InvalidEventTime: the event time was not a finite non-negative number.
	InvalidEventTime
	// InvalidEventKind: the event tag was not one of o, i, r, m.
	InvalidEventKind
	// InvalidResizeData: a resize payload did not match "{cols}x{rows}".
	InvalidResizeData
)

func (k FormatErrorKind) String() string {
	switch k {
	case MissingHeader:
		return "missing asciicast header"
	case InvalidHeader:
		return "invalid header"
	case UnsupportedVersion:
		return "unsupported file format version"
	case InvalidEvent:
		return "invalid event"
	case InvalidEventTime:
		return "invalid event time"
	case InvalidEventKind:
		return "invalid event kind"
	case InvalidResizeData:
		return "invalid resize data"
	}
	return fmt.Sprintf("format error %d", int(k))
}

// FormatError reports a malformed cast file. Line is the 1-based event
// line number; the header counts as line 0. A single FormatError fails
// the whole load; there is no partial parse.
type FormatError struct {
	Kind    FormatErrorKind
	Line    int
	Version int    // actual version, for UnsupportedVersion
	Detail  string // offending value, where useful
	Err     error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("line %d: %s", e.Line, e.Kind)
	if e.Kind == UnsupportedVersion {
		msg = fmt.Sprintf("%s %d", msg, e.Version)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }

// ContractErrorKind identifies a violated programming contract.
type ContractErrorKind int

const (
	// UnsortedInput: the incoming events given to InsertEvents were not
	// in non-decreasing time order.
	UnsortedInput ContractErrorKind = iota
	// SerializingComment: a Comment event reached the serializer without
	// first being converted to an Output event.
	SerializingComment
)

// ContractError reports misuse of the cast API rather than bad data.
type ContractError struct {
	Kind ContractErrorKind
}

func (e *ContractError) Error() string {
	switch e.Kind {
	case UnsortedInput:
		return "events must be sorted chronologically"
	case SerializingComment:
		return "comment events must be filtered before serialization"
	}
	return fmt.Sprintf("contract error %d", int(e.Kind))
}
