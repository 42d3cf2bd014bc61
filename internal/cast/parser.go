package cast

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
)

var resizeRe = regexp.MustCompile(`^([0-9]+)x([0-9]+)$`)

// Load reads and parses a cast file from disk.
func Load(path string) (*AsciiCast, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening cast file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a line-oriented cast stream: one header record followed by
// zero or more event records. A single bad line fails the whole parse.
func Parse(r io.Reader) (*AsciiCast, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading cast: %w", err)
		}
		return nil, &FormatError{Kind: MissingHeader, Line: 0}
	}
	header, err := parseHeader(scanner.Bytes())
	if err != nil {
		return nil, err
	}

	var events []Event
	line := 0
	for scanner.Scan() {
		line++
		ev, err := parseEvent(scanner.Bytes(), line)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading cast: %w", err)
	}
	return &AsciiCast{Header: header, Events: events}, nil
}

func parseHeader(line []byte) (Header, error) {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Header{}, &FormatError{Kind: MissingHeader, Line: 0}
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return Header{}, &FormatError{Kind: MissingHeader, Line: 0, Err: err}
	}
	for _, key := range []string{"version", "width", "height"} {
		if _, ok := raw[key]; !ok {
			return Header{}, &FormatError{
				Kind: InvalidHeader, Line: 0, Detail: "missing field " + strconv.Quote(key),
			}
		}
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	var h Header
	if err := dec.Decode(&h); err != nil {
		return Header{}, &FormatError{Kind: InvalidHeader, Line: 0, Err: err}
	}
	if h.Version != 2 {
		return Header{}, &FormatError{Kind: UnsupportedVersion, Line: 0, Version: h.Version}
	}
	return h, nil
}

func parseEvent(line []byte, num int) (Event, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(line), &parts); err != nil {
		return Event{}, &FormatError{Kind: InvalidEvent, Line: num, Err: err}
	}
	if len(parts) != 3 {
		return Event{}, &FormatError{
			Kind: InvalidEvent, Line: num,
			Detail: fmt.Sprintf("expected 3 elements, found %d", len(parts)),
		}
	}

	var t float64
	if err := json.Unmarshal(parts[0], &t); err != nil {
		return Event{}, &FormatError{
			Kind: InvalidEventTime, Line: num, Detail: string(parts[0]), Err: err,
		}
	}
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		return Event{}, &FormatError{Kind: InvalidEventTime, Line: num, Detail: string(parts[0])}
	}

	var tag string
	if err := json.Unmarshal(parts[1], &tag); err != nil {
		return Event{}, &FormatError{
			Kind: InvalidEventKind, Line: num, Detail: string(parts[1]), Err: err,
		}
	}
	var payload string
	if err := json.Unmarshal(parts[2], &payload); err != nil {
		return Event{}, &FormatError{
			Kind: InvalidEvent, Line: num, Detail: "non-string payload", Err: err,
		}
	}

	switch tag {
	case "o":
		return OutputEvent(t, payload), nil
	case "i":
		return InputEvent(t, payload), nil
	case "m":
		return MarkerEvent(t, payload), nil
	case "r":
		m := resizeRe.FindStringSubmatch(payload)
		if m == nil {
			return Event{}, &FormatError{Kind: InvalidResizeData, Line: num, Detail: payload}
		}
		cols, _ := strconv.Atoi(m[1])
		rows, _ := strconv.Atoi(m[2])
		return ResizeEvent(t, cols, rows), nil
	default:
		return Event{}, &FormatError{Kind: InvalidEventKind, Line: num, Detail: tag}
	}
}
