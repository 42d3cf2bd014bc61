package cast

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// MarshalRecord renders the event as its wire record: a 3-element JSON
// array [time, tag, payload]. Comment events have no wire form; asking
// for one is a ContractError, not a data error.
func (e Event) MarshalRecord() ([]byte, error) {
	var tag, payload string
	switch e.Kind {
	case Output:
		tag, payload = "o", e.Data
	case Input:
		tag, payload = "i", e.Data
	case Marker:
		tag, payload = "m", e.Data
	case Resize:
		tag, payload = "r", fmt.Sprintf("%dx%d", e.Cols, e.Rows)
	case Comment:
		return nil, &ContractError{Kind: SerializingComment}
	default:
		return nil, fmt.Errorf("unknown event kind %d", int(e.Kind))
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding event payload: %w", err)
	}
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(formatTime(e.Time))
	sb.WriteString(`, "`)
	sb.WriteString(tag)
	sb.WriteString(`", `)
	sb.Write(data)
	sb.WriteByte(']')
	return []byte(sb.String()), nil
}

// formatTime renders a time as fixed-precision decimal. Scientific
// notation would be reinterpreted inconsistently by other cast tools.
func formatTime(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}

// Lines renders the header followed by one record per event, in stream
// order, without trailing newlines.
func (c *AsciiCast) Lines() ([]string, error) {
	lines := make([]string, 0, len(c.Events)+1)
	header, err := json.Marshal(c.Header)
	if err != nil {
		return nil, fmt.Errorf("encoding header: %w", err)
	}
	lines = append(lines, string(header))
	for _, ev := range c.Events {
		record, err := ev.MarshalRecord()
		if err != nil {
			return nil, err
		}
		lines = append(lines, string(record))
	}
	return lines, nil
}

// Write serializes the cast to w, one newline-terminated record per line.
func (c *AsciiCast) Write(w io.Writer) error {
	lines, err := c.Lines()
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return fmt.Errorf("writing cast: %w", err)
		}
	}
	return nil
}

// Save writes the cast to path, replacing any existing file.
func (c *AsciiCast) Save(path string) error {
	// Serialize up front: a ContractError must not truncate the file.
	lines, err := c.Lines()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating cast file: %w", err)
	}
	for _, line := range lines {
		if _, err := io.WriteString(f, line+"\n"); err != nil {
			f.Close()
			return fmt.Errorf("writing cast file: %w", err)
		}
	}
	return f.Close()
}
