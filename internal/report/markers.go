// Package report renders convenience views over parsed casts.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/robmoss/asciinema-scripted/internal/cast"
)

// MarkerLinks returns one Markdown hyperlink per marker event, in stream
// order. When dataVideoID is non-empty each link carries a data-video
// attribute so a page with several players can target the right one.
func MarkerLinks(events []cast.Event, dataVideoID string) []string {
	videoAttr := ""
	if dataVideoID != "" {
		videoAttr = fmt.Sprintf(" data-video=%q", dataVideoID)
	}

	var lines []string
	for _, ev := range events {
		if ev.Kind != cast.Marker {
			continue
		}
		lines = append(lines, fmt.Sprintf(
			`<a%s data-seek-to="%s" href="javascript:;">%s</a>`,
			videoAttr, strconv.FormatFloat(ev.Time, 'f', -1, 64), ev.Data,
		))
	}
	return lines
}

// WriteMarkerList writes the marker links as a numbered Markdown list.
func WriteMarkerList(w io.Writer, c *cast.AsciiCast, dataVideoID string) error {
	for i, line := range MarkerLinks(c.Events, dataVideoID) {
		if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, line); err != nil {
			return err
		}
	}
	return nil
}
