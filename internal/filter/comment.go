package filter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/robmoss/asciinema-scripted/internal/cast"
)

// Comment converts every Comment event into an Output event that paints
// the comment text onto a status line: save cursor, jump to column 1 of
// the first row (top placement) or the last row, write the text centered
// within the header width in reverse video, restore cursor. Non-Comment
// events pass through unchanged.
type Comment struct{}

// Apply implements cast.Filter.
func (Comment) Apply(h cast.Header, events []cast.Event) []cast.Event {
	out := make([]cast.Event, len(events))
	for i, ev := range events {
		if ev.Kind == cast.Comment {
			out[i] = cast.OutputEvent(ev.Time, statusLine(ev, h.Width, h.Height))
		} else {
			out[i] = ev
		}
	}
	return out
}

func statusLine(ev cast.Event, cols, rows int) string {
	row := rows
	if ev.Top {
		row = 1
	}
	return fmt.Sprintf("\x1b[s\x1b[%d;1H\x1b[7m%s\x1b[m\x1b[u", row, center(ev.Data, cols))
}

// center pads s with spaces to width columns, giving the right side the
// extra column when the padding is odd. Text wider than width is kept
// intact rather than truncated.
func center(s string, width int) string {
	pad := width - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
