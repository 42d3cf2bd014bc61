package cast_test

import (
	"errors"
	"fmt"
	"sort"
	"testing"

	"pgregory.net/rapid"

	"github.com/robmoss/asciinema-scripted/internal/cast"
)

func testCast(events ...cast.Event) *cast.AsciiCast {
	return &cast.AsciiCast{
		Header: cast.Header{Version: 2, Width: 80, Height: 24},
		Events: events,
	}
}

// generateSortedEvents draws n events with non-decreasing times, tagging
// each payload with source and index so interleavings are checkable.
func generateSortedEvents(t *rapid.T, source string, n int) []cast.Event {
	times := make([]float64, n)
	for i := range times {
		times[i] = rapid.Float64Range(0, 100).Draw(t, fmt.Sprintf("%s_time_%d", source, i))
	}
	sort.Float64s(times)

	events := make([]cast.Event, n)
	for i := range events {
		events[i] = cast.MarkerEvent(times[i], fmt.Sprintf("%s-%d", source, i))
	}
	return events
}

// The merge must be a stable interleaving: the same result as stably
// sorting existing-then-incoming by time, which keeps intra-sequence
// order and places existing events before incoming ones on ties.
func TestInsertEventsIsStableMerge(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		existing := generateSortedEvents(rt, "existing", rapid.IntRange(0, 12).Draw(rt, "num_existing"))
		incoming := generateSortedEvents(rt, "incoming", rapid.IntRange(0, 12).Draw(rt, "num_incoming"))

		merged, err := testCast(existing...).InsertEvents(incoming)
		if err != nil {
			rt.Fatalf("InsertEvents: %v", err)
		}

		if len(merged.Events) != len(existing)+len(incoming) {
			rt.Fatalf("got %d events, want %d", len(merged.Events), len(existing)+len(incoming))
		}
		for i := 1; i < len(merged.Events); i++ {
			if merged.Events[i].Time < merged.Events[i-1].Time {
				rt.Fatalf("merged events not sorted at index %d: %+v", i, merged.Events)
			}
		}

		want := make([]cast.Event, 0, len(existing)+len(incoming))
		want = append(want, existing...)
		want = append(want, incoming...)
		sort.SliceStable(want, func(i, j int) bool { return want[i].Time < want[j].Time })
		for i := range want {
			if merged.Events[i] != want[i] {
				rt.Fatalf("not a stable interleaving at index %d: got %+v, want %+v",
					i, merged.Events[i], want[i])
			}
		}
	})
}

func TestInsertEventsIdentity(t *testing.T) {
	existing := []cast.Event{cast.OutputEvent(1, "x"), cast.OutputEvent(2, "y")}
	incoming := []cast.Event{cast.MarkerEvent(0.5, "pre"), cast.MarkerEvent(1.5, "mid")}

	t.Run("empty incoming returns existing unchanged", func(t *testing.T) {
		c := testCast(existing...)
		merged, err := c.InsertEvents(nil)
		if err != nil {
			t.Fatalf("InsertEvents: %v", err)
		}
		if len(merged.Events) != len(existing) {
			t.Fatalf("got %d events, want %d", len(merged.Events), len(existing))
		}
		for i := range existing {
			if merged.Events[i] != existing[i] {
				t.Errorf("event %d changed: %+v", i, merged.Events[i])
			}
		}
	})

	t.Run("empty existing returns incoming", func(t *testing.T) {
		merged, err := testCast().InsertEvents(incoming)
		if err != nil {
			t.Fatalf("InsertEvents: %v", err)
		}
		if len(merged.Events) != len(incoming) {
			t.Fatalf("got %d events, want %d", len(merged.Events), len(incoming))
		}
		for i := range incoming {
			if merged.Events[i] != incoming[i] {
				t.Errorf("event %d changed: %+v", i, merged.Events[i])
			}
		}
	})

	t.Run("empty existing still checks incoming order", func(t *testing.T) {
		_, err := testCast().InsertEvents([]cast.Event{
			cast.MarkerEvent(2, "late"),
			cast.MarkerEvent(1, "early"),
		})
		var cerr *cast.ContractError
		if !errors.As(err, &cerr) || cerr.Kind != cast.UnsortedInput {
			t.Fatalf("expected UnsortedInput, got %v", err)
		}
	})
}

func TestInsertEventsRejectsUnsortedIncoming(t *testing.T) {
	c := testCast(cast.OutputEvent(1, "x"))
	_, err := c.InsertEvents([]cast.Event{
		cast.MarkerEvent(3, "late"),
		cast.MarkerEvent(2, "early"),
	})
	var cerr *cast.ContractError
	if !errors.As(err, &cerr) || cerr.Kind != cast.UnsortedInput {
		t.Fatalf("expected UnsortedInput, got %v", err)
	}
	if len(c.Events) != 1 || c.Events[0].Data != "x" {
		t.Errorf("existing cast changed after failed merge: %+v", c.Events)
	}
}

func TestInsertEventsTieBreak(t *testing.T) {
	c := testCast(cast.OutputEvent(1.0, "x"))
	merged, err := c.InsertEvents([]cast.Event{
		cast.MarkerEvent(0.5, "pre"),
		cast.MarkerEvent(1.0, "tie"),
		cast.MarkerEvent(1.5, "post"),
	})
	if err != nil {
		t.Fatalf("InsertEvents: %v", err)
	}
	want := []cast.Event{
		cast.MarkerEvent(0.5, "pre"),
		cast.OutputEvent(1.0, "x"),
		cast.MarkerEvent(1.0, "tie"),
		cast.MarkerEvent(1.5, "post"),
	}
	if len(merged.Events) != len(want) {
		t.Fatalf("got %d events, want %d", len(merged.Events), len(want))
	}
	for i := range want {
		if merged.Events[i] != want[i] {
			t.Errorf("event %d: got %+v, want %+v", i, merged.Events[i], want[i])
		}
	}
}
