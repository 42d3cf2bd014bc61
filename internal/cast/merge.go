package cast

// InsertEvents interleaves incoming events into the cast's event stream
// and returns the merged cast. Both sequences must already be in
// non-decreasing time order; an unsorted incoming sequence is a
// ContractError and no partial merge is performed. The merge is stable
// with a fixed tie-break: at equal times, existing events come before
// incoming ones.
func (c *AsciiCast) InsertEvents(incoming []Event) (*AsciiCast, error) {
	if len(incoming) == 0 {
		return c, nil
	}
	for i := 1; i < len(incoming); i++ {
		if incoming[i].Time < incoming[i-1].Time {
			return nil, &ContractError{Kind: UnsortedInput}
		}
	}
	if len(c.Events) == 0 {
		events := make([]Event, len(incoming))
		copy(events, incoming)
		return &AsciiCast{Header: c.Header, Events: events}, nil
	}

	merged := make([]Event, 0, len(c.Events)+len(incoming))
	next := 0
	for _, ev := range c.Events {
		for next < len(incoming) && incoming[next].Time < ev.Time {
			merged = append(merged, incoming[next])
			next++
		}
		merged = append(merged, ev)
	}
	merged = append(merged, incoming[next:]...)
	return &AsciiCast{Header: c.Header, Events: merged}, nil
}
