package leadscout

import (
	"context"
	"iter"
)

// Event is one step of a decoded search stream. Exactly one field is set:
// a fully parsed lead, or a batch of source references not seen earlier in
// the session.
type Event struct {
	Lead    *Lead
	Sources []SourceRef
}

// Streamer decodes a generator's raw fragment stream into leads and source
// references. Each Stream call owns a fresh decoder and source set, so
// restarting a search never inherits buffered text or dedup state from a
// previous attempt.
type Streamer struct {
	Generator Generator

	// OnSkip, if set, receives each line that failed to parse or validate.
	// Skipped lines are dropped from the stream; they never end it.
	OnSkip func(line string, err error)
}

// Stream runs one search and yields events as the underlying generation
// produces them. The sequence is lazy: nothing is requested from the
// generator until the caller pulls, and stopping early stops the
// generation. A generator error is terminal and ends the sequence; any
// text still buffered when the generator finishes cleanly is flushed as a
// final decode pass.
func (s *Streamer) Stream(ctx context.Context, query Query) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		if err := query.Validate(); err != nil {
			yield(Event{}, err)
			return
		}

		dec := NewDecoder()
		dec.OnSkip = s.OnSkip
		seen := NewSourceSet()

		for chunk, err := range s.Generator.Generate(ctx, query) {
			if err != nil {
				yield(Event{}, err)
				return
			}
			for _, lead := range dec.Feed(chunk.Text) {
				if !yield(Event{Lead: lead}, nil) {
					return
				}
			}
			if fresh := seen.Add(chunk.Sources...); len(fresh) > 0 {
				if !yield(Event{Sources: fresh}, nil) {
					return
				}
			}
		}

		for _, lead := range dec.Flush() {
			if !yield(Event{Lead: lead}, nil) {
				return
			}
		}
	}
}
