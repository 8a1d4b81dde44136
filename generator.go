package leadscout

import (
	"context"
	"iter"
)

// Chunk is one raw increment of a running generation: a fragment of the
// newline-delimited lead payload, source references attached to that
// increment, or both. Fragment boundaries carry no meaning; records may be
// split across any number of chunks.
type Chunk struct {
	Text    string
	Sources []SourceRef
}

// Generator produces the raw text stream for one search. Implementations
// call the generation API directly or consume a relay's envelope stream.
//
// The sequence follows the genai convention: each step yields a chunk or a
// terminal error, after which iteration ends. A transport failure is the
// only fatal condition; generators never abort on malformed payload text.
type Generator interface {
	Generate(ctx context.Context, query Query) iter.Seq2[Chunk, error]
}
