package mock

import (
	"context"
	"iter"

	"github.com/fwojciec/leadscout"
)

var _ leadscout.Generator = (*Generator)(nil)

// Generator is a mock implementation of leadscout.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, query leadscout.Query) iter.Seq2[leadscout.Chunk, error]
}

func (g *Generator) Generate(ctx context.Context, query leadscout.Query) iter.Seq2[leadscout.Chunk, error] {
	return g.GenerateFn(ctx, query)
}

// ChunkSeq builds a sequence that yields the given chunks and then ends,
// for wiring GenerateFn in tests.
func ChunkSeq(chunks ...leadscout.Chunk) iter.Seq2[leadscout.Chunk, error] {
	return func(yield func(leadscout.Chunk, error) bool) {
		for _, c := range chunks {
			if !yield(c, nil) {
				return
			}
		}
	}
}

// ErrSeq builds a sequence that yields the given chunks and then fails with
// err.
func ErrSeq(err error, chunks ...leadscout.Chunk) iter.Seq2[leadscout.Chunk, error] {
	return func(yield func(leadscout.Chunk, error) bool) {
		for _, c := range chunks {
			if !yield(c, nil) {
				return
			}
		}
		yield(leadscout.Chunk{}, err)
	}
}
