package slog_test

import (
	"bytes"
	"context"
	"iter"
	"log/slog"
	"testing"

	"github.com/fwojciec/leadscout"
	"github.com/fwojciec/leadscout/mock"
	leadslog "github.com/fwojciec/leadscout/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("relays chunks and logs a summary line", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Generator{
			GenerateFn: func(_ context.Context, _ leadscout.Query) iter.Seq2[leadscout.Chunk, error] {
				return mock.ChunkSeq(
					leadscout.Chunk{Text: `{"name":"Harbor Cafe","address":"12 Pier St"}` + "\n"},
					leadscout.Chunk{Sources: []leadscout.SourceRef{{URI: "https://maps.example/a"}}},
				)
			},
		}

		g := leadslog.NewLoggingGenerator(inner, logger)
		query := leadscout.Query{Keyword: "coffee shops", Location: "Portland, OR"}

		var chunks []leadscout.Chunk
		for chunk, err := range g.Generate(context.Background(), query) {
			require.NoError(t, err)
			chunks = append(chunks, chunk)
		}

		require.Len(t, chunks, 2)
		output := buf.String()
		assert.Contains(t, output, "lead generation")
		assert.Contains(t, output, `keyword="coffee shops"`)
		assert.Contains(t, output, `location="Portland, OR"`)
		assert.Contains(t, output, "chunks=2")
		assert.Contains(t, output, "sources=1")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs the terminal error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Generator{
			GenerateFn: func(_ context.Context, _ leadscout.Query) iter.Seq2[leadscout.Chunk, error] {
				return mock.ErrSeq(
					leadscout.Errorf(leadscout.EUNAVAILABLE, "lead generation failed: quota exhausted"),
					leadscout.Chunk{Text: "partial"},
				)
			},
		}

		g := leadslog.NewLoggingGenerator(inner, logger)

		var streamErr error
		for _, err := range g.Generate(context.Background(), leadscout.Query{Keyword: "k", Location: "l"}) {
			if err != nil {
				streamErr = err
			}
		}

		require.Error(t, streamErr)
		output := buf.String()
		assert.Contains(t, output, "chunks=1")
		assert.Contains(t, output, "quota exhausted")
	})

	t.Run("stops the inner stream when the caller stops", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		yielded := 0
		inner := &mock.Generator{
			GenerateFn: func(_ context.Context, _ leadscout.Query) iter.Seq2[leadscout.Chunk, error] {
				return func(yield func(leadscout.Chunk, error) bool) {
					for {
						yielded++
						if !yield(leadscout.Chunk{Text: "chunk"}, nil) {
							return
						}
					}
				}
			},
		}

		g := leadslog.NewLoggingGenerator(inner, logger)

		for range g.Generate(context.Background(), leadscout.Query{Keyword: "k", Location: "l"}) {
			break
		}

		assert.Equal(t, 1, yielded)
		assert.Contains(t, buf.String(), "chunks=1")
	})
}
