// Package slog provides logging decorators for service interfaces.
package slog

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/fwojciec/leadscout"
)

// Ensure LoggingGenerator implements leadscout.Generator.
var _ leadscout.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with debug logging.
type LoggingGenerator struct {
	next   leadscout.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next leadscout.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs one summary line
// when the stream ends: chunk and source counts, duration, and the
// terminal error if any.
func (g *LoggingGenerator) Generate(ctx context.Context, query leadscout.Query) iter.Seq2[leadscout.Chunk, error] {
	return func(yield func(leadscout.Chunk, error) bool) {
		begin := time.Now()
		chunks, sources := 0, 0
		var streamErr error

		defer func() {
			g.logger.Info("lead generation",
				"keyword", query.Keyword,
				"location", query.Location,
				"chunks", chunks,
				"sources", sources,
				"duration", time.Since(begin),
				"err", streamErr,
			)
		}()

		for chunk, err := range g.next.Generate(ctx, query) {
			if err != nil {
				streamErr = err
				yield(leadscout.Chunk{}, err)
				return
			}
			chunks++
			sources += len(chunk.Sources)
			if !yield(chunk, nil) {
				return
			}
		}
	}
}
