package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/leadscout"
	"golang.org/x/time/rate"
)

// Handler serves the relay API. It holds the generation credentials so
// clients do not have to, runs searches with its own generator, and
// streams envelopes as the generation proceeds.
//
// Routes: POST /v1/search streams envelopes; GET /healthz reports
// liveness.
type Handler struct {
	Generator leadscout.Generator
	Limiter   *rate.Limiter
	Logger    *slog.Logger
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/v1/search":
		h.handleSearch(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/healthz":
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	default:
		http.NotFound(w, r)
	}
}

// handleSearch runs one search and streams its envelopes. Failures before
// the first chunk map to HTTP status codes; failures mid-stream become a
// terminal error envelope, since the 200 is already on the wire.
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	if h.Limiter != nil && !h.Limiter.Allow() {
		http.Error(w, "relay is busy", http.StatusTooManyRequests)
		return
	}

	var query leadscout.Query
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}
	if err := query.Validate(); err != nil {
		http.Error(w, leadscout.ErrorMessage(err), http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	start := time.Now()
	started := false

	for chunk, err := range h.Generator.Generate(r.Context(), query) {
		if err != nil {
			if h.Logger != nil {
				h.Logger.Warn("generation failed",
					"keyword", query.Keyword,
					"location", query.Location,
					"error", err,
				)
			}
			if !started {
				http.Error(w, leadscout.ErrorMessage(err), http.StatusBadGateway)
				return
			}
			_ = writeEnvelope(w, envelopeError, leadscout.ErrorMessage(err))
			flusher.Flush()
			return
		}

		if !started {
			w.Header().Set("Content-Type", "application/x-ndjson")
			w.WriteHeader(http.StatusOK)
			started = true
		}

		if chunk.Text != "" {
			if err := writeEnvelope(w, envelopeContent, chunk.Text); err != nil {
				return
			}
		}
		if len(chunk.Sources) > 0 {
			refs := make([]groundingRef, 0, len(chunk.Sources))
			for _, s := range chunk.Sources {
				refs = append(refs, groundingRef{Web: &webRef{URI: s.URI, Title: s.Title}})
			}
			if err := writeEnvelope(w, envelopeSources, refs); err != nil {
				return
			}
		}
		flusher.Flush()
	}

	// An empty generation is still a successful, empty stream.
	if !started {
		w.Header().Set("Content-Type", "application/x-ndjson")
		w.WriteHeader(http.StatusOK)
	}

	if h.Logger != nil {
		h.Logger.Info("search relayed",
			"keyword", query.Keyword,
			"location", query.Location,
			"duration", time.Since(start),
		)
	}
}

// writeEnvelope frames one payload and writes it as a stream line.
func writeEnvelope(w io.Writer, typ string, payload any) error {
	b, err := marshalEnvelope(typ, payload)
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}
