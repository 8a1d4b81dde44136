package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"iter"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/leadscout"
)

// DefaultClientTimeout bounds the whole relayed generation, not a single
// read. Streams run long; keep this generous.
const DefaultClientTimeout = 5 * time.Minute

// maxEnvelopeLine caps one envelope line. Sources payloads are the largest
// frames and stay far below this.
const maxEnvelopeLine = 1 << 20

// Ensure Client implements leadscout.Generator at compile time.
var _ leadscout.Generator = (*Client)(nil)

// Client implements leadscout.Generator against a relay server. The relay
// holds the generation API credentials; the client only speaks the
// envelope stream.
type Client struct {
	client  *http.Client
	baseURL string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithClientTimeout sets the timeout for the whole relayed generation.
// Defaults to DefaultClientTimeout (5m) if not specified.
func WithClientTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// NewClient creates a new Client for the relay at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		client:  &http.Client{Timeout: DefaultClientTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate streams chunks decoded from the relay's envelope stream.
// Envelope types the client does not recognize are skipped; a malformed
// envelope line is skipped the same way. Transport failures and relayed
// error envelopes are terminal.
func (c *Client) Generate(ctx context.Context, query leadscout.Query) iter.Seq2[leadscout.Chunk, error] {
	return func(yield func(leadscout.Chunk, error) bool) {
		body, err := json.Marshal(query)
		if err != nil {
			yield(leadscout.Chunk{}, err)
			return
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/search", bytes.NewReader(body))
		if err != nil {
			yield(leadscout.Chunk{}, err)
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/x-ndjson")

		resp, err := c.client.Do(req)
		if err != nil {
			yield(leadscout.Chunk{}, leadscout.Errorf(leadscout.EUNAVAILABLE, "cannot reach relay: %v", err))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			yield(leadscout.Chunk{}, leadscout.Errorf(leadscout.EUNAVAILABLE, "relay is busy, try again shortly"))
			return
		}
		if resp.StatusCode != http.StatusOK {
			yield(leadscout.Chunk{}, leadscout.Errorf(leadscout.EUNAVAILABLE, "relay returned HTTP %d", resp.StatusCode))
			return
		}

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), maxEnvelopeLine)

		for scanner.Scan() {
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}

			var env envelope
			if err := json.Unmarshal(line, &env); err != nil {
				continue
			}

			chunk, err := decodeEnvelope(env)
			if err != nil {
				yield(leadscout.Chunk{}, err)
				return
			}
			if chunk.Text == "" && len(chunk.Sources) == 0 {
				continue
			}
			if !yield(chunk, nil) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield(leadscout.Chunk{}, leadscout.Errorf(leadscout.EUNAVAILABLE, "relay stream interrupted: %v", err))
		}
	}
}

// decodeEnvelope turns one envelope into a chunk. An error envelope
// produces a terminal error; unknown types and malformed payloads produce
// an empty chunk the caller drops.
func decodeEnvelope(env envelope) (leadscout.Chunk, error) {
	switch env.Type {
	case envelopeContent:
		var text string
		if err := json.Unmarshal(env.Payload, &text); err != nil {
			return leadscout.Chunk{}, nil
		}
		return leadscout.Chunk{Text: text}, nil

	case envelopeSources:
		var refs []groundingRef
		if err := json.Unmarshal(env.Payload, &refs); err != nil {
			return leadscout.Chunk{}, nil
		}
		var chunk leadscout.Chunk
		for _, ref := range refs {
			if ref.Web == nil {
				continue
			}
			chunk.Sources = append(chunk.Sources, leadscout.SourceRef{
				URI:   ref.Web.URI,
				Title: ref.Web.Title,
			})
		}
		return chunk, nil

	case envelopeError:
		var msg string
		if err := json.Unmarshal(env.Payload, &msg); err != nil || msg == "" {
			msg = "relay reported a generation failure"
		}
		return leadscout.Chunk{}, leadscout.Errorf(leadscout.EUNAVAILABLE, "%s", msg)

	default:
		return leadscout.Chunk{}, nil
	}
}
