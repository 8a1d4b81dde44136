package http

import "encoding/json"

// Envelope types carried on the relay stream. Consumers skip types they do
// not recognize, so the protocol can grow without breaking old clients.
const (
	envelopeContent = "content"
	envelopeSources = "sources"
	envelopeError   = "error"
)

// envelope is one frame of the relay stream. The payload shape depends on
// the type: a text fragment for content, grounding refs for sources, a
// human-readable message for error.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// groundingRef is the sources payload element, mirroring the generation
// API's grounding chunk shape.
type groundingRef struct {
	Web *webRef `json:"web,omitempty"`
}

type webRef struct {
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}

// marshalEnvelope frames a payload value as one stream line, without the
// trailing newline.
func marshalEnvelope(typ string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Type: typ, Payload: raw})
}
