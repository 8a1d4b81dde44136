// Package gemini provides a Gemini-backed implementation of
// leadscout.Generator using search grounding.
package gemini

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/fwojciec/leadscout"
	"google.golang.org/genai"
)

// DefaultModel is the generation model used unless WithModel overrides it.
const DefaultModel = "gemini-2.5-flash"

// Ensure Generator implements leadscout.Generator at compile time.
var _ leadscout.Generator = (*Generator)(nil)

// Generator implements leadscout.Generator by calling the Gemini API
// directly. The search tool grounds results in live web pages; grounding
// metadata surfaces as source refs on the chunks it arrived with.
type Generator struct {
	client *genai.Client
	model  string
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel sets the generation model. Defaults to DefaultModel if not
// specified.
func WithModel(model string) Option {
	return func(g *Generator) {
		if model != "" {
			g.model = model
		}
	}
}

// NewGenerator creates a new Generator.
func NewGenerator(client *genai.Client, opts ...Option) *Generator {
	g := &Generator{client: client, model: DefaultModel}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate streams raw response fragments for one search. The model is
// prompted for newline-delimited JSON; fragment boundaries are the API's
// own and carry no record alignment.
func (g *Generator) Generate(ctx context.Context, query leadscout.Query) iter.Seq2[leadscout.Chunk, error] {
	return func(yield func(leadscout.Chunk, error) bool) {
		contents := []*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(query)}},
		}}

		for resp, err := range g.client.Models.GenerateContentStream(ctx, g.model, contents, BuildConfig()) {
			if err != nil {
				yield(leadscout.Chunk{}, leadscout.Errorf(leadscout.EUNAVAILABLE, "lead generation failed: %v", err))
				return
			}
			if resp == nil {
				continue
			}

			chunk := responseChunk(resp)
			if chunk.Text == "" && len(chunk.Sources) == 0 {
				continue
			}
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

// responseChunk flattens one streaming response into a Chunk.
func responseChunk(resp *genai.GenerateContentResponse) leadscout.Chunk {
	var chunk leadscout.Chunk
	var text strings.Builder

	for _, candidate := range resp.Candidates {
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					text.WriteString(part.Text)
				}
			}
		}
		if candidate.GroundingMetadata == nil {
			continue
		}
		for _, gc := range candidate.GroundingMetadata.GroundingChunks {
			if gc.Web == nil {
				continue
			}
			chunk.Sources = append(chunk.Sources, leadscout.SourceRef{
				URI:   gc.Web.URI,
				Title: gc.Web.Title,
			})
		}
	}

	chunk.Text = text.String()
	return chunk
}

// BuildConfig returns the GenerateContentConfig for lead searches.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a local business researcher. Use web search to find real, currently operating businesses matching the request. Respond with newline-delimited JSON only: one complete JSON object per line, no markdown fences, no commentary.",
			}},
		},
		Temperature: &temp,
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}
}

// BuildUserPrompt builds the user prompt for a query.
func BuildUserPrompt(query leadscout.Query) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Find up to %d businesses matching %q in %q.\n\n", query.LeadLimit(), query.Keyword, query.Location)
	sb.WriteString("Output one JSON object per line with exactly these keys:\n")
	sb.WriteString(`{"name":"","address":"","phone":"","website":"","email":"","category":"","rating":null,"reviewCount":null,"hours":""}`)
	sb.WriteString("\n\nRules:\n")
	sb.WriteString("- name and address are required; use \"\" for text fields you cannot find.\n")
	sb.WriteString("- rating is a number from 1.0 to 5.0, or null if unknown.\n")
	sb.WriteString("- reviewCount is a non-negative integer, or null if unknown.\n")
	sb.WriteString("- Do not wrap the output in markdown fences or add any text before or after the records.\n")
	return sb.String()
}
