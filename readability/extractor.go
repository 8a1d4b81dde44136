// Package readability extracts page text with go-readability. It backs
// up the trafilatura extractor during enrichment: readability is more
// forgiving on the sparse brochure pages small businesses tend to have,
// where stricter extractors come up empty.
package readability

import (
	"strings"

	"github.com/fwojciec/leadscout"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements leadscout.TextExtractor at compile time.
var _ leadscout.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the readable text of an
// HTML page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText processes raw HTML and returns the readable page text.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if rawHTML == "" {
		return "", leadscout.Errorf(leadscout.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(article.TextContent), nil
}
