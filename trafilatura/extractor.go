package trafilatura

import (
	"errors"
	"strings"

	"github.com/fwojciec/leadscout"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements leadscout.TextExtractor at compile time.
var _ leadscout.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the main text of an HTML page
// with navigation and boilerplate removed. The result feeds the pattern
// sweep for contact details that don't appear as links.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText processes raw HTML and returns the main text content.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if rawHTML == "" {
		return "", errors.New("empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result.ContentText), nil
}
