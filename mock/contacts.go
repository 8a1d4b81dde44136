package mock

import "github.com/fwojciec/leadscout"

var _ leadscout.ContactExtractor = (*ContactExtractor)(nil)

// ContactExtractor is a mock implementation of leadscout.ContactExtractor.
type ContactExtractor struct {
	ExtractContactsFn func(html string, pageURL string) (*leadscout.Enrichment, error)
}

func (e *ContactExtractor) ExtractContacts(html string, pageURL string) (*leadscout.Enrichment, error) {
	return e.ExtractContactsFn(html, pageURL)
}

var _ leadscout.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of leadscout.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (e *TextExtractor) ExtractText(html string) (string, error) {
	return e.ExtractTextFn(html)
}
