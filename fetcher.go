package leadscout

import "context"

// Fetcher retrieves HTML pages during enrichment.
type Fetcher interface {
	// Fetch returns the body of the page at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)
}
