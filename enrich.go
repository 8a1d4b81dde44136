package leadscout

import "context"

// Enrichment holds contact details recovered from a lead's website.
type Enrichment struct {
	Emails  []string
	Phones  []string
	Socials []string
	About   string
}

// ContactExtractor pulls contact details out of an HTML page.
type ContactExtractor interface {
	// ExtractContacts scans html for mailto: and tel: links, social
	// profile links, and descriptive metadata. pageURL resolves any
	// relative links found along the way.
	ExtractContacts(html string, pageURL string) (*Enrichment, error)
}

// TextExtractor extracts the main text of an HTML page with boilerplate
// removed.
type TextExtractor interface {
	ExtractText(html string) (string, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
