// Package goquery extracts contact details from business web pages using
// CSS selector queries over parsed HTML.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/leadscout"
)

// Ensure ContactExtractor implements leadscout.ContactExtractor at compile time.
var _ leadscout.ContactExtractor = (*ContactExtractor)(nil)

// socialHosts lists the hosts recognized as social profile destinations.
// Hosts are compared after stripping www. and m. prefixes.
var socialHosts = []string{
	"facebook.com",
	"instagram.com",
	"linkedin.com",
	"x.com",
	"twitter.com",
	"youtube.com",
	"tiktok.com",
	"yelp.com",
}

// sharePaths marks path prefixes that indicate share widgets rather than
// profile links.
var sharePaths = []string{
	"/sharer",
	"/share",
	"/intent",
}

// ContactExtractor recovers contact details from an HTML page: mailto: and
// tel: anchors, social profile links, and the meta description.
type ContactExtractor struct{}

// NewContactExtractor creates a new ContactExtractor.
func NewContactExtractor() *ContactExtractor {
	return &ContactExtractor{}
}

// ExtractContacts scans html for contact anchors and descriptive metadata.
// pageURL resolves relative hrefs; social links pointing back at the page's
// own host are skipped so a business hosted on a social platform doesn't
// list itself.
func (e *ContactExtractor) ExtractContacts(html string, pageURL string) (*leadscout.Enrichment, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, leadscout.Errorf(leadscout.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, leadscout.Errorf(leadscout.EINVALID, "failed to parse HTML: %v", err)
	}

	enrichment := &leadscout.Enrichment{}
	seenEmails := make(map[string]bool)
	seenPhones := make(map[string]bool)
	seenSocials := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		href = strings.TrimSpace(href)

		switch {
		case hasSchemePrefix(href, "mailto:"):
			email := cleanEmail(href)
			if email != "" && !seenEmails[email] {
				seenEmails[email] = true
				enrichment.Emails = append(enrichment.Emails, email)
			}
		case hasSchemePrefix(href, "tel:"):
			phone := cleanPhone(href)
			if phone != "" && !seenPhones[phone] {
				seenPhones[phone] = true
				enrichment.Phones = append(enrichment.Phones, phone)
			}
		default:
			social := socialURL(base, href)
			if social != "" && !seenSocials[social] {
				seenSocials[social] = true
				enrichment.Socials = append(enrichment.Socials, social)
			}
		}
	})

	enrichment.About = metaDescription(doc)

	return enrichment, nil
}

// hasSchemePrefix reports whether href starts with the given scheme,
// ignoring case.
func hasSchemePrefix(href, scheme string) bool {
	return len(href) >= len(scheme) && strings.EqualFold(href[:len(scheme)], scheme)
}

// cleanEmail extracts the address from a mailto: href. Query parameters
// (subject, body) and additional comma-separated recipients are dropped.
// Returns empty string if no plausible address remains.
func cleanEmail(href string) string {
	addr := href[len("mailto:"):]
	if i := strings.Index(addr, "?"); i >= 0 {
		addr = addr[:i]
	}
	if i := strings.Index(addr, ","); i >= 0 {
		addr = addr[:i]
	}
	if unescaped, err := url.QueryUnescape(addr); err == nil {
		addr = unescaped
	}
	addr = strings.ToLower(strings.TrimSpace(addr))
	if !strings.Contains(addr, "@") || strings.ContainsAny(addr, " \t") {
		return ""
	}
	return addr
}

// cleanPhone extracts the number from a tel: href. Formatting characters
// are preserved; hrefs with no digits at all are rejected.
func cleanPhone(href string) string {
	num := href[len("tel:"):]
	if unescaped, err := url.QueryUnescape(num); err == nil {
		num = unescaped
	}
	num = strings.TrimSpace(num)
	if !hasDigit(num) {
		return ""
	}
	return num
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// socialURL resolves href against base and returns the resulting URL when
// it points at a known social profile host. Share widgets, bare host links
// without a profile path, and links back to the page's own host return
// empty string.
func socialURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := ref
	if base != nil {
		resolved = base.ResolveReference(ref)
	}
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	if resolved.Path == "" || resolved.Path == "/" {
		return ""
	}

	host := canonicalHost(resolved.Host)
	if !isSocialHost(host) {
		return ""
	}
	if base != nil && canonicalHost(base.Host) == host {
		return ""
	}
	if isShareLink(resolved) {
		return ""
	}

	resolved.Fragment = ""
	return resolved.String()
}

// canonicalHost lowercases a host and strips www. and m. prefixes so
// facebook.com and www.facebook.com compare equal.
func canonicalHost(host string) string {
	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")
	return host
}

func isSocialHost(host string) bool {
	for _, s := range socialHosts {
		if host == s {
			return true
		}
	}
	return false
}

func isShareLink(u *url.URL) bool {
	path := strings.ToLower(u.Path)
	for _, p := range sharePaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// metaDescription returns the page's meta description, preferring the
// standard tag over the Open Graph variant.
func metaDescription(doc *goquery.Document) string {
	for _, sel := range []string{
		`meta[name="description"]`,
		`meta[property="og:description"]`,
	} {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if desc := strings.TrimSpace(content); desc != "" {
				return desc
			}
		}
	}
	return ""
}
