// Package enrich provides contact discovery for archived leads.
// It coordinates fetching each lead's website, extracting contact links
// and page text, and merging what turns up into per-lead enrichments.
package enrich

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/fwojciec/leadscout"
	"golang.org/x/sync/errgroup"
)

// Enricher discovers contact details for leads that have a website.
type Enricher struct {
	Fetcher  leadscout.Fetcher
	Contacts leadscout.ContactExtractor

	// Text extracts the readable page text. TextFallback, when set, is
	// tried for pages where Text errors or finds nothing.
	Text         leadscout.TextExtractor
	TextFallback leadscout.TextExtractor

	Leads       leadscout.LeadService
	RateLimiter leadscout.DomainLimiter
	Concurrency int
}

// Result holds the outcome of an enrichment run.
type Result struct {
	// Enrichments is keyed by lead ID. Leads without a website and leads
	// whose page could not be processed have no entry.
	Enrichments map[string]*leadscout.Enrichment
	Skipped     int
	Failed      int
}

// ProgressEvent reports progress during an enrichment run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Lead      string
	Website   string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting enrichment progress.
type ProgressFunc func(event ProgressEvent)

// leadResult holds the outcome of processing a single lead.
type leadResult struct {
	position   int
	lead       *leadscout.Lead
	enrichment *leadscout.Enrichment
	err        error
}

// EnrichLeads fetches each lead's website and extracts contact details.
// Leads without a website are skipped; per-lead failures are reported via
// the progress callback and counted, never fatal. The progress callback,
// if provided, receives events as processing proceeds.
func (e *Enricher) EnrichLeads(ctx context.Context, leads []*leadscout.Lead, progress ProgressFunc) (*Result, error) {
	concurrency := e.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	resultCh := make(chan leadResult, len(leads))

	var completed atomic.Int64
	total := len(leads)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, lead := range leads {
			i, lead := i, lead
			g.Go(func() error {
				resultCh <- e.processLead(gctx, i, lead)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	result := &Result{Enrichments: make(map[string]*leadscout.Enrichment)}

	for r := range resultCh {
		completed.Add(1)

		switch {
		case r.err != nil:
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					Lead:      r.lead.Name,
					Website:   r.lead.Website,
					Error:     r.err,
				})
			}
		case r.enrichment == nil:
			result.Skipped++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressSkipped,
					Completed: int(completed.Load()),
					Total:     total,
					Lead:      r.lead.Name,
				})
			}
		default:
			result.Enrichments[r.lead.ID] = r.enrichment
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressCompleted,
					Completed: int(completed.Load()),
					Total:     total,
					Lead:      r.lead.Name,
					Website:   r.lead.Website,
				})
			}
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return result, nil
}

// processLead fetches and processes a single lead's website.
// A nil enrichment with a nil error means the lead had no website.
func (e *Enricher) processLead(ctx context.Context, position int, lead *leadscout.Lead) leadResult {
	result := leadResult{
		position: position,
		lead:     lead,
	}

	website := strings.TrimSpace(lead.Website)
	if website == "" {
		return result
	}

	pageURL, err := normalizeWebsite(website)
	if err != nil {
		result.err = err
		return result
	}

	if e.RateLimiter != nil {
		u, err := url.Parse(pageURL)
		if err != nil {
			result.err = leadscout.Errorf(leadscout.EINVALID, "invalid website URL %q: %v", website, err)
			return result
		}
		if err := e.RateLimiter.Wait(ctx, u.Host); err != nil {
			result.err = err
			return result
		}
	}

	html, err := e.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		result.err = err
		return result
	}

	enrichment, err := e.Contacts.ExtractContacts(html, pageURL)
	if err != nil {
		result.err = err
		return result
	}

	// Sweep the readable page text for contacts that don't appear as links.
	if text := e.pageText(html); text != "" {
		mergeTextContacts(enrichment, text)
		if enrichment.About == "" {
			enrichment.About = aboutSnippet(text)
		}
	}

	result.enrichment = enrichment
	return result
}

// pageText extracts the readable page text, trying the fallback
// extractor when the primary errors or finds nothing.
func (e *Enricher) pageText(html string) string {
	if e.Text != nil {
		if text, err := e.Text.ExtractText(html); err == nil && text != "" {
			return text
		}
	}
	if e.TextFallback != nil {
		if text, err := e.TextFallback.ExtractText(html); err == nil {
			return text
		}
	}
	return ""
}

// ApplyEnrichments fills empty contact fields on archived leads from their
// enrichments. Existing values are never overwritten. Returns the number
// of leads updated.
func (e *Enricher) ApplyEnrichments(ctx context.Context, leads []*leadscout.Lead, enrichments map[string]*leadscout.Enrichment) (int, error) {
	updated := 0

	for _, lead := range leads {
		enrichment, ok := enrichments[lead.ID]
		if !ok {
			continue
		}

		var upd leadscout.LeadUpdate
		if lead.Email == "" && len(enrichment.Emails) > 0 {
			upd.Email = &enrichment.Emails[0]
		}
		if lead.Phone == "" && len(enrichment.Phones) > 0 {
			upd.Phone = &enrichment.Phones[0]
		}
		if upd.Email == nil && upd.Phone == nil {
			continue
		}

		if _, err := e.Leads.UpdateLead(ctx, lead.ID, upd); err != nil {
			return updated, err
		}
		updated++
	}

	return updated, nil
}

// normalizeWebsite turns an archived website value into a fetchable URL,
// assuming https for values without a scheme.
func normalizeWebsite(website string) (string, error) {
	if !strings.Contains(website, "://") {
		website = "https://" + website
	}
	u, err := url.Parse(website)
	if err != nil {
		return "", leadscout.Errorf(leadscout.EINVALID, "invalid website URL %q: %v", website, err)
	}
	if u.Host == "" {
		return "", leadscout.Errorf(leadscout.EINVALID, "invalid website URL %q", website)
	}
	return u.String(), nil
}

var (
	// emailPattern matches addresses in page text. Deliberately loose;
	// matches are suggestions for review, not validated contacts.
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	// phonePattern matches phone number shapes with common separators.
	// Matches are filtered by digit count afterwards to weed out years,
	// prices and street numbers.
	phonePattern = regexp.MustCompile(`\+?\(?\d{1,4}\)?(?:[\s.\-]\(?\d{2,4}\)?){2,4}`)
)

// mergeTextContacts adds emails and phone numbers found in page text to
// the enrichment, skipping values already present. Phone numbers are
// deduplicated by their digits so differently formatted copies of the
// same number appear once.
func mergeTextContacts(enrichment *leadscout.Enrichment, text string) {
	seenEmails := make(map[string]bool)
	for _, email := range enrichment.Emails {
		seenEmails[email] = true
	}
	for _, match := range emailPattern.FindAllString(text, -1) {
		email := strings.ToLower(match)
		if !seenEmails[email] {
			seenEmails[email] = true
			enrichment.Emails = append(enrichment.Emails, email)
		}
	}

	seenPhones := make(map[string]bool)
	for _, phone := range enrichment.Phones {
		seenPhones[digitsOf(phone)] = true
	}
	for _, match := range phonePattern.FindAllString(text, -1) {
		phone := strings.TrimSpace(match)
		digits := digitsOf(phone)
		if len(digits) < 10 || len(digits) > 15 {
			continue
		}
		if !seenPhones[digits] {
			seenPhones[digits] = true
			enrichment.Phones = append(enrichment.Phones, phone)
		}
	}
}

// digitsOf strips everything but digits from a phone number.
func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// aboutMaxLen caps the about snippet taken from page text.
const aboutMaxLen = 200

// aboutSnippet returns the first sentence of the page text, truncated to
// aboutMaxLen runes, as a fallback when the page has no meta description.
func aboutSnippet(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if i := strings.Index(text, "\n"); i >= 0 {
		text = text[:i]
	}
	if i := strings.Index(text, ". "); i >= 0 {
		text = text[:i+1]
	}
	runes := []rune(text)
	if len(runes) > aboutMaxLen {
		text = string(runes[:aboutMaxLen-3]) + "..."
	}
	return strings.TrimSpace(text)
}
