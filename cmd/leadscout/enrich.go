package main

import (
	"fmt"

	"github.com/fwojciec/leadscout"
	"github.com/fwojciec/leadscout/enrich"
)

// Run executes the enrich command.
func (c *EnrichCmd) Run(deps *Dependencies) error {
	search, err := deps.Searches.FindSearchByID(deps.Ctx, c.ID)
	if err != nil {
		if leadscout.ErrorCode(err) == leadscout.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: search %q not found. Use 'leadscout searches' to see the archive.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}

	leads, err := deps.Leads.FindLeads(deps.Ctx, leadscout.LeadFilter{SearchID: &search.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}

	if len(leads) == 0 {
		fmt.Fprintf(deps.Stderr, "error: search %q has no archived leads\n", c.ID)
		return leadscout.Errorf(leadscout.ENOTFOUND, "search %q has no archived leads", c.ID)
	}

	// Apply user-specified concurrency
	if c.Concurrency > 0 {
		deps.Enricher.Concurrency = c.Concurrency
	}

	progress := func(event enrich.ProgressEvent) {
		switch event.Type {
		case enrich.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Enriching %d leads\n", event.Total)
		case enrich.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.Lead, event.Error)
		case enrich.ProgressFinished:
			// Summary printed after enrichment completes
		}
	}

	result, err := deps.Enricher.EnrichLeads(deps.Ctx, leads, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}

	for _, lead := range leads {
		enrichment, ok := result.Enrichments[lead.ID]
		if !ok {
			continue
		}
		if len(enrichment.Emails) == 0 && len(enrichment.Phones) == 0 &&
			len(enrichment.Socials) == 0 && enrichment.About == "" {
			continue
		}

		fmt.Fprintf(deps.Stdout, "\n%s\n", lead.Name)
		for _, email := range enrichment.Emails {
			fmt.Fprintf(deps.Stdout, "  email   %s\n", email)
		}
		for _, phone := range enrichment.Phones {
			fmt.Fprintf(deps.Stdout, "  phone   %s\n", phone)
		}
		for _, social := range enrichment.Socials {
			fmt.Fprintf(deps.Stdout, "  social  %s\n", social)
		}
		if enrichment.About != "" {
			fmt.Fprintf(deps.Stdout, "  about   %s\n", enrichment.About)
		}
	}

	fmt.Fprintf(deps.Stdout, "\nEnriched %d of %d leads (%d skipped, %d failed)\n",
		len(result.Enrichments), len(leads), result.Skipped, result.Failed)

	if c.Apply {
		updated, err := deps.Enricher.ApplyEnrichments(deps.Ctx, leads, result.Enrichments)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Updated %d archived leads\n", updated)
	}

	return nil
}
