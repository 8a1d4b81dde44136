package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/leadscout"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	query := leadscout.Query{
		Keyword:  c.Keyword,
		Location: c.Location,
		Limit:    c.Limit,
	}

	// Surface skipped lines when asked; they are dropped either way.
	if c.Verbose {
		deps.Streamer.OnSkip = func(line string, err error) {
			fmt.Fprintf(deps.Stderr, "  skip %.60q: %v\n", line, err)
		}
	}

	var leads []*leadscout.Lead
	var sources []leadscout.SourceRef

	for event, err := range deps.Streamer.Stream(deps.Ctx, query) {
		if err != nil {
			// Leads already printed stay printed; the stream just ends here.
			fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
			return err
		}

		if event.Lead != nil {
			leads = append(leads, event.Lead)
			if c.JSONL {
				b, err := json.Marshal(event.Lead)
				if err != nil {
					fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
					return err
				}
				fmt.Fprintln(deps.Stdout, string(b))
			} else {
				fmt.Fprintf(deps.Stdout, "%s\n\n", leadscout.FormatLead(event.Lead))
			}
		}

		sources = append(sources, event.Sources...)
	}

	if !c.JSONL && len(sources) > 0 {
		fmt.Fprintln(deps.Stdout, "Sources:")
		for _, ref := range sources {
			if ref.Title != "" {
				fmt.Fprintf(deps.Stdout, "  %s (%s)\n", ref.Title, ref.URI)
			} else {
				fmt.Fprintf(deps.Stdout, "  %s\n", ref.URI)
			}
		}
		fmt.Fprintln(deps.Stdout)
	}

	// Raw output mode keeps stdout machine-readable; prose goes to stderr.
	summary := deps.Stdout
	if c.JSONL {
		summary = deps.Stderr
	}

	if !c.Save {
		fmt.Fprintf(summary, "Found %d leads (%d sources).\n", len(leads), len(sources))
		return nil
	}

	search := &leadscout.Search{
		Keyword:     c.Keyword,
		Location:    c.Location,
		Limit:       query.LeadLimit(),
		LeadCount:   len(leads),
		ResultsHash: leadscout.FingerprintLeads(leads),
	}

	if err := deps.Searches.CreateSearch(deps.Ctx, search); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}
	if err := deps.Leads.CreateLeads(deps.Ctx, search.ID, leads); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}
	if len(sources) > 0 {
		if err := deps.Sources.CreateSources(deps.Ctx, search.ID, sources); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintf(summary, "Found %d leads (%d sources). Archived as %s.\n", len(leads), len(sources), search.ID)
	return nil
}
