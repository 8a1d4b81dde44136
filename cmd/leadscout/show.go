package main

import (
	"fmt"

	"github.com/fwojciec/leadscout"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
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

	fmt.Fprintf(deps.Stdout, "Search %q in %q (%s, %d leads)\n\n",
		search.Keyword, search.Location, search.CreatedAt.Format("2006-01-02"), len(leads))

	if len(leads) == 0 {
		fmt.Fprintln(deps.Stdout, "No leads were archived for this search.")
		return nil
	}

	for _, lead := range leads {
		fmt.Fprintf(deps.Stdout, "%s\n\n", leadscout.FormatLead(lead))
	}

	sources, err := deps.Sources.FindSourcesBySearchID(deps.Ctx, search.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}

	if len(sources) > 0 {
		fmt.Fprintln(deps.Stdout, "Sources:")
		for _, ref := range sources {
			if ref.Title != "" {
				fmt.Fprintf(deps.Stdout, "  %s (%s)\n", ref.Title, ref.URI)
			} else {
				fmt.Fprintf(deps.Stdout, "  %s\n", ref.URI)
			}
		}
	}

	return nil
}
