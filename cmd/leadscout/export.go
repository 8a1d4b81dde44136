package main

import (
	"fmt"

	"github.com/fwojciec/leadscout"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	if c.ID == "" && !c.Last {
		fmt.Fprintf(deps.Stderr, "error: specify a search ID or --last\n")
		return leadscout.Errorf(leadscout.EINVALID, "specify a search ID or --last")
	}
	if c.ID != "" && c.Last {
		fmt.Fprintf(deps.Stderr, "error: specify either a search ID or --last, not both\n")
		return leadscout.Errorf(leadscout.EINVALID, "specify either a search ID or --last, not both")
	}
	if c.Out != "" && (c.Format == "gist" || c.Format == "clipboard") {
		fmt.Fprintf(deps.Stderr, "error: --out does not apply to %s export\n", c.Format)
		return leadscout.Errorf(leadscout.EINVALID, "--out does not apply to %s export", c.Format)
	}

	search, err := c.resolveSearch(deps)
	if err != nil {
		return err
	}

	leads, err := deps.Leads.FindLeads(deps.Ctx, leadscout.LeadFilter{SearchID: &search.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}

	sources, err := deps.Sources.FindSourcesBySearchID(deps.Ctx, search.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}

	result := &leadscout.Result{
		Search:  search,
		Leads:   leads,
		Sources: sources,
	}

	destination, err := deps.Exporter.Export(deps.Ctx, result)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d leads to %s\n", len(leads), destination)
	return nil
}

// resolveSearch finds the search to export: the newest one with --last,
// otherwise the one named by ID.
func (c *ExportCmd) resolveSearch(deps *Dependencies) (*leadscout.Search, error) {
	if c.Last {
		searches, err := deps.Searches.FindSearches(deps.Ctx, leadscout.SearchFilter{Limit: 1})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
			return nil, err
		}
		if len(searches) == 0 {
			fmt.Fprintf(deps.Stderr, "error: no searches archived yet. Use 'leadscout search' to run one.\n")
			return nil, leadscout.Errorf(leadscout.ENOTFOUND, "no searches archived yet")
		}
		return searches[0], nil
	}

	search, err := deps.Searches.FindSearchByID(deps.Ctx, c.ID)
	if err != nil {
		if leadscout.ErrorCode(err) == leadscout.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: search %q not found. Use 'leadscout searches' to see the archive.\n", c.ID)
			return nil, err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return nil, err
	}
	return search, nil
}
