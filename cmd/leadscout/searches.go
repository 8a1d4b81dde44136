package main

import (
	"fmt"

	"github.com/fwojciec/leadscout"
)

// Run executes the searches command.
func (c *SearchesCmd) Run(deps *Dependencies) error {
	searches, err := deps.Searches.FindSearches(deps.Ctx, leadscout.SearchFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}

	if len(searches) == 0 {
		fmt.Fprintln(deps.Stdout, "No searches archived yet. Use 'leadscout search' to run one.")
		return nil
	}

	for _, s := range searches {
		fmt.Fprintf(deps.Stdout, "%s  %s  %q in %q  %d leads\n",
			s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.Keyword, s.Location, s.LeadCount)
	}

	return nil
}
