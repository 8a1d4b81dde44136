package main

import (
	"fmt"

	"github.com/fwojciec/leadscout"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return leadscout.Errorf(leadscout.EINVALID, "use --force to confirm deletion")
	}

	search, err := deps.Searches.FindSearchByID(deps.Ctx, c.ID)
	if err != nil {
		if leadscout.ErrorCode(err) == leadscout.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: search %q not found. Use 'leadscout searches' to see the archive.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}

	if err := deps.Searches.DeleteSearch(deps.Ctx, search.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted search %q in %q (%s)\n", search.Keyword, search.Location, search.ID)
	return nil
}
