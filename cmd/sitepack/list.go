package main

import (
	"fmt"

	"github.com/fwojciec/sitepack"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	list, err := deps.Extractions.FindRecentExtractions(deps.Ctx, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepack.ErrorMessage(err))
		return err
	}

	if len(list) == 0 {
		fmt.Fprintln(deps.Stdout, "No extractions found. Use 'sitepack analyze' to create one.")
		return nil
	}

	for _, e := range list {
		fmt.Fprintf(deps.Stdout, "%s  %s  %3d  %s\n", e.ID, e.CreatedAt.Format("2006-01-02 15:04"), e.Performance.Score, e.URL)
	}
	return nil
}
