package main

import (
	"fmt"

	"github.com/fwojciec/sitepack"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	e, err := deps.Extractions.FindExtractionByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepack.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return printJSON(deps.Stdout, e)
	}
	printSummary(deps.Stdout, e)
	for _, a := range e.Assets.All() {
		fmt.Fprintf(deps.Stdout, "  %-6s %10d  %s\n", a.Kind, a.Size, a.Name)
	}
	return nil
}
