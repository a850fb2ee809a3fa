package main

import (
	"fmt"

	"github.com/fwojciec/sitepack"
)

// Run executes the report command.
func (c *ReportCmd) Run(deps *Dependencies) error {
	e, err := deps.Extractions.FindExtractionByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepack.ErrorMessage(err))
		return err
	}
	r := sitepack.NewReport(e)

	var out string
	switch c.Format {
	case "json":
		return printJSON(deps.Stdout, r)
	case "html":
		out, err = deps.Reports.RenderHTML(r)
	default:
		out, err = deps.Reports.RenderMarkdown(r)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepack.ErrorMessage(err))
		return err
	}
	fmt.Fprint(deps.Stdout, out)
	return nil
}
