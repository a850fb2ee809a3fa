package main

import (
	"fmt"

	"github.com/fwojciec/sitepack"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return sitepack.Errorf(sitepack.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Extractions.DeleteExtraction(deps.Ctx, c.ID); err != nil {
		if sitepack.ErrorCode(err) == sitepack.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: extraction %q not found. Use 'sitepack list' to see recent extractions.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepack.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted extraction %s\n", c.ID)
	return nil
}
