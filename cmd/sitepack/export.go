package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/sitepack"
	"github.com/fwojciec/sitepack/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	e, err := deps.Extractions.FindExtractionByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepack.ErrorMessage(err))
		return err
	}

	flavour, build := sitepack.ArchiveAssets, deps.Archives.BuildAssetsArchive
	if c.Project {
		flavour, build = sitepack.ArchiveProject, deps.Archives.BuildProjectArchive
	}
	b, err := build(e)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepack.ErrorMessage(err))
		return err
	}

	if c.Dir != "" {
		return c.unpack(deps, b)
	}
	if c.Output == "-" {
		_, err := deps.Stdout.Write(b)
		return err
	}
	path := c.Output
	if path == "" {
		path = e.ArchiveFilename(flavour, deps.Now())
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s (%d bytes)\n", path, len(b))
	return nil
}

// unpack replaces c.Dir with the contents of the archive.
func (c *ExportCmd) unpack(deps *Dependencies, archive []byte) error {
	store := fs.NewDirStore(filepath.Dir(c.Dir), filepath.Base(c.Dir))
	if err := store.Unpack(archive); err != nil {
		_ = store.Abort()
		return fmt.Errorf("failed to unpack archive: %w", err)
	}
	if err := store.Commit(); err != nil {
		_ = store.Abort()
		return fmt.Errorf("failed to write %s: %w", c.Dir, err)
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s\n", store.Dir())
	return nil
}
