package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/sitepack"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	e, err := deps.Analyzer.Analyze(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepack.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return printJSON(deps.Stdout, e)
	}
	printSummary(deps.Stdout, e)
	return nil
}

// printSummary writes a short human-readable description of e.
func printSummary(w io.Writer, e *sitepack.Extraction) {
	fmt.Fprintf(w, "ID:          %s\n", e.ID)
	fmt.Fprintf(w, "URL:         %s\n", e.URL)
	fmt.Fprintf(w, "Title:       %s\n", e.Title)
	if e.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", e.Description)
	}
	fmt.Fprintf(w, "Created:     %s\n", e.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Assets:      html=%d css=%d js=%d images=%d fonts=%d\n",
		e.Assets.Count(sitepack.AssetHTML),
		e.Assets.Count(sitepack.AssetCSS),
		e.Assets.Count(sitepack.AssetJS),
		e.Assets.Count(sitepack.AssetImage),
		e.Assets.Count(sitepack.AssetFont),
	)

	var names []string
	for _, f := range sitepack.DetectedFrameworks(e.Frameworks) {
		names = append(names, f.Name)
	}
	frameworks := "none"
	if len(names) > 0 {
		frameworks = strings.Join(names, ", ")
	}
	fmt.Fprintf(w, "Frameworks:  %s\n", frameworks)
	fmt.Fprintf(w, "Score:       %d/100 (%d bytes, mobile responsive: %t)\n",
		e.Performance.Score, e.Performance.TotalSize, e.Performance.MobileResponsive)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
