package main

import (
	"fmt"

	"github.com/fwojciec/sitesearch"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	results, err := deps.Engine.Search(deps.Ctx, c.Query, c.CaseSensitive)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitesearch.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No matches found.")
		return nil
	}

	for _, r := range results {
		printResult(deps, r)
	}
	fmt.Fprintf(deps.Stdout, "%d matching pages\n", len(results))

	return nil
}

func printResult(deps *Dependencies, r sitesearch.SearchResult) {
	title := r.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(deps.Stdout, "%s\n  %s\n  %s\n\n", title, r.URL, r.Snippet)
}
