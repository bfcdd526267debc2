package main

import (
	"fmt"

	"github.com/fwojciec/sitesearch"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	resp, err := deps.Engine.Ask(deps.Ctx, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitesearch.ErrorMessage(err))
		return err
	}

	if resp.Fallback {
		fmt.Fprintln(deps.Stderr, "semantic search unavailable, showing keyword results")
	}

	if resp.Answer != "" {
		fmt.Fprintln(deps.Stdout, resp.Answer)
		fmt.Fprintln(deps.Stdout)
	}

	if len(resp.Results) == 0 {
		fmt.Fprintln(deps.Stdout, "No sources found.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, "Sources:")
	for _, r := range resp.Results {
		printResult(deps, r)
	}

	return nil
}
