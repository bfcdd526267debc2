package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/sitesearch"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	crawls, err := deps.Crawls.FindCrawls(deps.Ctx, sitesearch.CrawlFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitesearch.ErrorMessage(err))
		return err
	}

	if len(crawls) == 0 {
		fmt.Fprintln(deps.Stdout, "No crawl sessions recorded. Use 'sitesearch crawl' to start one.")
		return nil
	}

	for _, cr := range crawls {
		fmt.Fprintf(deps.Stdout, "%s  %s  depth=%d  pages=%d  failed=%d  %s  %s\n",
			cr.ID, cr.StartURL, cr.MaxDepth, cr.Pages, cr.Failed,
			cr.Elapsed.Round(time.Millisecond), cr.CreatedAt.Format(time.RFC3339))
	}

	return nil
}
