package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/sitesearch"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	config := sitesearch.CrawlConfig{
		StartURL: c.URL,
		MaxDepth: c.Depth,
		Timeout:  c.Timeout,
		Delay:    c.Delay,
	}

	result, err := deps.Crawler.Start(deps.Ctx, config)
	if err != nil && result == nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitesearch.ErrorMessage(err))
		return err
	}

	for _, taskErr := range result.Errors {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", taskErr)
	}

	record := &sitesearch.CrawlInfo{
		ID:       result.CrawlID,
		StartURL: c.URL,
		MaxDepth: c.Depth,
		Pages:    result.Pages,
		Failed:   result.Failed,
		Elapsed:  result.Elapsed,
	}
	if storeErr := deps.Crawls.CreateCrawl(deps.Ctx, record); storeErr != nil {
		fmt.Fprintf(deps.Stderr, "warning: failed to record crawl session: %s\n", storeErr)
	}

	fmt.Fprintf(deps.Stdout, "Crawled %d pages (%d failed) in %s\n",
		result.Pages, result.Failed, result.Elapsed.Round(time.Millisecond))

	if err != nil {
		return err
	}
	return nil
}
