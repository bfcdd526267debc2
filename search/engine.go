// Package search implements keyword and semantic search over the
// crawled corpus.
package search

import (
	"context"
	"log/slog"
	"sort"

	"github.com/fwojciec/sitesearch"
)

// DefaultLimit bounds the number of semantic results when no limit is
// configured.
const DefaultLimit = 5

// Ensure Engine implements sitesearch.SearchService at compile time.
var _ sitesearch.SearchService = (*Engine)(nil)

// Engine queries the crawled corpus. Keyword search hits the page store
// directly; semantic search consults the Oracle for query intent and
// answer synthesis, degrading to keyword search when the Oracle is
// unavailable.
type Engine struct {
	Pages  sitesearch.PageService
	Oracle sitesearch.Oracle

	// Monitor, when set, gates queries on crawl completion. Queries
	// against an idle or in-progress crawl fail with EUNAVAILABLE.
	Monitor sitesearch.CrawlMonitor

	// Logger for degradation warnings. When nil, logging is disabled.
	Logger *slog.Logger

	// Limit bounds semantic results. Zero means DefaultLimit.
	Limit int

	// NoAnswer skips the synthesis stage; Ask returns ranked results
	// only.
	NoAnswer bool
}

// Search performs exact-substring keyword search over page text and
// titles.
func (e *Engine) Search(ctx context.Context, query string, caseSensitive bool) ([]sitesearch.SearchResult, error) {
	if query == "" {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "search query required")
	}
	if err := e.ready(); err != nil {
		return nil, err
	}

	matches, err := e.Pages.SearchPages(ctx, query, caseSensitive)
	if err != nil {
		return nil, err
	}

	results := make([]sitesearch.SearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, sitesearch.SearchResult{
			URL:       m.Page.URL,
			Title:     m.Page.Title,
			Snippet:   matchSnippet(m, len(query)),
			Relevance: 1,
		})
	}
	return results, nil
}

// Ask performs semantic search and answer synthesis. Oracle failures
// never propagate: an intent-stage failure falls back to keyword search
// on the raw question, a synthesis-stage failure returns the ranked
// results without an answer. Both set Fallback on the response.
func (e *Engine) Ask(ctx context.Context, question string) (*sitesearch.SearchResponse, error) {
	if question == "" {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "question required")
	}
	if err := e.ready(); err != nil {
		return nil, err
	}

	intent, err := e.Oracle.Complete(ctx, BuildIntentPrompt(question))
	if err != nil {
		e.logger().Warn("intent extraction failed, falling back to keyword search", "error", err)
		return e.fallback(ctx, question)
	}
	terms := ParseTerms(intent)
	if len(terms) == 0 {
		e.logger().Warn("intent extraction produced no terms, falling back to keyword search")
		return e.fallback(ctx, question)
	}

	results, err := e.rankByTerms(ctx, terms)
	if err != nil {
		return nil, err
	}

	resp := &sitesearch.SearchResponse{Results: results}
	if e.NoAnswer || len(results) == 0 {
		return resp, nil
	}

	answer, err := e.Oracle.Complete(ctx, BuildAnswerPrompt(question, results))
	if err != nil {
		e.logger().Warn("answer synthesis failed", "error", err)
		resp.Fallback = true
		return resp, nil
	}
	resp.Answer = answer
	return resp, nil
}

// rankByTerms collects pages matching any term and ranks them by the
// number of distinct terms matched, highest first.
func (e *Engine) rankByTerms(ctx context.Context, terms []string) ([]sitesearch.SearchResult, error) {
	type candidate struct {
		page    *sitesearch.Page
		hits    int
		offset  int
		termLen int
	}
	byURL := make(map[string]*candidate)

	for _, term := range terms {
		matches, err := e.Pages.SearchPages(ctx, term, false)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			c, ok := byURL[m.Page.URL]
			if !ok {
				c = &candidate{page: m.Page, offset: m.Offset, termLen: len(term)}
				byURL[m.Page.URL] = c
			}
			c.hits++
		}
	}

	candidates := make([]*candidate, 0, len(byURL))
	for _, c := range byURL {
		candidates = append(candidates, c)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].hits != candidates[j].hits {
			return candidates[i].hits > candidates[j].hits
		}
		return candidates[i].page.URL < candidates[j].page.URL
	})

	limit := e.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	results := make([]sitesearch.SearchResult, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, sitesearch.SearchResult{
			URL:       c.page.URL,
			Title:     c.page.Title,
			Snippet:   matchSnippet(&sitesearch.PageMatch{Page: c.page, Offset: c.offset}, c.termLen),
			Relevance: float64(c.hits),
		})
	}
	return results, nil
}

// fallback runs keyword search on the raw question and wraps the
// results in a degraded semantic response.
func (e *Engine) fallback(ctx context.Context, question string) (*sitesearch.SearchResponse, error) {
	results, err := e.Search(ctx, question, false)
	if err != nil {
		return nil, err
	}
	return &sitesearch.SearchResponse{Results: results, Fallback: true}, nil
}

// matchSnippet builds the context snippet for a match. Title-only
// matches snippet the head of the page text.
func matchSnippet(m *sitesearch.PageMatch, matchLen int) string {
	if m.Offset < 0 {
		return Snippet(m.Page.Text, 0, 0)
	}
	return Snippet(m.Page.Text, m.Offset, matchLen)
}

// ready rejects queries while a monitored crawl has not completed.
func (e *Engine) ready() error {
	if e.Monitor == nil {
		return nil
	}
	switch e.Monitor.State() {
	case sitesearch.CrawlStateIdle, sitesearch.CrawlStateCrawling:
		return sitesearch.Errorf(sitesearch.EUNAVAILABLE, "crawl not ready")
	}
	return nil
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}
