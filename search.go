package sitesearch

import "context"

// SearchResult represents one match against the crawled corpus.
type SearchResult struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`

	// Relevance indicates match strength. Keyword results report 1;
	// semantic results report the number of intent terms matched.
	Relevance float64 `json:"relevance"`
}

// SearchResponse is the outcome of a semantic query.
type SearchResponse struct {
	// Answer is the synthesized natural-language answer. Empty when
	// synthesis was not requested or unavailable.
	Answer string `json:"answer,omitempty"`

	// Results are the ranked source matches.
	Results []SearchResult `json:"results"`

	// Fallback is true when the oracle was unavailable and the results
	// were produced by plain keyword search instead.
	Fallback bool `json:"fallback"`
}

// SearchService queries the crawled corpus.
type SearchService interface {
	// Search performs exact-substring keyword search.
	Search(ctx context.Context, query string, caseSensitive bool) ([]SearchResult, error)

	// Ask performs semantic search and answer synthesis for a natural
	// language question.
	Ask(ctx context.Context, question string) (*SearchResponse, error)
}
