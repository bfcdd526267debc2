package sitesearch

import (
	"context"
	"time"
)

// Page represents the text content of a single crawled page.
// A page is created exactly once per unique URL and is immutable thereafter;
// there is no re-crawl or update path.
type Page struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Depth     int       `json:"depth"`
	Images    []string  `json:"images,omitempty"`
	TextHash  string    `json:"textHash"`
	CrawlID   string    `json:"crawlId"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	if p.Depth < 0 {
		return Errorf(EINVALID, "page depth must be non-negative")
	}
	return nil
}

// PageMatch pairs a page with the byte offset of the first query match
// in its text. An offset of -1 indicates the match was in the title only.
type PageMatch struct {
	Page   *Page
	Offset int
}

// PageService represents a service for managing crawled pages.
type PageService interface {
	// CreatePage stores a new page. The first write for a URL wins;
	// subsequent writes for the same URL are ignored.
	CreatePage(ctx context.Context, page *Page) error

	// FindPageByURL retrieves a page by its URL.
	// Returns ENOTFOUND if the page does not exist.
	FindPageByURL(ctx context.Context, url string) (*Page, error)

	// FindPages retrieves pages matching the filter.
	FindPages(ctx context.Context, filter PageFilter) ([]*Page, error)

	// CountPages returns the number of stored pages.
	CountPages(ctx context.Context) (int, error)

	// SearchPages returns every page whose text or title contains the
	// query as a substring, with the offset of the first text match.
	SearchPages(ctx context.Context, query string, caseSensitive bool) ([]*PageMatch, error)
}

// PageFilter represents a filter for FindPages.
type PageFilter struct {
	URL     *string `json:"url"`
	CrawlID *string `json:"crawlId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
