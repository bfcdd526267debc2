package sitesearch

// ExtractResult holds the content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title, if present.
	Title string

	// Text is the visible text with script/style content removed and
	// whitespace collapsed.
	Text string

	// Links are the outbound anchor targets resolved to absolute URLs.
	Links []string

	// Images are the image references resolved to absolute URLs, in
	// document order.
	Images []string
}

// Extractor extracts visible text, title, links, and image references
// from HTML pages.
type Extractor interface {
	// Extract processes raw HTML, resolving relative references against
	// baseURL. Malformed markup yields best-effort partial results
	// rather than an error; extraction must never abort a crawl.
	Extract(html string, baseURL string) (*ExtractResult, error)
}
