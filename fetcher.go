package sitesearch

import (
	"context"
	"fmt"
)

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the body of the page at url.
	// The context controls timeout and cancellation.
	// Failures are reported as *FetchError.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases transport resources.
	Close() error
}

// FetchErrorKind classifies fetch failures.
type FetchErrorKind string

// Fetch failure kinds.
const (
	FetchTimeout     FetchErrorKind = "timeout"
	FetchConnRefused FetchErrorKind = "connection_refused"
	FetchHTTPError   FetchErrorKind = "http_error"
	FetchOther       FetchErrorKind = "other"
)

// FetchError describes a failed fetch. A fetch failure is never fatal to
// a crawl; the task is dropped and the crawl continues.
type FetchError struct {
	URL        string
	Kind       FetchErrorKind
	StatusCode int // set when Kind is FetchHTTPError
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Kind == FetchHTTPError {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
}

// Unwrap returns the underlying transport error, if any.
func (e *FetchError) Unwrap() error {
	return e.Err
}
