// Package http provides an HTTP-based implementation of
// sitesearch.Fetcher. It does not execute JavaScript and is suitable
// for static sites only.
package http

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/fwojciec/sitesearch"
)

// DefaultFetchTimeout is the default timeout for HTTP requests. It is a
// transport-level backstop; per-fetch deadlines come from the request
// context.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies the crawler to servers.
const DefaultUserAgent = "sitesearch/1.0"

// Ensure Fetcher implements sitesearch.Fetcher at compile time.
var _ sitesearch.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// Failures are classified into *sitesearch.FetchError kinds so the
// crawler can report them uniformly.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the transport-level timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL. Non-2xx
// responses, timeouts, and transport failures all come back as
// *sitesearch.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &sitesearch.FetchError{URL: url, Kind: sitesearch.FetchOther, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", classify(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &sitesearch.FetchError{
			URL:        url,
			Kind:       sitesearch.FetchHTTPError,
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classify(url, err)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// classify maps a transport error to a FetchError kind.
func classify(url string, err error) *sitesearch.FetchError {
	kind := sitesearch.FetchOther

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = sitesearch.FetchTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = sitesearch.FetchTimeout
	case errors.Is(err, syscall.ECONNREFUSED):
		kind = sitesearch.FetchConnRefused
	}

	return &sitesearch.FetchError{URL: url, Kind: kind, Err: err}
}
