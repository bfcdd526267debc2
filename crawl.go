package sitesearch

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// Crawl configuration defaults.
const (
	DefaultMaxDepth    = 5
	DefaultTimeout     = 3 * time.Second
	DefaultDelay       = 100 * time.Millisecond
	DefaultConcurrency = 8
)

// CrawlConfig holds the configuration for one crawl session.
// It is immutable for the duration of the session.
type CrawlConfig struct {
	// StartURL is the seed URL. It must be an absolute http(s) URL.
	StartURL string

	// MaxDepth bounds link-following distance from the seed. The seed is
	// at depth 0.
	MaxDepth int

	// Timeout bounds each individual fetch.
	Timeout time.Duration

	// Delay is the minimum interval between fetch starts on a single
	// worker. It is a per-worker limit, not a global throttle.
	Delay time.Duration

	// AllowedHost restricts the crawl to a single network host. It is
	// derived from StartURL by Validate when empty. Comparison is an
	// exact host match; subdomains are out of scope.
	AllowedHost string
}

// Validate checks the configuration, applies defaults, and derives
// AllowedHost from StartURL. It returns EINVALID on a malformed seed URL
// or out-of-range numeric fields.
func (c *CrawlConfig) Validate() error {
	if c.StartURL == "" {
		return Errorf(EINVALID, "start URL required")
	}
	u, err := url.Parse(c.StartURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return Errorf(EINVALID, "start URL %q must be absolute with scheme and host", c.StartURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "start URL scheme %q not supported", u.Scheme)
	}
	if c.MaxDepth < 0 {
		return Errorf(EINVALID, "max depth must be non-negative")
	}
	if c.Timeout < 0 {
		return Errorf(EINVALID, "timeout must be non-negative")
	}
	if c.Delay < 0 {
		return Errorf(EINVALID, "delay must be non-negative")
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.AllowedHost == "" {
		// Default ports are dropped so the derived host compares equal
		// to normalized link hosts.
		host := strings.ToLower(u.Hostname())
		if p := u.Port(); p != "" && !(u.Scheme == "http" && p == "80") && !(u.Scheme == "https" && p == "443") {
			host += ":" + p
		}
		c.AllowedHost = host
	}
	return nil
}

// CrawlTask is a unit of crawl work: one normalized absolute URL and the
// depth at which it was discovered.
type CrawlTask struct {
	URL   string
	Depth int
}

// CrawlState describes the lifecycle of a crawl session.
// Transitions: Idle -> Crawling -> Completed | Aborted.
type CrawlState string

// Crawl session states.
const (
	CrawlStateIdle      CrawlState = "idle"
	CrawlStateCrawling  CrawlState = "crawling"
	CrawlStateCompleted CrawlState = "completed"
	CrawlStateAborted   CrawlState = "aborted"
)

// CrawlMonitor reports the state of a crawl session. The search engine
// uses it to reject queries before the corpus is complete.
type CrawlMonitor interface {
	State() CrawlState
}

// CrawlInfo is a persisted record of one completed crawl session.
type CrawlInfo struct {
	ID        string        `json:"id"`
	StartURL  string        `json:"startUrl"`
	MaxDepth  int           `json:"maxDepth"`
	Pages     int           `json:"pages"`
	Failed    int           `json:"failed"`
	Elapsed   time.Duration `json:"elapsed"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Validate returns an error if the crawl record contains invalid fields.
func (c *CrawlInfo) Validate() error {
	if c.StartURL == "" {
		return Errorf(EINVALID, "crawl start URL required")
	}
	return nil
}

// CrawlService represents a service for managing crawl session records.
type CrawlService interface {
	// CreateCrawl records a completed crawl session.
	CreateCrawl(ctx context.Context, crawl *CrawlInfo) error

	// FindCrawls retrieves crawl records, most recent first.
	FindCrawls(ctx context.Context, filter CrawlFilter) ([]*CrawlInfo, error)
}

// CrawlFilter represents a filter for FindCrawls.
type CrawlFilter struct {
	ID *string `json:"id"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
