package mock

import (
	"context"

	"github.com/fwojciec/sitesearch"
)

var _ sitesearch.CrawlService = (*CrawlService)(nil)

// CrawlService is a mock implementation of sitesearch.CrawlService.
type CrawlService struct {
	CreateCrawlFn func(ctx context.Context, crawl *sitesearch.CrawlInfo) error
	FindCrawlsFn  func(ctx context.Context, filter sitesearch.CrawlFilter) ([]*sitesearch.CrawlInfo, error)
}

func (s *CrawlService) CreateCrawl(ctx context.Context, crawl *sitesearch.CrawlInfo) error {
	return s.CreateCrawlFn(ctx, crawl)
}

func (s *CrawlService) FindCrawls(ctx context.Context, filter sitesearch.CrawlFilter) ([]*sitesearch.CrawlInfo, error) {
	return s.FindCrawlsFn(ctx, filter)
}

var _ sitesearch.CrawlMonitor = (*CrawlMonitor)(nil)

// CrawlMonitor is a mock implementation of sitesearch.CrawlMonitor.
type CrawlMonitor struct {
	StateFn func() sitesearch.CrawlState
}

func (m *CrawlMonitor) State() sitesearch.CrawlState {
	return m.StateFn()
}
