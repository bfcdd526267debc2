package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitesearch"
)

// Ensure LoggingPageService implements sitesearch.PageService.
var _ sitesearch.PageService = (*LoggingPageService)(nil)

// LoggingPageService wraps a PageService with logging for writes and
// searches. Reads delegate silently.
type LoggingPageService struct {
	next   sitesearch.PageService
	logger *slog.Logger
}

// NewLoggingPageService creates a new LoggingPageService.
func NewLoggingPageService(next sitesearch.PageService, logger *slog.Logger) *LoggingPageService {
	return &LoggingPageService{next: next, logger: logger}
}

// CreatePage delegates to the wrapped service and logs the operation.
func (s *LoggingPageService) CreatePage(ctx context.Context, page *sitesearch.Page) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("store page",
			"url", page.URL,
			"depth", page.Depth,
			"bytes", len(page.Text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreatePage(ctx, page)
}

// FindPageByURL delegates to the wrapped service.
func (s *LoggingPageService) FindPageByURL(ctx context.Context, url string) (*sitesearch.Page, error) {
	return s.next.FindPageByURL(ctx, url)
}

// FindPages delegates to the wrapped service.
func (s *LoggingPageService) FindPages(ctx context.Context, filter sitesearch.PageFilter) ([]*sitesearch.Page, error) {
	return s.next.FindPages(ctx, filter)
}

// CountPages delegates to the wrapped service.
func (s *LoggingPageService) CountPages(ctx context.Context) (int, error) {
	return s.next.CountPages(ctx)
}

// SearchPages delegates to the wrapped service and logs the operation.
func (s *LoggingPageService) SearchPages(ctx context.Context, query string, caseSensitive bool) (matches []*sitesearch.PageMatch, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search pages",
			"query", query,
			"caseSensitive", caseSensitive,
			"matches", len(matches),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchPages(ctx, query, caseSensitive)
}
