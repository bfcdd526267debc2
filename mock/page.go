package mock

import (
	"context"

	"github.com/fwojciec/sitesearch"
)

var _ sitesearch.PageService = (*PageService)(nil)

// PageService is a mock implementation of sitesearch.PageService.
type PageService struct {
	CreatePageFn    func(ctx context.Context, page *sitesearch.Page) error
	FindPageByURLFn func(ctx context.Context, url string) (*sitesearch.Page, error)
	FindPagesFn     func(ctx context.Context, filter sitesearch.PageFilter) ([]*sitesearch.Page, error)
	CountPagesFn    func(ctx context.Context) (int, error)
	SearchPagesFn   func(ctx context.Context, query string, caseSensitive bool) ([]*sitesearch.PageMatch, error)
}

func (s *PageService) CreatePage(ctx context.Context, page *sitesearch.Page) error {
	return s.CreatePageFn(ctx, page)
}

func (s *PageService) FindPageByURL(ctx context.Context, url string) (*sitesearch.Page, error) {
	return s.FindPageByURLFn(ctx, url)
}

func (s *PageService) FindPages(ctx context.Context, filter sitesearch.PageFilter) ([]*sitesearch.Page, error) {
	return s.FindPagesFn(ctx, filter)
}

func (s *PageService) CountPages(ctx context.Context) (int, error) {
	return s.CountPagesFn(ctx)
}

func (s *PageService) SearchPages(ctx context.Context, query string, caseSensitive bool) ([]*sitesearch.PageMatch, error) {
	return s.SearchPagesFn(ctx, query, caseSensitive)
}
