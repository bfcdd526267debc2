package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/sitesearch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sitesearch.CrawlService = (*CrawlService)(nil)

// CrawlService implements sitesearch.CrawlService using SQLite.
type CrawlService struct {
	db *DB
}

// NewCrawlService creates a new CrawlService.
func NewCrawlService(db *DB) *CrawlService {
	return &CrawlService{db: db}
}

// CreateCrawl records a completed crawl session. An ID is assigned when
// the record doesn't carry one.
func (s *CrawlService) CreateCrawl(ctx context.Context, crawl *sitesearch.CrawlInfo) error {
	if err := crawl.Validate(); err != nil {
		return err
	}

	if crawl.ID == "" {
		crawl.ID = uuid.New().String()
	}
	if crawl.CreatedAt.IsZero() {
		crawl.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crawls (id, start_url, max_depth, pages, failed, elapsed_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, crawl.ID, crawl.StartURL, crawl.MaxDepth, crawl.Pages, crawl.Failed,
		crawl.Elapsed.Milliseconds(), crawl.CreatedAt.Format(time.RFC3339))

	return err
}

// FindCrawls retrieves crawl records matching the filter, most recent first.
func (s *CrawlService) FindCrawls(ctx context.Context, filter sitesearch.CrawlFilter) ([]*sitesearch.CrawlInfo, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, start_url, max_depth, pages, failed, elapsed_ms, created_at FROM crawls WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}

	query.WriteString(" ORDER BY created_at DESC")

	clause, pageArgs := paginate(filter.Limit, filter.Offset)
	query.WriteString(clause)
	args = append(args, pageArgs...)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var crawls []*sitesearch.CrawlInfo
	for rows.Next() {
		var crawl sitesearch.CrawlInfo
		var elapsedMS int64
		var createdAt string

		if err := rows.Scan(&crawl.ID, &crawl.StartURL, &crawl.MaxDepth, &crawl.Pages,
			&crawl.Failed, &elapsedMS, &createdAt); err != nil {
			return nil, err
		}

		crawl.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		crawl.CreatedAt, err = timeColumn(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		crawls = append(crawls, &crawl)
	}

	return crawls, rows.Err()
}
