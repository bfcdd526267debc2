package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitesearch"
)

// Compile-time interface verification.
var _ sitesearch.PageService = (*PageService)(nil)

// PageService implements sitesearch.PageService using SQLite.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// hashText computes xxHash of text and returns hex string.
func hashText(text string) string {
	h := xxhash.Sum64String(text)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreatePage stores a new page. The URL is the primary key and the first
// write wins; a later write for the same URL is silently ignored.
func (s *PageService) CreatePage(ctx context.Context, page *sitesearch.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	if page.FetchedAt.IsZero() {
		page.FetchedAt = time.Now().UTC()
	}
	page.TextHash = hashText(page.Text)

	images, err := json.Marshal(page.Images)
	if err != nil {
		return fmt.Errorf("failed to encode images: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO pages (url, title, text, depth, images, text_hash, crawl_id, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, page.URL, page.Title, page.Text, page.Depth, string(images), page.TextHash,
		page.CrawlID, page.FetchedAt.Format(time.RFC3339))

	return err
}

// FindPageByURL retrieves a page by its URL.
func (s *PageService) FindPageByURL(ctx context.Context, url string) (*sitesearch.Page, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT url, title, text, depth, images, text_hash, crawl_id, fetched_at
		FROM pages
		WHERE url = ?
	`, url)

	page, err := scanPage(row)
	if err == sql.ErrNoRows {
		return nil, sitesearch.Errorf(sitesearch.ENOTFOUND, "page not found")
	}
	if err != nil {
		return nil, err
	}

	return page, nil
}

// FindPages retrieves pages matching the filter, in fetch order.
func (s *PageService) FindPages(ctx context.Context, filter sitesearch.PageFilter) ([]*sitesearch.Page, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT url, title, text, depth, images, text_hash, crawl_id, fetched_at FROM pages WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.CrawlID != nil {
		query.WriteString(" AND crawl_id = ?")
		args = append(args, *filter.CrawlID)
	}

	query.WriteString(" ORDER BY fetched_at ASC, url ASC")

	clause, pageArgs := paginate(filter.Limit, filter.Offset)
	query.WriteString(clause)
	args = append(args, pageArgs...)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*sitesearch.Page
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	return pages, rows.Err()
}

// CountPages returns the number of stored pages.
func (s *PageService) CountPages(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&n)
	return n, err
}

// SearchPages returns every page whose text or title contains the query
// as a substring. The reported offset is the byte position of the first
// match in the page text, or -1 when only the title matched.
func (s *PageService) SearchPages(ctx context.Context, query string, caseSensitive bool) ([]*sitesearch.PageMatch, error) {
	if query == "" {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "search query required")
	}

	// INSTR filters candidates only; it counts characters, not bytes,
	// so the match offset is recomputed in Go below. LOWER folds ASCII,
	// which is sufficient for the SQL-side filter.
	stmt := `
		SELECT url, title, text, depth, images, text_hash, crawl_id, fetched_at
		FROM pages
		WHERE INSTR(text, ?1) > 0 OR INSTR(title, ?1) > 0
		ORDER BY url ASC
	`
	arg := query
	if !caseSensitive {
		stmt = `
			SELECT url, title, text, depth, images, text_hash, crawl_id, fetched_at
			FROM pages
			WHERE INSTR(LOWER(text), ?1) > 0 OR INSTR(LOWER(title), ?1) > 0
			ORDER BY url ASC
		`
		arg = strings.ToLower(query)
	}

	rows, err := s.db.QueryContext(ctx, stmt, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*sitesearch.PageMatch
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}

		matches = append(matches, &sitesearch.PageMatch{
			Page:   page,
			Offset: matchOffset(page.Text, query, caseSensitive),
		})
	}

	return matches, rows.Err()
}

// matchOffset returns the byte offset of the first occurrence of query
// in text, or -1 when the match was in the title only.
func matchOffset(text, query string, caseSensitive bool) int {
	if caseSensitive {
		return strings.Index(text, query)
	}
	return strings.Index(strings.ToLower(text), strings.ToLower(query))
}

// scanner abstracts sql.Row and sql.Rows for scanPage.
type scanner interface {
	Scan(dest ...any) error
}

func scanPage(row scanner) (*sitesearch.Page, error) {
	var page sitesearch.Page
	var images, fetchedAt string

	if err := row.Scan(&page.URL, &page.Title, &page.Text, &page.Depth, &images,
		&page.TextHash, &page.CrawlID, &fetchedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(images), &page.Images); err != nil {
		return nil, fmt.Errorf("failed to decode images: %w", err)
	}

	var err error
	page.FetchedAt, err = timeColumn(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	return &page, nil
}
