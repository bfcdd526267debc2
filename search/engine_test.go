package search_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/mock"
	"github.com/fwojciec/sitesearch/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// corpusPages returns a mock store over a small fixed corpus. Matching
// mirrors the store's substring semantics including the -1 title-only
// offset.
func corpusPages(pages []*sitesearch.Page) *mock.PageService {
	return &mock.PageService{
		SearchPagesFn: func(ctx context.Context, query string, caseSensitive bool) ([]*sitesearch.PageMatch, error) {
			var matches []*sitesearch.PageMatch
			for _, p := range pages {
				text, title, q := p.Text, p.Title, query
				if !caseSensitive {
					text, title, q = strings.ToLower(text), strings.ToLower(title), strings.ToLower(query)
				}
				if idx := strings.Index(text, q); idx >= 0 {
					matches = append(matches, &sitesearch.PageMatch{Page: p, Offset: idx})
				} else if strings.Contains(title, q) {
					matches = append(matches, &sitesearch.PageMatch{Page: p, Offset: -1})
				}
			}
			return matches, nil
		},
	}
}

func TestEngine_Search(t *testing.T) {
	t.Parallel()

	pages := []*sitesearch.Page{
		{URL: "https://example.com/a", Title: "Alpha", Text: "the football season starts soon"},
		{URL: "https://example.com/b", Title: "Football", Text: "unrelated body text"},
	}

	t.Run("returns snippets for text matches", func(t *testing.T) {
		t.Parallel()

		e := &search.Engine{Pages: corpusPages(pages)}
		results, err := e.Search(context.Background(), "football", false)

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "https://example.com/a", results[0].URL)
		assert.Contains(t, results[0].Snippet, "football")
		assert.Equal(t, 1.0, results[0].Relevance)
	})

	t.Run("title-only match snippets the text head", func(t *testing.T) {
		t.Parallel()

		e := &search.Engine{Pages: corpusPages(pages)}
		results, err := e.Search(context.Background(), "Football", true)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "https://example.com/b", results[0].URL)
		assert.Equal(t, "unrelated body text", results[0].Snippet)
	})

	t.Run("rejects empty query", func(t *testing.T) {
		t.Parallel()

		e := &search.Engine{Pages: corpusPages(nil)}
		_, err := e.Search(context.Background(), "", false)

		require.Error(t, err)
		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
	})

	t.Run("rejected while crawl in progress", func(t *testing.T) {
		t.Parallel()

		monitor := &mock.CrawlMonitor{StateFn: func() sitesearch.CrawlState { return sitesearch.CrawlStateCrawling }}
		e := &search.Engine{Pages: corpusPages(pages), Monitor: monitor}

		_, err := e.Search(context.Background(), "football", false)
		require.Error(t, err)
		assert.Equal(t, sitesearch.EUNAVAILABLE, sitesearch.ErrorCode(err))
		assert.Equal(t, "crawl not ready", sitesearch.ErrorMessage(err))
	})

	t.Run("allowed after crawl completes", func(t *testing.T) {
		t.Parallel()

		monitor := &mock.CrawlMonitor{StateFn: func() sitesearch.CrawlState { return sitesearch.CrawlStateCompleted }}
		e := &search.Engine{Pages: corpusPages(pages), Monitor: monitor}

		_, err := e.Search(context.Background(), "football", false)
		require.NoError(t, err)
	})
}

func TestEngine_Ask(t *testing.T) {
	t.Parallel()

	pages := []*sitesearch.Page{
		{URL: "https://example.com/schedule", Title: "Schedule", Text: "the football season schedule for august"},
		{URL: "https://example.com/news", Title: "News", Text: "football news from around the league"},
		{URL: "https://example.com/weather", Title: "Weather", Text: "sunny with rain later"},
	}

	t.Run("ranks by distinct terms matched and synthesizes an answer", func(t *testing.T) {
		t.Parallel()

		var prompts []string
		oracle := &mock.Oracle{
			CompleteFn: func(ctx context.Context, prompt string) (string, error) {
				prompts = append(prompts, prompt)
				if len(prompts) == 1 {
					return "football, schedule", nil
				}
				return "The season schedule is on the schedule page.", nil
			},
		}
		e := &search.Engine{Pages: corpusPages(pages), Oracle: oracle}

		resp, err := e.Ask(context.Background(), "when does the season start?")
		require.NoError(t, err)

		require.Len(t, resp.Results, 2)
		// The schedule page matches both terms, the news page only one.
		assert.Equal(t, "https://example.com/schedule", resp.Results[0].URL)
		assert.Equal(t, 2.0, resp.Results[0].Relevance)
		assert.Equal(t, "https://example.com/news", resp.Results[1].URL)
		assert.Equal(t, 1.0, resp.Results[1].Relevance)

		assert.Equal(t, "The season schedule is on the schedule page.", resp.Answer)
		assert.False(t, resp.Fallback)

		require.Len(t, prompts, 2)
		assert.Contains(t, prompts[1], "https://example.com/schedule")
	})

	t.Run("intent failure falls back to keyword search", func(t *testing.T) {
		t.Parallel()

		oracle := &mock.Oracle{
			CompleteFn: func(ctx context.Context, prompt string) (string, error) {
				return "", errors.New("model unavailable")
			},
		}
		e := &search.Engine{Pages: corpusPages(pages), Oracle: oracle}

		resp, err := e.Ask(context.Background(), "football")
		require.NoError(t, err)

		assert.True(t, resp.Fallback)
		assert.Empty(t, resp.Answer)
		require.Len(t, resp.Results, 2)
	})

	t.Run("empty intent response falls back to keyword search", func(t *testing.T) {
		t.Parallel()

		oracle := &mock.Oracle{
			CompleteFn: func(ctx context.Context, prompt string) (string, error) {
				return "\n,\n", nil
			},
		}
		e := &search.Engine{Pages: corpusPages(pages), Oracle: oracle}

		resp, err := e.Ask(context.Background(), "football")
		require.NoError(t, err)
		assert.True(t, resp.Fallback)
	})

	t.Run("synthesis failure returns ranked results without answer", func(t *testing.T) {
		t.Parallel()

		calls := 0
		oracle := &mock.Oracle{
			CompleteFn: func(ctx context.Context, prompt string) (string, error) {
				calls++
				if calls == 1 {
					return "football", nil
				}
				return "", errors.New("model unavailable")
			},
		}
		e := &search.Engine{Pages: corpusPages(pages), Oracle: oracle}

		resp, err := e.Ask(context.Background(), "tell me about football")
		require.NoError(t, err)

		assert.True(t, resp.Fallback)
		assert.Empty(t, resp.Answer)
		require.Len(t, resp.Results, 2)
	})

	t.Run("no candidates skips synthesis", func(t *testing.T) {
		t.Parallel()

		calls := 0
		oracle := &mock.Oracle{
			CompleteFn: func(ctx context.Context, prompt string) (string, error) {
				calls++
				return "cricket", nil
			},
		}
		e := &search.Engine{Pages: corpusPages(pages), Oracle: oracle}

		resp, err := e.Ask(context.Background(), "cricket scores")
		require.NoError(t, err)

		assert.Empty(t, resp.Results)
		assert.Empty(t, resp.Answer)
		assert.False(t, resp.Fallback)
		assert.Equal(t, 1, calls, "synthesis should not run without candidates")
	})

	t.Run("no-answer mode skips synthesis", func(t *testing.T) {
		t.Parallel()

		calls := 0
		oracle := &mock.Oracle{
			CompleteFn: func(ctx context.Context, prompt string) (string, error) {
				calls++
				return "football", nil
			},
		}
		e := &search.Engine{Pages: corpusPages(pages), Oracle: oracle, NoAnswer: true}

		resp, err := e.Ask(context.Background(), "tell me about football")
		require.NoError(t, err)

		assert.Empty(t, resp.Answer)
		assert.False(t, resp.Fallback)
		require.Len(t, resp.Results, 2)
		assert.Equal(t, 1, calls, "only the intent prompt should run")
	})

	t.Run("limit bounds result count", func(t *testing.T) {
		t.Parallel()

		oracle := &mock.Oracle{
			CompleteFn: func(ctx context.Context, prompt string) (string, error) {
				return "football, season, news, league", nil
			},
		}
		e := &search.Engine{Pages: corpusPages(pages), Oracle: oracle, Limit: 1}

		resp, err := e.Ask(context.Background(), "football news")
		require.NoError(t, err)
		assert.Len(t, resp.Results, 1)
	})

	t.Run("rejects empty question", func(t *testing.T) {
		t.Parallel()

		e := &search.Engine{Pages: corpusPages(pages)}
		_, err := e.Ask(context.Background(), "")

		require.Error(t, err)
		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
	})
}
