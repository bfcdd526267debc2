// Package crawl provides crawl orchestration: concurrent fetch
// scheduling, frontier and visited-set management, depth and domain
// containment, and per-worker rate limiting.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/sitesearch"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Frontier configuration.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
	// drainTimeout bounds how long shutdown waits for in-flight results.
	drainTimeout = 5 * time.Second
)

// Compile-time interface verification.
var _ sitesearch.CrawlMonitor = (*Crawler)(nil)

// Crawler drives a level-wise crawl from a seed URL out to a depth limit,
// restricted to the seed's host, without duplicate work.
type Crawler struct {
	Fetcher   sitesearch.Fetcher
	Extractor sitesearch.Extractor
	Pages     sitesearch.PageService
	Logger    *slog.Logger

	// Concurrency bounds the worker pool. Defaults to
	// sitesearch.DefaultConcurrency.
	Concurrency int

	// MaxPages caps the number of tasks dispatched in one session to
	// prevent runaway crawls. Zero means no cap.
	MaxPages int

	// RetryDelays configures fetch retries. Nil means a single attempt:
	// a failed page is dropped and the crawl moves on.
	RetryDelays []time.Duration

	state atomic.Value // sitesearch.CrawlState
}

// Result holds the outcome of one crawl session.
type Result struct {
	// CrawlID identifies the session. Stored pages carry it.
	CrawlID string

	// Pages is the number of distinct page records created.
	Pages int

	// Failed counts tasks dropped due to fetch, extract, or store errors.
	Failed int

	// Elapsed is the wall-clock duration of the session.
	Elapsed time.Duration

	// Errors holds the per-task errors behind the Failed count.
	Errors []error
}

// crawlResult holds the outcome of processing a single task.
type crawlResult struct {
	task   sitesearch.CrawlTask
	title  string
	text   string
	links  []string
	images []string
	err    error
}

// State reports the session lifecycle state.
func (c *Crawler) State() sitesearch.CrawlState {
	if s, ok := c.state.Load().(sitesearch.CrawlState); ok {
		return s
	}
	return sitesearch.CrawlStateIdle
}

func (c *Crawler) setState(s sitesearch.CrawlState) {
	c.state.Store(s)
}

// Start runs a crawl session to completion. It seeds the frontier with
// the configured start URL at depth 0 and returns once the frontier is
// empty and no task is in flight.
//
// Configuration errors fail fast before any fetching begins. Individual
// page failures never abort the session; they are counted and collected
// in the result. Cancellation is observed between tasks: the pool drains
// without enqueuing new work, the session moves to the Aborted state, and
// the partial result is returned alongside the context error.
func (c *Crawler) Start(ctx context.Context, config sitesearch.CrawlConfig) (*Result, error) {
	if err := config.Validate(); err != nil {
		c.setState(sitesearch.CrawlStateAborted)
		return nil, err
	}
	seed, err := Normalize(config.StartURL)
	if err != nil {
		c.setState(sitesearch.CrawlStateAborted)
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "start URL %q: %v", config.StartURL, err)
	}

	c.setState(sitesearch.CrawlStateCrawling)
	begin := time.Now()
	result := &Result{CrawlID: uuid.New().String()}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(sitesearch.CrawlTask{URL: seed, Depth: 0})

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = sitesearch.DefaultConcurrency
	}

	limit := rate.Limit(rate.Inf)
	if config.Delay > 0 {
		limit = rate.Every(config.Delay)
	}
	limiter := NewWorkerLimiter(limit)

	// Channels for worker coordination
	workCh := make(chan sitesearch.CrawlTask, concurrency)
	resultCh := make(chan crawlResult)

	// Start worker pool
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < concurrency; i++ {
		worker := i
		g.Go(func() error {
			for task := range workCh {
				res := c.processTask(gctx, worker, limiter, config, task)
				select {
				case resultCh <- res:
				case <-gctx.Done():
					return nil
				}
			}
			return nil
		})
	}

	// Close result channel when all workers are done
	go func() {
		_ = g.Wait()
		close(resultCh)
	}()

	// Coordinator loop. The session is done only when the frontier is
	// empty AND no task is in flight, not merely queue-empty at an
	// instant: an in-flight task may still enqueue more work.
	dispatched := 0
	pending := 0
	var next *sitesearch.CrawlTask

	if task, ok := frontier.Pop(); ok {
		next = &task
	}

coordinatorLoop:
	for {
		if next == nil && pending == 0 {
			break coordinatorLoop
		}
		if ctx.Err() != nil {
			break coordinatorLoop
		}
		if next != nil && c.MaxPages > 0 && dispatched >= c.MaxPages {
			next = nil
		}

		if next != nil {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case workCh <- *next:
				dispatched++
				pending++
				next = nil
			case res := <-resultCh:
				pending--
				c.handleResult(ctx, &res, frontier, config, result)
			}
		} else {
			// No more work to dispatch, just receive results
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case res, ok := <-resultCh:
				if !ok {
					break coordinatorLoop
				}
				pending--
				c.handleResult(ctx, &res, frontier, config, result)
			}
		}

		if next == nil && (c.MaxPages <= 0 || dispatched < c.MaxPages) {
			if task, ok := frontier.Pop(); ok {
				next = &task
			}
		}
	}

	// Signal workers to stop and drain remaining results
	close(workCh)

	timeout := time.After(drainTimeout)
drainLoop:
	for {
		select {
		case res, ok := <-resultCh:
			if !ok {
				break drainLoop
			}
			c.handleResult(ctx, &res, frontier, config, result)
		case <-timeout:
			break drainLoop
		}
	}

	result.Elapsed = time.Since(begin)

	if err := ctx.Err(); err != nil {
		c.setState(sitesearch.CrawlStateAborted)
		c.logger().Warn("crawl aborted",
			"start_url", config.StartURL,
			"pages", result.Pages,
			"failed", result.Failed,
			"elapsed", result.Elapsed,
			"err", err,
		)
		return result, err
	}

	c.setState(sitesearch.CrawlStateCompleted)
	c.logger().Info("crawl completed",
		"start_url", config.StartURL,
		"pages", result.Pages,
		"failed", result.Failed,
		"elapsed", result.Elapsed,
	)
	return result, nil
}

// processTask fetches and extracts a single task on a worker.
func (c *Crawler) processTask(ctx context.Context, worker int, limiter *WorkerLimiter, config sitesearch.CrawlConfig, task sitesearch.CrawlTask) crawlResult {
	res := crawlResult{task: task}

	// The frontier never enqueues past the limit; this guards the
	// invariant independently.
	if task.Depth > config.MaxDepth {
		res.err = sitesearch.Errorf(sitesearch.EINVALID, "task %s exceeds max depth %d", task.URL, config.MaxDepth)
		return res
	}

	if err := limiter.Wait(ctx, worker); err != nil {
		res.err = err
		return res
	}

	fetchFn := func(ctx context.Context, url string) (string, error) {
		fctx, cancel := context.WithTimeout(ctx, config.Timeout)
		defer cancel()
		return c.Fetcher.Fetch(fctx, url)
	}
	html, err := FetchWithRetryDelays(ctx, task.URL, fetchFn, nil, c.RetryDelays)
	if err != nil {
		res.err = err
		return res
	}

	extracted, err := c.Extractor.Extract(html, task.URL)
	if err != nil {
		res.err = err
		return res
	}

	res.title = extracted.Title
	res.text = extracted.Text
	res.links = extracted.Links
	res.images = extracted.Images
	return res
}

// handleResult stores a completed page and enqueues its in-domain links.
// It runs on the coordinator goroutine only.
func (c *Crawler) handleResult(ctx context.Context, res *crawlResult, frontier *Frontier, config sitesearch.CrawlConfig, result *Result) {
	if res.err != nil {
		result.Failed++
		result.Errors = append(result.Errors, res.err)
		c.logger().Warn("page skipped",
			"url", res.task.URL,
			"depth", res.task.Depth,
			"err", res.err,
		)
		return
	}

	page := &sitesearch.Page{
		URL:     res.task.URL,
		Title:   res.title,
		Text:    res.text,
		Depth:   res.task.Depth,
		Images:  res.images,
		CrawlID: result.CrawlID,
	}
	if err := c.Pages.CreatePage(ctx, page); err != nil {
		// A store failure is a crawl-level warning; in-flight workers
		// keep going.
		result.Failed++
		result.Errors = append(result.Errors, err)
		c.logger().Warn("page store failed", "url", page.URL, "err", err)
	} else {
		result.Pages++
	}

	if res.task.Depth+1 > config.MaxDepth {
		return
	}
	for _, link := range res.links {
		normalized, err := Normalize(link)
		if err != nil {
			continue
		}
		u, err := url.Parse(normalized)
		if err != nil || u.Host != config.AllowedHost {
			continue
		}
		frontier.Push(sitesearch.CrawlTask{URL: normalized, Depth: res.task.Depth + 1})
	}
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}
