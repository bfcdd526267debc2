package crawl

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// WorkerLimiter enforces a minimum interval between fetch starts on each
// worker using token buckets. Limits are per worker, not a global
// throttle: n workers may start up to n fetches per interval in
// aggregate, which bounds load while preserving fetch concurrency.
type WorkerLimiter struct {
	mu       sync.Mutex
	limiters map[int]*rate.Limiter
	limit    rate.Limit
}

// NewWorkerLimiter creates a WorkerLimiter with the given rate limit.
// Each worker gets its own limiter with a burst of 1 (no bursting).
// Use rate.Every(delay) to express a minimum delay between fetch starts,
// or rate.Inf for no limiting.
func NewWorkerLimiter(limit rate.Limit) *WorkerLimiter {
	return &WorkerLimiter{
		limiters: make(map[int]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the rate limit allows the given worker to start its
// next fetch. Returns an error if the context is canceled before the
// wait completes.
func (w *WorkerLimiter) Wait(ctx context.Context, worker int) error {
	w.mu.Lock()
	limiter, ok := w.limiters[worker]
	if !ok {
		limiter = rate.NewLimiter(w.limit, 1)
		w.limiters[worker] = limiter
	}
	w.mu.Unlock()

	return limiter.Wait(ctx)
}
