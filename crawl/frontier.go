package crawl

import (
	"container/heap"
	"strings"
	"sync"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/bloom"
)

// Compile-time interface verification.
var _ sitesearch.TaskFrontier = (*Frontier)(nil)

// Frontier is an in-memory crawl frontier combining the pending queue and
// the visited set behind one lock, so membership check and insert are a
// single atomic step. Tasks are ordered shallowest depth first, insertion
// order within a depth, which makes the crawl proceed level-wise.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue *taskHeap
	seq   uint64
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &taskHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.NewFilter(n, fpRate),
		queue: h,
	}
}

// Push adds a task to the frontier.
// Returns false if the URL has already been seen.
// URL fragments are stripped before deduplication - URLs differing only by
// fragment are considered duplicates.
func (f *Frontier) Push(task sitesearch.CrawlTask) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Strip fragment from URL for deduplication
	url := task.URL
	if idx := strings.Index(url, "#"); idx != -1 {
		url = url[:idx]
	}

	if f.seen.TestAndAdd(url) {
		return false
	}

	// Store the URL without fragment
	task.URL = url
	f.seq++
	heap.Push(f.queue, frontierItem{task: task, seq: f.seq})
	return true
}

// Pop returns the next task, shallowest depth first.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (sitesearch.CrawlTask, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return sitesearch.CrawlTask{}, false
	}
	item, _ := heap.Pop(f.queue).(frontierItem)
	return item.task, true
}

// Len returns the number of pending tasks.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if the URL has been scheduled or completed.
// URL fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := rawURL
	if idx := strings.Index(url, "#"); idx != -1 {
		url = url[:idx]
	}
	return f.seen.Test(url)
}

// frontierItem carries an insertion sequence number so tasks at the same
// depth pop in FIFO order.
type frontierItem struct {
	task sitesearch.CrawlTask
	seq  uint64
}

// taskHeap implements heap.Interface for the CrawlTask queue.
// Shallower tasks are popped first.
type taskHeap []frontierItem

func (h taskHeap) Len() int { return len(h) }

// Less orders by depth ascending, then insertion order.
func (h taskHeap) Less(i, j int) bool {
	if h[i].task.Depth != h[j].task.Depth {
		return h[i].task.Depth < h[j].task.Depth
	}
	return h[i].seq < h[j].seq
}

func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x any) {
	item, _ := x.(frontierItem)
	*h = append(*h, item)
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
