package sitesearch

// TaskFrontier manages a crawl queue with deduplication.
// The visited set and the pending queue live behind one handle so that
// membership check and insert are a single atomic step.
type TaskFrontier interface {
	// Push adds a task to the frontier.
	// Returns false if the URL has already been seen.
	Push(task CrawlTask) bool

	// Pop returns the next task, shallowest depth first.
	// Returns false if the frontier is empty.
	Pop() (CrawlTask, bool)

	// Len returns the number of pending tasks.
	Len() int

	// Seen returns true if the URL has been scheduled or completed.
	Seen(url string) bool
}
