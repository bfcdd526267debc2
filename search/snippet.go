package search

// Snippet window sizes in bytes, measured from the match boundaries.
const (
	snippetBefore = 50
	snippetAfter  = 100
)

// Snippet extracts a context window around a match in text. The window
// spans snippetBefore bytes before the match start and snippetAfter bytes
// after the match end. An ellipsis marks each side that was truncated;
// a window that reaches the start or end of the text gets none on that
// side.
func Snippet(text string, offset, matchLen int) string {
	if text == "" {
		return ""
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}

	start := offset - snippetBefore
	if start < 0 {
		start = 0
	}
	end := offset + matchLen + snippetAfter
	if end > len(text) {
		end = len(text)
	}

	out := text[start:end]
	if start > 0 {
		out = "..." + out
	}
	if end < len(text) {
		out = out + "..."
	}
	return out
}
