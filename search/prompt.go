package search

import (
	"fmt"
	"strings"

	"github.com/fwojciec/sitesearch"
)

// BuildIntentPrompt builds the prompt that asks the model to reduce a
// natural language question to search terms.
func BuildIntentPrompt(question string) string {
	var sb strings.Builder
	sb.WriteString("Analyze the following search query and extract key search terms that capture its intent.\n\n")
	fmt.Fprintf(&sb, "Query: %s\n\n", question)
	sb.WriteString("Respond with a comma-separated list of search terms only, no explanation.")
	return sb.String()
}

// ParseTerms extracts search terms from a model response. Terms are
// separated by commas or newlines; surrounding whitespace, quotes, and
// list markers are stripped. Duplicates are removed case-insensitively.
func ParseTerms(response string) []string {
	fields := strings.FieldsFunc(response, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	seen := make(map[string]bool)
	var terms []string
	for _, f := range fields {
		term := strings.TrimLeft(strings.TrimSpace(f), "-*• \t")
		term = strings.Trim(strings.TrimSpace(term), `"'`)
		if term == "" {
			continue
		}
		key := strings.ToLower(term)
		if seen[key] {
			continue
		}
		seen[key] = true
		terms = append(terms, term)
	}
	return terms
}

// BuildAnswerPrompt builds the synthesis prompt containing the ranked
// source snippets and the user's question.
func BuildAnswerPrompt(question string, results []sitesearch.SearchResult) string {
	var sb strings.Builder
	sb.WriteString("<sources>\n")
	for i, r := range results {
		title := r.Title
		if title == "" {
			title = r.URL
		}
		sb.WriteString("<source>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<title>%s</title>\n", title)
		fmt.Fprintf(&sb, "<url>%s</url>\n", r.URL)
		fmt.Fprintf(&sb, "<snippet>%s</snippet>\n", r.Snippet)
		sb.WriteString("</source>\n")
	}
	sb.WriteString("</sources>\n\n")
	fmt.Fprintf(&sb, "Question: %s\n\n", question)
	sb.WriteString("Answer the question using only the sources above. Cite the URLs of the sources you used. If the sources do not contain the answer, say so.")
	return sb.String()
}
