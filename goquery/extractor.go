// Package goquery provides a goquery-based implementation of
// sitesearch.Extractor.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitesearch"
	"golang.org/x/net/html"
)

// Ensure Extractor implements sitesearch.Extractor at compile time.
var _ sitesearch.Extractor = (*Extractor)(nil)

// Extractor extracts visible text, title, links, and image references
// from HTML. The underlying parser is lenient: malformed markup yields
// best-effort partial results rather than an error.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML, resolving anchor and image references
// against baseURL. A <base href> element in the document overrides
// baseURL for resolution.
func (e *Extractor) Extract(rawHTML string, baseURL string) (*sitesearch.ExtractResult, error) {
	if rawHTML == "" {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "invalid base URL: %v", err)
	}
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if resolved, err := base.Parse(strings.TrimSpace(href)); err == nil {
			base = resolved
		}
	}

	result := &sitesearch.ExtractResult{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if resolved := resolve(base, href); resolved != "" {
			result.Links = append(result.Links, resolved)
		}
	})

	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		if resolved := resolve(base, src); resolved != "" {
			result.Images = append(result.Images, resolved)
		}
	})

	var sb strings.Builder
	for _, root := range doc.Nodes {
		collectText(root, &sb)
	}
	result.Text = strings.Join(strings.Fields(sb.String()), " ")

	return result, nil
}

// resolve makes ref absolute against base. Non-http(s) results (mailto,
// javascript, etc.) resolve to the empty string.
func resolve(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(u)
	scheme := strings.ToLower(abs.Scheme)
	if scheme != "http" && scheme != "https" {
		return ""
	}
	return abs.String()
}

// collectText appends the text nodes under n, skipping elements that
// never contribute visible text. Comment nodes are not text nodes and
// are skipped implicitly.
func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "iframe", "svg", "template":
			return
		}
	}

	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteString(" ")
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
