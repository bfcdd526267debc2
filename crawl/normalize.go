package crawl

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/purell"
)

// normalizeFlags defines the URL identity key: scheme+host+path+query with
// lowercased scheme and host, default ports and fragments removed, dot
// segments resolved, and query parameters sorted. Trailing slashes are
// preserved; the rule only has to be applied consistently so one logical
// page never yields two visited-set entries.
const normalizeFlags = purell.FlagLowercaseScheme |
	purell.FlagLowercaseHost |
	purell.FlagRemoveDefaultPort |
	purell.FlagRemoveFragment |
	purell.FlagDecodeUnnecessaryEscapes |
	purell.FlagSortQuery |
	purell.FlagRemoveDuplicateSlashes |
	purell.FlagRemoveDotSegments

// Normalize canonicalizes an absolute URL to its identity key.
// Only http and https URLs are accepted.
func Normalize(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", err
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return purell.NormalizeURL(u, normalizeFlags), nil
}

// ResolveReference resolves ref against base and normalizes the result.
func ResolveReference(base *url.URL, ref string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", err
	}
	return Normalize(base.ResolveReference(u).String())
}
