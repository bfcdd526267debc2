package crawl_test

import (
	"net/url"
	"testing"

	"github.com/fwojciec/sitesearch/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "lowercases scheme and host",
			in:   "HTTPS://Example.COM/News",
			want: "https://example.com/News",
		},
		{
			name: "removes default port",
			in:   "https://example.com:443/page",
			want: "https://example.com/page",
		},
		{
			name: "strips fragment",
			in:   "https://example.com/page#section-2",
			want: "https://example.com/page",
		},
		{
			name: "collapses duplicate slashes",
			in:   "https://example.com//news///today",
			want: "https://example.com/news/today",
		},
		{
			name: "resolves dot segments",
			in:   "https://example.com/a/b/../c",
			want: "https://example.com/a/c",
		},
		{
			name: "sorts query parameters",
			in:   "https://example.com/search?b=2&a=1",
			want: "https://example.com/search?a=1&b=2",
		},
		{
			name: "preserves trailing slash",
			in:   "https://example.com/news/",
			want: "https://example.com/news/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := crawl.Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_rejects_non_http_schemes(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"ftp://example.com/file",
		"mailto:hello@example.com",
		"javascript:void(0)",
	} {
		_, err := crawl.Normalize(in)
		assert.Error(t, err, "expected error for %q", in)
	}
}

func TestResolveReference(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://example.com/news/today/index.html")
	require.NoError(t, err)

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{
			name: "relative path",
			ref:  "article.html",
			want: "https://example.com/news/today/article.html",
		},
		{
			name: "absolute path",
			ref:  "/about",
			want: "https://example.com/about",
		},
		{
			name: "parent directory",
			ref:  "../archive",
			want: "https://example.com/news/archive",
		},
		{
			name: "already absolute",
			ref:  "https://example.com/contact",
			want: "https://example.com/contact",
		},
		{
			name: "fragment-only resolves to base without fragment",
			ref:  "#top",
			want: "https://example.com/news/today/index.html",
		},
		{
			name: "surrounding whitespace trimmed",
			ref:  "  /about  ",
			want: "https://example.com/about",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := crawl.ResolveReference(base, tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
