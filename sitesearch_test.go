package sitesearch_test

import (
	"testing"
	"time"

	"github.com/fwojciec/sitesearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := sitesearch.Errorf(sitesearch.ENOTFOUND, "page %q not found", "test")

	assert.Equal(t, sitesearch.ENOTFOUND, sitesearch.ErrorCode(err))
	assert.Equal(t, "page \"test\" not found", sitesearch.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitesearch.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitesearch.ErrorMessage(nil))
}

func TestCrawlConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("derives allowed host and applies timeout default", func(t *testing.T) {
		t.Parallel()

		cfg := sitesearch.CrawlConfig{StartURL: "https://Example.com/news", MaxDepth: 2}

		require.NoError(t, cfg.Validate())
		assert.Equal(t, "example.com", cfg.AllowedHost)
		assert.Equal(t, sitesearch.DefaultTimeout, cfg.Timeout)
	})

	t.Run("drops default port from derived host", func(t *testing.T) {
		t.Parallel()

		cfg := sitesearch.CrawlConfig{StartURL: "https://example.com:443/news"}

		require.NoError(t, cfg.Validate())
		assert.Equal(t, "example.com", cfg.AllowedHost)

		cfg = sitesearch.CrawlConfig{StartURL: "http://example.com:80/"}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "example.com", cfg.AllowedHost)
	})

	t.Run("keeps non-default port in derived host", func(t *testing.T) {
		t.Parallel()

		cfg := sitesearch.CrawlConfig{StartURL: "http://example.com:8080/"}

		require.NoError(t, cfg.Validate())
		assert.Equal(t, "example.com:8080", cfg.AllowedHost)
	})

	t.Run("rejects missing start URL", func(t *testing.T) {
		t.Parallel()

		cfg := sitesearch.CrawlConfig{}

		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
	})

	t.Run("rejects relative start URL", func(t *testing.T) {
		t.Parallel()

		cfg := sitesearch.CrawlConfig{StartURL: "/news/index.html"}

		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
	})

	t.Run("rejects non-http scheme", func(t *testing.T) {
		t.Parallel()

		cfg := sitesearch.CrawlConfig{StartURL: "ftp://example.com/files"}

		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
	})

	t.Run("rejects negative depth", func(t *testing.T) {
		t.Parallel()

		cfg := sitesearch.CrawlConfig{StartURL: "https://example.com", MaxDepth: -1}

		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
	})

	t.Run("rejects negative delay", func(t *testing.T) {
		t.Parallel()

		cfg := sitesearch.CrawlConfig{StartURL: "https://example.com", Delay: -time.Second}

		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
	})
}

func TestParseModel(t *testing.T) {
	t.Parallel()

	t.Run("accepts supported models", func(t *testing.T) {
		t.Parallel()

		for _, m := range sitesearch.Models() {
			parsed, err := sitesearch.ParseModel(string(m))
			require.NoError(t, err)
			assert.Equal(t, m, parsed)
		}
	})

	t.Run("empty name selects default", func(t *testing.T) {
		t.Parallel()

		m, err := sitesearch.ParseModel("")
		require.NoError(t, err)
		assert.Equal(t, sitesearch.DefaultModel, m)
	})

	t.Run("rejects unknown name", func(t *testing.T) {
		t.Parallel()

		_, err := sitesearch.ParseModel("llama9000")
		require.Error(t, err)
		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
	})
}

func TestFetchError_Error(t *testing.T) {
	t.Parallel()

	httpErr := &sitesearch.FetchError{
		URL:        "https://example.com/forbidden",
		Kind:       sitesearch.FetchHTTPError,
		StatusCode: 403,
	}
	assert.Contains(t, httpErr.Error(), "HTTP 403")

	timeoutErr := &sitesearch.FetchError{
		URL:  "https://example.com/slow",
		Kind: sitesearch.FetchTimeout,
	}
	assert.Contains(t, timeoutErr.Error(), "timeout")
}
