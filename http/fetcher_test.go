package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/sitesearch"
	sshttp "github.com/fwojciec/sitesearch/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch_returns_body(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>hello</html>"))
	}))
	defer srv.Close()

	f := sshttp.NewFetcher()
	defer f.Close()

	body, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "<html>hello</html>", body)
}

func TestFetcher_Fetch_sends_user_agent(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	f := sshttp.NewFetcher(sshttp.WithUserAgent("custom-agent/2.0"))
	defer f.Close()

	_, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "custom-agent/2.0", gotUA)
}

func TestFetcher_Fetch_classifies_http_errors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	f := sshttp.NewFetcher()
	defer f.Close()

	_, err := f.Fetch(context.Background(), srv.URL)

	var fetchErr *sitesearch.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, sitesearch.FetchHTTPError, fetchErr.Kind)
	assert.Equal(t, http.StatusForbidden, fetchErr.StatusCode)
	assert.Equal(t, srv.URL, fetchErr.URL)
}

func TestFetcher_Fetch_classifies_timeouts(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	f := sshttp.NewFetcher()
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.Fetch(ctx, srv.URL)

	var fetchErr *sitesearch.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, sitesearch.FetchTimeout, fetchErr.Kind)
}

func TestFetcher_Fetch_classifies_connection_refused(t *testing.T) {
	t.Parallel()

	// Bind a listener and close it so the port is known-refusing.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	f := sshttp.NewFetcher()
	defer f.Close()

	_, err := f.Fetch(context.Background(), url)

	var fetchErr *sitesearch.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, sitesearch.FetchConnRefused, fetchErr.Kind)
}

func TestFetcher_Fetch_rejects_malformed_URL(t *testing.T) {
	t.Parallel()

	f := sshttp.NewFetcher()
	defer f.Close()

	_, err := f.Fetch(context.Background(), "http://\x00bad")

	var fetchErr *sitesearch.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, sitesearch.FetchOther, fetchErr.Kind)
}
