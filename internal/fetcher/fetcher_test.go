package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledge-engine/textgap/internal/fetcher"
)

const page = `<html><head><title>Test Page</title><style>body { color: red }</style></head>
<body><h1>Hello</h1><script>var ignored = 1;</script>
<p>Gap   analysis
compares documents.</p><a href='/link1'>Link 1</a><a href="#top">Top</a></body></html>`

func newFetcher() *fetcher.Fetcher {
	return fetcher.NewFetcher(fetcher.Options{Timeout: 5 * time.Second, UserAgent: "textgap-test/1.0"})
}

func TestFetcher_FetchHTML(t *testing.T) {
	var gotAgent string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}))
	defer ts.Close()

	result, err := newFetcher().Fetch(context.Background(), ts.URL)
	require.NoError(t, err)

	assert.Equal(t, ts.URL, result.URL)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "Test Page", result.Title)
	assert.Equal(t, "Test Page Hello Gap analysis compares documents. Link 1 Top", result.Text)
	assert.Equal(t, []string{ts.URL + "/link1"}, result.Links)
	assert.Equal(t, "textgap-test/1.0", gotAgent)
}

func TestFetcher_FetchPlainText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("<b>not html</b> just text"))
	}))
	defer ts.Close()

	result, err := newFetcher().Fetch(context.Background(), ts.URL)
	require.NoError(t, err)

	assert.Equal(t, "<b>not html</b> just text", result.Text)
	assert.Empty(t, result.Title)
}

func TestFetcher_MaxBytes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(strings.Repeat("abcd", 100)))
	}))
	defer ts.Close()

	f := fetcher.NewFetcher(fetcher.Options{Timeout: 5 * time.Second, MaxBytes: 10})
	result, err := f.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)

	assert.Equal(t, "abcdabcdab", result.Text)
}

func TestFetcher_FetchNotFound(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	result, err := newFetcher().Fetch(context.Background(), ts.URL)

	assert.ErrorContains(t, err, "non-200")
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
}

func TestFetcher_InvalidURL(t *testing.T) {
	_, err := newFetcher().Fetch(context.Background(), "://bad")
	assert.Error(t, err)
}

func TestParseHTML_WithoutBaseURL(t *testing.T) {
	body := `<p>Relative <a href="/docs">docs</a> and <a href="https://example.com/x">abs</a></p>`

	result, err := fetcher.ParseHTML(strings.NewReader(body), "")
	require.NoError(t, err)

	assert.Equal(t, "Relative docs and abs", result.Text)
	assert.Equal(t, []string{"https://example.com/x"}, result.Links)
}
