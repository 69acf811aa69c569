package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Dana | Portfolio</title><style>body { color: red; }</style></head>
<body>
  <nav><a href="/">Home</a><a href="/about">About</a></nav>
  <h1>Dana Rivera</h1>
  <p>Backend engineer with   8 years of experience.</p>
  <script>console.log("tracking");</script>
  <div>
    <h2>Projects</h2>
    <p>Built a payments platform in Go.</p>
  </div>
  <footer>© 2026 Dana</footer>
</body>
</html>`

func TestExtractText(t *testing.T) {
	text, err := ExtractText(samplePage)
	require.NoError(t, err)

	assert.Contains(t, text, "Dana Rivera")
	assert.Contains(t, text, "Backend engineer with 8 years of experience.")
	assert.Contains(t, text, "Built a payments platform in Go.")

	assert.NotContains(t, text, "console.log")
	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "About")
	assert.NotContains(t, text, "© 2026")
}

func TestExtractText_PlainText(t *testing.T) {
	text, err := ExtractText("just a resume as plain text")
	require.NoError(t, err)
	assert.Equal(t, "just a resume as plain text", text)
}

func TestHTTPFetcher_FetchText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	f := NewHTTPFetcher()
	text, err := f.FetchText(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "Dana Rivera")
}

func TestHTTPFetcher_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTPFetcher()
	_, err := f.FetchText(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestHTTPFetcher_InvalidURL(t *testing.T) {
	f := NewHTTPFetcher()
	_, err := f.FetchText(context.Background(), "http://127.0.0.1:1")
	assert.Error(t, err)
}
