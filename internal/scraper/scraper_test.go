package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsmon/internal/news"
)

const samplePage = `<html><body>
<nav><p>Subscribe to our newsletter today!</p></nav>
<article>
<p>The Kasigau corridor project announced a new phase of community funding this week.</p>
<p>Local partners said the expansion covers an additional thirty thousand hectares.</p>
<p>Verification of the new carbon credits is expected before the end of the year.</p>
</article>
</body></html>`

func TestExtractBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	body, err := ExtractBody(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Contains(t, body, "Kasigau corridor project")
	assert.Contains(t, body, "thirty thousand hectares")
	assert.NotContains(t, body, "newsletter")
}

func TestExtractBody_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := ExtractBody(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestEnrich_OnlyThinBodies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	fullBody := make([]byte, 300)
	for i := range fullBody {
		fullBody[i] = 'a'
	}
	articles := []news.Article{
		{URL: srv.URL, Body: "short"},
		{URL: srv.URL, Body: string(fullBody)},
	}

	enriched := Enrich(context.Background(), articles, 200, 5)

	assert.Equal(t, 1, enriched)
	assert.Contains(t, articles[0].Body, "Kasigau")
	assert.Equal(t, string(fullBody), articles[1].Body)
}

func TestEnrich_RespectsFetchCap(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	articles := []news.Article{
		{URL: srv.URL, Body: "a"},
		{URL: srv.URL, Body: "b"},
		{URL: srv.URL, Body: "c"},
	}

	Enrich(context.Background(), articles, 200, 2)

	assert.Equal(t, 2, calls)
}
