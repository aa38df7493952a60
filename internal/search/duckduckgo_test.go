// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-agent/pkg/types"
)

const duckDuckGoFixture = `<!DOCTYPE html>
<html><body>
<div class="results">
  <div class="result results_links results_links_deep result--ad">
    <a class="result__a" href="https://duckduckgo.com/y.js?ad_provider=x">Sponsored</a>
  </div>
  <div class="result results_links results_links_deep web-result">
    <h2 class="result__title">
      <a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.lemonde.fr%2Fpolitique%2Farticle.html&amp;rut=abc">France politics today</a>
    </h2>
    <a class="result__url" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.lemonde.fr%2F">www.lemonde.fr</a>
    <a class="result__snippet" href="#">Latest news on <b>France</b> and the   government.</a>
  </div>
  <div class="result results_links results_links_deep web-result">
    <h2 class="result__title">
      <a rel="nofollow" class="result__a" href="https://en.wikipedia.org/wiki/France">France - Wikipedia</a>
    </h2>
    <a class="result__snippet" href="#">France is a country in Western Europe.</a>
  </div>
  <div class="result results_links results_links_deep web-result">
    <h2 class="result__title">
      <a rel="nofollow" class="result__a" href="https://www.bbc.com/news/world/europe">Europe news</a>
    </h2>
    <a class="result__snippet" href="#">BBC Europe coverage.</a>
  </div>
  <div class="result result--no-result"><div class="no-results">No more results.</div></div>
</div>
</body></html>`

func withDuckDuckGo(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(handler)
	old := duckDuckGoBase
	duckDuckGoBase = ts.URL + "/html/"
	t.Cleanup(func() {
		duckDuckGoBase = old
		ts.Close()
	})
	return ts
}

func TestDuckDuckGoSearch(t *testing.T) {
	var gotQuery, gotRegion, gotUA string
	ts := withDuckDuckGo(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotRegion = r.URL.Query().Get("kl")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, duckDuckGoFixture)
	})

	a := &DuckDuckGoAdapter{Client: ts.Client(), Config: types.WebSearchConfig{Region: "fr-fr"}}
	records, err := a.Search(context.Background(), "What's happening in France?", 5)
	require.NoError(t, err)

	assert.Equal(t, "What's happening in France?", gotQuery)
	assert.Equal(t, "fr-fr", gotRegion)
	assert.Equal(t, defaultWebUserAgent, gotUA)

	require.Len(t, records, 3, "ads and the no-result row are skipped")
	assert.Equal(t, "France politics today", records[0].Title)
	assert.Equal(t, "https://www.lemonde.fr/politique/article.html", records[0].URL)
	assert.Equal(t, "lemonde.fr", records[0].Source)
	assert.Equal(t, "Latest news on **France** and the government.", records[0].Snippet)
	assert.Empty(t, records[0].ExternalID)

	assert.Equal(t, "en.wikipedia.org", records[1].Source)
	assert.Equal(t, "bbc.com", records[2].Source)
}

func TestDuckDuckGoSearchBounded(t *testing.T) {
	ts := withDuckDuckGo(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, duckDuckGoFixture)
	})

	a := &DuckDuckGoAdapter{Client: ts.Client()}
	records, err := a.Search(context.Background(), "france", 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestDuckDuckGoSearchNoResults(t *testing.T) {
	ts := withDuckDuckGo(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><div class="result result--no-result">No results.</div></body></html>`)
	})

	a := &DuckDuckGoAdapter{Client: ts.Client()}
	records, err := a.Search(context.Background(), "zzzxqv", 5)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestDuckDuckGoSearchErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"challenge page", http.StatusAccepted, types.ErrUpstreamRateLimited},
		{"rate limited", http.StatusTooManyRequests, types.ErrUpstreamRateLimited},
		{"forbidden", http.StatusForbidden, types.ErrUpstreamRejected},
		{"unavailable", http.StatusServiceUnavailable, types.ErrUpstreamUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := withDuckDuckGo(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})

			a := &DuckDuckGoAdapter{Client: ts.Client()}
			records, err := a.Search(context.Background(), "france", 5)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, records)
		})
	}
}

func TestDuckDuckGoSearchEmptyQuery(t *testing.T) {
	called := false
	ts := withDuckDuckGo(t, func(http.ResponseWriter, *http.Request) { called = true })

	a := &DuckDuckGoAdapter{Client: ts.Client()}
	_, err := a.Search(context.Background(), "   ", 5)
	assert.ErrorIs(t, err, types.ErrEmptyQuery)
	assert.False(t, called)
}

func TestResolveDuckDuckGoLink(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.org%2Fa%3Fb%3D1&rut=x", "https://example.org/a?b=1"},
		{"https://duckduckgo.com/l/?uddg=http%3A%2F%2Fexample.org", "http://example.org"},
		{"https://example.org/page", "https://example.org/page"},
		{"https://duckduckgo.com/y.js?ad_provider=x", ""},
		{"javascript:void(0)", ""},
		{"/html/?q=next", ""},
	}
	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveDuckDuckGoLink(tt.href))
		})
	}
}

func TestParseDuckDuckGoMissingLink(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div class="result"><span class="result__a">no href</span></div>`))
	require.NoError(t, err)
	assert.Empty(t, parseDuckDuckGo(doc, 5))
}
