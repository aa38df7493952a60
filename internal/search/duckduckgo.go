// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/research-agent/internal/httputil"
	"github.com/pdiddy/research-agent/pkg/types"
)

// duckDuckGoBase is the DuckDuckGo HTML endpoint. Declared as a var so tests
// can substitute an httptest server.
var duckDuckGoBase = "https://html.duckduckgo.com/html/"

const (
	webName = "web_search"

	defaultWebUserAgent = "Mozilla/5.0 (compatible; research-agent/0.1)"
)

// DuckDuckGoAdapter runs general web searches against the DuckDuckGo HTML
// endpoint and parses the result page.
type DuckDuckGoAdapter struct {
	Client *http.Client
	Config types.WebSearchConfig
}

// NewDuckDuckGoAdapter returns a web search adapter with a client bounded by
// cfg.Timeout.
func NewDuckDuckGoAdapter(cfg types.WebSearchConfig) *DuckDuckGoAdapter {
	return &DuckDuckGoAdapter{
		Client: httputil.NewClient(cfg.HTTPConfig),
		Config: cfg,
	}
}

// Name returns the tool name.
func (a *DuckDuckGoAdapter) Name() string { return webName }

// Description returns the tool description shown to the model.
func (a *DuckDuckGoAdapter) Description() string {
	return "Search the web with DuckDuckGo for general knowledge, news, and current events. " +
		"Returns page titles, URLs, and short snippets."
}

// Search returns up to maxResults organic web results for query. Ads are skipped.
func (a *DuckDuckGoAdapter) Search(ctx context.Context, query string, maxResults int) ([]types.Record, error) {
	q, n, err := normalizeQuery(webName, query, maxResults, a.Config.MaxResults)
	if err != nil {
		return nil, err
	}

	params := url.Values{"q": {q}}
	if a.Config.Region != "" {
		params.Set("kl", a.Config.Region)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, duckDuckGoBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	ua := a.Config.UserAgent
	if ua == "" {
		ua = defaultWebUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html")

	resp, err := httputil.DoWithRetry(ctx, a.Client, req, 0)
	if err != nil {
		return nil, httputil.ClassifyTransport(webName, err)
	}
	defer resp.Body.Close()

	// DuckDuckGo answers 202 with a challenge page when it throttles a caller.
	if resp.StatusCode == http.StatusAccepted {
		return nil, types.Errorf(types.KindUpstreamRateLimited, webName, "HTTP 202 challenge page")
	}
	if err := httputil.ClassifyStatus(webName, resp); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, types.Errorf(types.KindUpstreamUnavailable, webName, "parsing result page: %w", err)
	}
	return parseDuckDuckGo(doc, n), nil
}

// parseDuckDuckGo extracts up to n organic results from a result page.
func parseDuckDuckGo(doc *goquery.Document, n int) []types.Record {
	records := []types.Record{}
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(records) >= n {
			return false
		}
		if s.HasClass("result--ad") || s.HasClass("result--no-result") {
			return true
		}

		link := s.Find("a.result__a").First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}
		target := resolveDuckDuckGoLink(href)
		if target == "" {
			return true
		}

		r := types.Record{
			Title:   strings.TrimSpace(link.Text()),
			URL:     target,
			Source:  hostOf(target),
			Snippet: snippetMarkdown(s.Find(".result__snippet").First()),
		}
		if r.Source == "" {
			r.Source = strings.TrimSpace(s.Find(".result__url").First().Text())
		}
		records = append(records, r)
		return true
	})
	return records
}

// resolveDuckDuckGoLink unwraps DuckDuckGo redirect links
// (//duckduckgo.com/l/?uddg=<target>) and returns an absolute URL, or "" for
// internal links.
func resolveDuckDuckGoLink(href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if strings.HasSuffix(u.Host, "duckduckgo.com") {
		if target := u.Query().Get("uddg"); target != "" {
			return target
		}
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// snippetMarkdown converts the snippet's inner HTML (which bolds matched
// terms) to a single line of Markdown. It falls back to plain text.
func snippetMarkdown(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	html, err := s.Html()
	if err != nil {
		return strings.TrimSpace(s.Text())
	}
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return strings.TrimSpace(s.Text())
	}
	return strings.Join(strings.Fields(md), " ")
}
