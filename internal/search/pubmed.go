// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/pdiddy/research-agent/internal/httputil"
	"github.com/pdiddy/research-agent/pkg/types"
)

// eutilsBase is the NCBI E-utilities root. Declared as a var so tests can
// substitute an httptest server.
var eutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

const (
	pubmedName = "search_pubmed"

	// NCBI allows 3 requests/s per caller, 10 with an API key.
	pubmedRate        = 3
	pubmedRateWithKey = 10

	defaultPubMedTool = "research-agent"
)

// PubMedAdapter searches PubMed through the NCBI E-utilities API. One search
// issues esearch (ranked PMIDs), esummary (metadata), and optionally efetch
// (abstracts).
type PubMedAdapter struct {
	Client  *http.Client
	Config  types.PubMedConfig
	limiter *rate.Limiter
}

// NewPubMedAdapter returns a PubMed adapter with a client bounded by
// cfg.Timeout and a limiter matching the NCBI request policy.
func NewPubMedAdapter(cfg types.PubMedConfig) *PubMedAdapter {
	limit := rate.Limit(pubmedRate)
	if cfg.APIKey != "" {
		limit = rate.Limit(pubmedRateWithKey)
	}
	if cfg.Tool == "" {
		cfg.Tool = defaultPubMedTool
	}
	return &PubMedAdapter{
		Client:  httputil.NewClient(cfg.HTTPConfig),
		Config:  cfg,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Name returns the tool name.
func (a *PubMedAdapter) Name() string { return pubmedName }

// Description returns the tool description shown to the model.
func (a *PubMedAdapter) Description() string {
	return "Search PubMed for biomedical and life-science literature. " +
		"Returns articles with title, journal, publication date, authors, and PMID, ordered by relevance."
}

// Search returns up to maxResults PubMed articles for query.
func (a *PubMedAdapter) Search(ctx context.Context, query string, maxResults int) ([]types.Record, error) {
	q, n, err := normalizeQuery(pubmedName, query, maxResults, a.Config.MaxResults)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(a.Config.Email) == "" {
		return nil, types.Errorf(types.KindUpstreamRejected, pubmedName,
			"a contact email is required by NCBI E-utilities (set EMAIL)")
	}

	ids, err := a.searchIDs(ctx, q, n)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []types.Record{}, nil
	}

	records, err := a.summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	if a.Config.IncludeAbstracts {
		abstracts, err := a.abstracts(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range records {
			records[i].Abstract = abstracts[records[i].ExternalID]
		}
	}

	return capRecords(records, n), nil
}

// searchIDs runs esearch and returns PMIDs in relevance order.
func (a *PubMedAdapter) searchIDs(ctx context.Context, query string, n int) ([]string, error) {
	params := a.baseParams()
	params.Set("term", query)
	params.Set("retmax", strconv.Itoa(n))
	params.Set("sort", "relevance")
	params.Set("retmode", "json")

	var out esearchResponse
	if err := a.getJSON(ctx, "esearch.fcgi", params, &out); err != nil {
		return nil, err
	}
	if msg := out.Result.Error; msg != "" {
		return nil, types.Errorf(types.KindUpstreamRejected, pubmedName, "esearch: %s", msg)
	}
	return out.Result.IDList, nil
}

// summaries runs esummary and returns one record per id, in the order of ids.
// Ids missing from the response are skipped.
func (a *PubMedAdapter) summaries(ctx context.Context, ids []string) ([]types.Record, error) {
	params := a.baseParams()
	params.Set("id", strings.Join(ids, ","))
	params.Set("retmode", "json")

	var out esummaryResponse
	if err := a.getJSON(ctx, "esummary.fcgi", params, &out); err != nil {
		return nil, err
	}

	records := make([]types.Record, 0, len(ids))
	for _, id := range ids {
		raw, ok := out.Result[id]
		if !ok {
			continue
		}
		var doc esummaryDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, types.Errorf(types.KindUpstreamUnavailable, pubmedName, "parsing esummary for %s: %w", id, err)
		}
		if doc.Error != "" {
			continue
		}
		records = append(records, doc.record(id))
	}
	return records, nil
}

// abstracts runs efetch and returns abstracts keyed by PMID.
func (a *PubMedAdapter) abstracts(ctx context.Context, ids []string) (map[string]string, error) {
	params := a.baseParams()
	params.Set("id", strings.Join(ids, ","))
	params.Set("retmode", "xml")
	params.Set("rettype", "abstract")

	resp, err := a.get(ctx, "efetch.fcgi", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var set efetchArticleSet
	if err := xml.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, types.Errorf(types.KindUpstreamUnavailable, pubmedName, "parsing efetch response: %w", err)
	}

	out := make(map[string]string, len(set.Articles))
	for _, art := range set.Articles {
		var parts []string
		for _, t := range art.Citation.Article.Abstract.Texts {
			text := strings.TrimSpace(t.Text)
			if text == "" {
				continue
			}
			if t.Label != "" {
				text = t.Label + ": " + text
			}
			parts = append(parts, text)
		}
		out[strings.TrimSpace(art.Citation.PMID)] = strings.Join(parts, "\n")
	}
	return out, nil
}

func (a *PubMedAdapter) baseParams() url.Values {
	params := url.Values{
		"db":    {"pubmed"},
		"email": {a.Config.Email},
		"tool":  {a.Config.Tool},
	}
	if a.Config.APIKey != "" {
		params.Set("api_key", a.Config.APIKey)
	}
	return params
}

func (a *PubMedAdapter) getJSON(ctx context.Context, endpoint string, params url.Values, v any) error {
	resp, err := a.get(ctx, endpoint, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return types.Errorf(types.KindUpstreamUnavailable, pubmedName, "parsing %s response: %w", endpoint, err)
	}
	return nil
}

// get waits for the limiter, sends the request with 429 retries, and
// classifies failures. The caller closes the body on success.
func (a *PubMedAdapter) get(ctx context.Context, endpoint string, params url.Values) (*http.Response, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, httputil.ClassifyTransport(pubmedName, err)
		}
	}

	reqURL := eutilsBase + "/" + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if a.Config.UserAgent != "" {
		req.Header.Set("User-Agent", a.Config.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, a.Client, req, 0)
	if err != nil {
		return nil, httputil.ClassifyTransport(pubmedName, err)
	}
	if err := httputil.ClassifyStatus(pubmedName, resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

// E-utilities JSON structures.
type esearchResponse struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	IDList []string `json:"idlist"`
	Error  string   `json:"ERROR"`
}

type esummaryResponse struct {
	// Result maps each PMID to its document; it also carries a "uids" key.
	Result map[string]json.RawMessage `json:"result"`
}

type esummaryDoc struct {
	UID             string           `json:"uid"`
	Title           string           `json:"title"`
	Source          string           `json:"source"`
	FullJournalName string           `json:"fulljournalname"`
	PubDate         string           `json:"pubdate"`
	EPubDate        string           `json:"epubdate"`
	Authors         []esummaryAuthor `json:"authors"`
	Error           string           `json:"error"`
}

type esummaryAuthor struct {
	Name string `json:"name"`
}

func (d esummaryDoc) record(id string) types.Record {
	r := types.Record{
		Title:         strings.TrimSpace(d.Title),
		Source:        strings.TrimSpace(d.Source),
		PublishedDate: strings.TrimSpace(d.PubDate),
		ExternalID:    d.UID,
	}
	if r.ExternalID == "" {
		r.ExternalID = id
	}
	if r.Source == "" {
		r.Source = strings.TrimSpace(d.FullJournalName)
	}
	if r.PublishedDate == "" {
		r.PublishedDate = strings.TrimSpace(d.EPubDate)
	}
	for _, au := range d.Authors {
		if au.Name != "" {
			r.Authors = append(r.Authors, au.Name)
		}
	}
	return r
}

// efetch PubmedArticleSet XML structures (only the fields we read).
type efetchArticleSet struct {
	Articles []efetchArticle `xml:"PubmedArticle"`
}

type efetchArticle struct {
	Citation struct {
		PMID    string `xml:"PMID"`
		Article struct {
			Abstract struct {
				Texts []efetchAbstractText `xml:"AbstractText"`
			} `xml:"Abstract"`
		} `xml:"Article"`
	} `xml:"MedlineCitation"`
}

type efetchAbstractText struct {
	Label string `xml:"Label,attr"`
	Text  string `xml:",chardata"`
}
