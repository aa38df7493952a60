// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search wraps external data sources (PubMed, DuckDuckGo) behind a
// uniform adapter contract: given a query and a result bound, return an
// ordered, finite list of records.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/research-agent/pkg/types"
)

// DefaultMaxResults is used when a caller passes a non-positive bound.
const DefaultMaxResults = 5

// Adapter searches a single external source. Implementations never mutate
// shared state; each call is independent of the previous one.
//
// Search returns records in the upstream's relevance order with
// len(records) <= maxResults. Zero matches is an empty slice and a nil error.
// Failures are *types.Error values of kind UpstreamUnavailable,
// UpstreamRateLimited, UpstreamRejected, or EmptyQuery.
type Adapter interface {
	Name() string
	Description() string
	Search(ctx context.Context, query string, maxResults int) ([]types.Record, error)
}

// normalizeQuery trims the query and resolves the result bound. limit is the
// configured per-call maximum: it fills in a missing bound and caps a larger
// one. A blank query is rejected before any network call.
func normalizeQuery(source, query string, maxResults, limit int) (string, int, error) {
	q := strings.Join(strings.Fields(query), " ")
	if q == "" {
		return "", 0, types.Errorf(types.KindEmptyQuery, source, "no search terms")
	}
	if maxResults <= 0 || (limit > 0 && maxResults > limit) {
		maxResults = limit
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return q, maxResults, nil
}

// capRecords truncates records to at most n entries, preserving order.
func capRecords(records []types.Record, n int) []types.Record {
	if n >= 0 && len(records) > n {
		return records[:n]
	}
	return records
}

// Find returns the adapter with the given name.
func Find(adapters []Adapter, name string) (Adapter, bool) {
	for _, a := range adapters {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

// FormatTable writes records as a human-readable table to w.
func FormatTable(records []types.Record, w io.Writer) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-30s  %-12s  %s\n",
		"Rank", "Title", "Source", "Date", "ID/URL")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, r := range records {
		ref := r.ExternalID
		if ref == "" {
			ref = r.URL
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-30s  %-12s  %s\n",
			i+1, truncate(r.DisplayTitle(), 60), truncate(r.DisplaySource(), 30),
			truncate(r.DisplayDate(), 12), ref)
	}

	fmt.Fprintf(w, "\n%d results\n", len(records))
}

// FormatJSON writes records as indented JSON to w.
func FormatJSON(records []types.Record, w io.Writer) error {
	if records == nil {
		records = []types.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
