// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for research-agent: search
// records, answers, configuration, and the error taxonomy every component
// reports through.
package types

import "strings"

// Placeholders shown when an upstream record omits a field.
const (
	NoTitle       = "No title"
	UnknownSource = "Unknown source"
	UnknownDate   = "Unknown date"
)

// Record is a single result returned by a search adapter. Records are
// immutable once produced and are discarded after rendering.
type Record struct {
	// Title is the article or page title. May be empty.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Source is the journal name for articles or the site for web results.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// PublishedDate is the publication date as the upstream reports it
	// (e.g. "2024 Mar 12"). Empty when unknown.
	PublishedDate string `json:"published_date,omitempty" yaml:"published_date,omitempty"`

	// ExternalID is the upstream identifier (a PMID for PubMed records).
	ExternalID string `json:"external_id,omitempty" yaml:"external_id,omitempty"`

	// URL is the result link for web records.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Snippet is a short Markdown excerpt for web records.
	Snippet string `json:"snippet,omitempty" yaml:"snippet,omitempty"`

	// Authors lists author names in upstream order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Abstract is the article abstract when it was requested.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`
}

// DisplayTitle returns the title or a placeholder.
func (r Record) DisplayTitle() string {
	if t := strings.TrimSpace(r.Title); t != "" {
		return t
	}
	return NoTitle
}

// DisplaySource returns the source or a placeholder.
func (r Record) DisplaySource() string {
	if s := strings.TrimSpace(r.Source); s != "" {
		return s
	}
	return UnknownSource
}

// DisplayDate returns the publication date or a placeholder.
func (r Record) DisplayDate() string {
	if d := strings.TrimSpace(r.PublishedDate); d != "" {
		return d
	}
	return UnknownDate
}

// HasExternalID reports whether derived links can be built for the record.
func (r Record) HasExternalID() bool {
	return strings.TrimSpace(r.ExternalID) != ""
}
