// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"strings"

	"github.com/pdiddy/research-agent/pkg/types"
)

// Link is a display-only link derived from a record's external identifier.
// Derived links are not checked to resolve.
type Link struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// PubMedURL returns the canonical PubMed detail page for a PMID.
func PubMedURL(id string) string {
	return "https://pubmed.ncbi.nlm.nih.gov/" + strings.TrimSpace(id) + "/"
}

// FullTextURL returns a best-effort PubMed Central PDF link templated on the
// same identifier. PMC ids differ from PMIDs, so this often does not resolve.
func FullTextURL(id string) string {
	return "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC" + strings.TrimSpace(id) + "/pdf/"
}

// Links returns exactly two derived links when the record has an external
// identifier and none otherwise.
func Links(r types.Record) []Link {
	if !r.HasExternalID() {
		return nil
	}
	return []Link{
		{Label: "View on PubMed", URL: PubMedURL(r.ExternalID)},
		{Label: "Try PDF (PMC)", URL: FullTextURL(r.ExternalID)},
	}
}
