// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pdiddy/research-agent/pkg/types"
)

func TestToCSLItemArticle(t *testing.T) {
	r := types.Record{
		ExternalID:    "38000001",
		Title:         "Deep learning for early cancer detection.",
		Source:        "Nat Med",
		PublishedDate: "2024 Mar 12",
		Authors:       []string{"Smith JA", "van der Berg K", "WHO"},
		Abstract:      "Early detection matters.",
	}

	item := toCSLItem(r, 0)

	if item.Type != "article-journal" {
		t.Errorf("Type = %q, want %q", item.Type, "article-journal")
	}
	if item.ID != "pmid:38000001" {
		t.Errorf("ID = %q, want %q", item.ID, "pmid:38000001")
	}
	if item.PMID != "38000001" {
		t.Errorf("PMID = %q, want %q", item.PMID, "38000001")
	}
	if item.ContainerTitle != "Nat Med" {
		t.Errorf("ContainerTitle = %q, want %q", item.ContainerTitle, "Nat Med")
	}
	if item.URL != "https://pubmed.ncbi.nlm.nih.gov/38000001/" {
		t.Errorf("URL = %q", item.URL)
	}
	if len(item.Author) != 3 {
		t.Fatalf("len(Author) = %d, want 3", len(item.Author))
	}
	if item.Author[0].Family != "Smith" || item.Author[0].Given != "JA" {
		t.Errorf("Author[0] = %+v, want Smith JA", item.Author[0])
	}
	if item.Author[1].Family != "van der Berg" || item.Author[1].Given != "K" {
		t.Errorf("Author[1] = %+v, want van der Berg K", item.Author[1])
	}
	if item.Author[2].Literal != "WHO" {
		t.Errorf("Author[2].Literal = %q, want %q", item.Author[2].Literal, "WHO")
	}
	if item.Issued == nil {
		t.Fatal("Issued is nil")
	}
	if got := item.Issued.DateParts[0]; len(got) != 3 || got[0] != 2024 || got[1] != 3 || got[2] != 12 {
		t.Errorf("DateParts = %v, want [2024 3 12]", got)
	}
}

func TestToCSLItemWebPage(t *testing.T) {
	r := types.Record{
		Title:  "France - Wikipedia",
		URL:    "https://en.wikipedia.org/wiki/France",
		Source: "en.wikipedia.org",
	}

	item := toCSLItem(r, 1)

	if item.Type != "webpage" {
		t.Errorf("Type = %q, want %q", item.Type, "webpage")
	}
	if item.ID != "web-2" {
		t.Errorf("ID = %q, want %q", item.ID, "web-2")
	}
	if item.URL != r.URL {
		t.Errorf("URL = %q, want %q", item.URL, r.URL)
	}
	if item.PMID != "" {
		t.Errorf("PMID should be empty for web results, got %q", item.PMID)
	}
	if item.Issued != nil {
		t.Errorf("Issued should be nil without a date, got %v", item.Issued)
	}
}

func TestParsePubDate(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"2024 Mar 12", []int{2024, 3, 12}},
		{"2023 Dec", []int{2023, 12}},
		{"2022", []int{2022}},
		{"2021 Sept", []int{2021, 9}},
		{"2020 Spring", []int{2020}},
		{"2019 Jan-Feb", []int{2019, 1}},
		{"", nil},
		{"Unknown", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := parsePubDate(tt.in)
			if tt.want == nil {
				if got != nil {
					t.Errorf("parsePubDate(%q) = %v, want nil", tt.in, got.DateParts)
				}
				return
			}
			if got == nil {
				t.Fatalf("parsePubDate(%q) = nil, want %v", tt.in, tt.want)
			}
			parts := got.DateParts[0]
			if len(parts) != len(tt.want) {
				t.Fatalf("parsePubDate(%q) = %v, want %v", tt.in, parts, tt.want)
			}
			for i := range parts {
				if parts[i] != tt.want[i] {
					t.Errorf("parsePubDate(%q) = %v, want %v", tt.in, parts, tt.want)
				}
			}
		})
	}
}

func TestFormatCSL(t *testing.T) {
	records := []types.Record{
		{ExternalID: "1", Title: "First", PublishedDate: "2024"},
		{Title: "Page", URL: "https://example.org"},
	}

	var buf bytes.Buffer
	if err := FormatCSL(records, &buf); err != nil {
		t.Fatalf("FormatCSL: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"pmid:1", "type: article-journal", "date-parts:", "type: webpage", "https://example.org"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
