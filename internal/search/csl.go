// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-agent/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Author         []CSLName `yaml:"author,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	PMID           string    `yaml:"PMID,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes records as a CSL-YAML list to w.
func FormatCSL(records []types.Record, w io.Writer) error {
	items := make([]CSLItem, len(records))
	for i, r := range records {
		items[i] = toCSLItem(r, i)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a Record to a CSLItem. Records with a PMID become
// journal articles; the rest are web pages.
func toCSLItem(r types.Record, idx int) CSLItem {
	item := CSLItem{
		Title:    r.Title,
		Abstract: r.Abstract,
		URL:      r.URL,
	}

	if r.HasExternalID() {
		item.ID = "pmid:" + r.ExternalID
		item.Type = "article-journal"
		item.PMID = r.ExternalID
		item.ContainerTitle = r.Source
		if item.URL == "" {
			item.URL = PubMedURL(r.ExternalID)
		}
	} else {
		item.ID = "web-" + strconv.Itoa(idx+1)
		item.Type = "webpage"
		item.ContainerTitle = r.Source
	}

	for _, a := range r.Authors {
		item.Author = append(item.Author, parseAuthorName(a))
	}
	item.Issued = parsePubDate(r.PublishedDate)

	return item
}

// parseAuthorName splits a PubMed-style name ("Smith JA") into CSL
// family/given parts on the last space. Single-token names (often
// collective authors) use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Family: name[:idx],
		Given:  name[idx+1:],
	}
}

var monthAbbrev = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// parsePubDate reads PubMed dates such as "2024 Mar 12", "2023 Dec", or
// "2022". Season and range suffixes are ignored. Returns nil when no year
// is found.
func parsePubDate(s string) *CSLDate {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	year, err := strconv.Atoi(fields[0])
	if err != nil || year < 1000 {
		return nil
	}
	parts := []int{year}
	if len(fields) > 1 {
		mon := strings.ToLower(strings.TrimSuffix(fields[1], "."))
		if len(mon) > 3 {
			mon = mon[:3]
		}
		if m, ok := monthAbbrev[mon]; ok {
			parts = append(parts, m)
			if len(fields) > 2 {
				if d, err := strconv.Atoi(fields[2]); err == nil && d >= 1 && d <= 31 {
					parts = append(parts, d)
				}
			}
		}
	}
	return &CSLDate{DateParts: [][]int{parts}}
}
