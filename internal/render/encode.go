// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-agent/internal/search"
	"github.com/pdiddy/research-agent/pkg/types"
)

// Output formats accepted by Encode.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatMarkdown, FormatJSON, FormatYAML}

// reportView is the machine-readable form of a Report.
type reportView struct {
	Query   string        `json:"query" yaml:"query"`
	Variant types.Variant `json:"variant" yaml:"variant"`
	Answer  *types.Answer `json:"answer,omitempty" yaml:"answer,omitempty"`
	Error   *errorView    `json:"error,omitempty" yaml:"error,omitempty"`
	Listing *listingView  `json:"listing,omitempty" yaml:"listing,omitempty"`
}

type errorView struct {
	Kind    types.ErrorKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Message string          `json:"message" yaml:"message"`
}

type listingView struct {
	Records []recordView `json:"records" yaml:"records"`
	Error   *errorView   `json:"error,omitempty" yaml:"error,omitempty"`
}

type recordView struct {
	types.Record `yaml:",inline"`
	Links        []search.Link `json:"links,omitempty" yaml:"links,omitempty"`
}

func newErrorView(err error) *errorView {
	if err == nil {
		return nil
	}
	return &errorView{Kind: types.KindOf(err), Message: types.UserMessage(err)}
}

func newReportView(r Report) reportView {
	v := reportView{
		Query:   r.Query,
		Variant: r.Variant,
		Answer:  r.Answer,
		Error:   newErrorView(r.Err),
	}
	if r.ListingRequested && r.Err == nil {
		l := &listingView{Records: []recordView{}, Error: newErrorView(r.ListingErr)}
		for _, rec := range r.Records {
			l.Records = append(l.Records, recordView{Record: rec, Links: search.Links(rec)})
		}
		v.Listing = l
	}
	return v
}

// Encode writes r to w in the named format.
func Encode(w io.Writer, format string, r Report, opts Options) error {
	switch strings.ToLower(format) {
	case "", FormatMarkdown, "md":
		_, err := io.WriteString(w, Markdown(r, opts))
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newReportView(r))
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(newReportView(r))
	default:
		return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}
