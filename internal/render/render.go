// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns answers, record listings, and errors into Markdown,
// terminal output, and machine-readable reports.
package render

import (
	"fmt"
	"strings"

	"github.com/pdiddy/research-agent/internal/search"
	"github.com/pdiddy/research-agent/pkg/types"
)

// NoArticles is shown in place of a listing when the adapter found nothing.
const NoArticles = "No PubMed articles found."

// Report is everything one run produced: the answer or error and, in the
// pubmed variant, the raw listing or its error.
type Report struct {
	Query   string
	Variant types.Variant
	Answer  *types.Answer
	Err     error

	// ListingRequested is set when a raw listing was part of the run, even if
	// it was skipped because the answer failed.
	ListingRequested bool
	Records          []types.Record
	ListingErr       error
}

// Options controls Markdown rendering.
type Options struct {
	ShowToolCalls bool
}

// Listing renders records as numbered Markdown sections. Zero records yields
// the explicit no-results notice, which is distinct from an error banner.
func Listing(records []types.Record) string {
	if len(records) == 0 {
		return "> " + NoArticles + "\n"
	}

	var b strings.Builder
	for i, r := range records {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, r.DisplayTitle())
		fmt.Fprintf(&b, "- Published: %s\n", r.DisplayDate())
		fmt.Fprintf(&b, "- Journal: *%s*\n", r.DisplaySource())
		for _, l := range search.Links(r) {
			fmt.Fprintf(&b, "- [%s](%s)\n", l.Label, l.URL)
		}
		b.WriteString("\n---\n\n")
	}
	return b.String()
}

// AnswerHeading returns the section title for a variant's answer.
func AnswerHeading(v types.Variant) string {
	if v == types.VariantPubMed {
		return "Summary (LLM + PubMed)"
	}
	return "Final Answer"
}

// AnswerMarkdown renders the answer body, the partial notice, and optionally
// the tool-call log.
func AnswerMarkdown(v types.Variant, a types.Answer, opts Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", AnswerHeading(v))

	content := strings.TrimSpace(a.Content)
	if content == "" {
		content = "_The model returned an empty answer._"
	}
	b.WriteString(content)
	b.WriteString("\n")

	if a.Partial {
		b.WriteString("\n> The tool-call limit was reached before the model finished; this answer may be incomplete.\n")
	}

	if opts.ShowToolCalls && len(a.ToolCalls) > 0 {
		b.WriteString("\n**Tool calls**\n\n")
		for _, c := range a.ToolCalls {
			if c.Error != "" {
				fmt.Fprintf(&b, "- `%s(%s)`: %s\n", c.Name, c.Arguments, c.Error)
				continue
			}
			fmt.Fprintf(&b, "- `%s(%s)`: %d results\n", c.Name, c.Arguments, c.Results)
		}
	}
	return b.String()
}

// ErrorBanner renders err as a one-line user-visible message.
func ErrorBanner(err error) string {
	if err == nil {
		return ""
	}
	return "Error: " + types.UserMessage(err)
}

// Markdown renders a full report.
func Markdown(r Report, opts Options) string {
	if r.Err != nil {
		return "**" + ErrorBanner(r.Err) + "**\n"
	}

	var b strings.Builder
	if r.Answer != nil {
		b.WriteString(AnswerMarkdown(r.Variant, *r.Answer, opts))
	}

	if r.ListingRequested {
		b.WriteString("\n---\n\n## Raw PubMed Articles\n\n")
		if r.ListingErr != nil {
			b.WriteString("**" + ErrorBanner(r.ListingErr) + "**\n")
		} else {
			b.WriteString(Listing(r.Records))
		}
	}
	return b.String()
}
