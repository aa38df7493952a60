// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"strings"

	"github.com/pdiddy/research-agent/internal/render"
	"github.com/pdiddy/research-agent/internal/search"
	"github.com/pdiddy/research-agent/pkg/types"
)

// Session is what the presentation layer calls for one user submission:
// the agent run and, when Listing is set, a second direct adapter search
// for the raw listing. Errors end up in the report, never in a panic.
type Session struct {
	Agent   *Agent
	Variant types.Variant

	// Listing is queried directly after a successful agent run. Nil
	// disables the raw listing.
	Listing     search.Adapter
	ListingSize int
}

// Run executes one submission. A blank query yields an EmptyQuery report
// without any network call. When the agent fails the listing is skipped.
func (s *Session) Run(ctx context.Context, query string) render.Report {
	query = strings.TrimSpace(query)
	r := render.Report{
		Query:            query,
		Variant:          s.Variant,
		ListingRequested: s.Listing != nil,
	}

	answer, err := s.Agent.Run(ctx, query)
	if err != nil {
		r.Err = err
		return r
	}
	r.Answer = &answer

	if s.Listing != nil {
		size := s.ListingSize
		if size <= 0 {
			size = search.DefaultMaxResults
		}
		records, err := s.Listing.Search(ctx, query, size)
		if err != nil {
			s.Agent.logger.Warn("listing failed", "agent", s.Agent.name, "tool", s.Listing.Name(), "error", err)
			r.ListingErr = err
		} else {
			r.Records = records
		}
	}
	return r
}
