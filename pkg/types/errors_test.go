// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("running agent: %w", NewError(KindModelUnavailable, "model", errors.New("HTTP 503")))

	assert.ErrorIs(t, err, ErrModelUnavailable)
	assert.NotErrorIs(t, err, ErrAuthentication)
	assert.Equal(t, KindModelUnavailable, KindOf(err))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := NewError(KindUpstreamUnavailable, "pubmed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "pubmed: upstream unavailable: dial tcp: timeout", err.Error())
}

func TestErrorMessageRetryAfter(t *testing.T) {
	err := &Error{Kind: KindUpstreamRateLimited, Source: "pubmed", RetryAfter: 2 * time.Second}
	assert.Equal(t, "pubmed: rate limited, retry after 2s", err.Error())
}

func TestKindOfUnclassified(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
	assert.Equal(t, ErrorKind(""), KindOf(nil))
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), "boom"},
		{"empty query", ErrEmptyQuery, "Enter a query first."},
		{"unavailable", Errorf(KindModelUnavailable, "model", "HTTP %d", 503), "model: model unavailable: HTTP 503"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}

	auth := UserMessage(Errorf(KindAuthentication, "model", "missing API token"))
	assert.Contains(t, auth, "HUGGINGFACEHUB_API_TOKEN")
	assert.Contains(t, auth, "missing API token")
}

func TestRecordPlaceholders(t *testing.T) {
	var r Record
	assert.Equal(t, NoTitle, r.DisplayTitle())
	assert.Equal(t, UnknownSource, r.DisplaySource())
	assert.Equal(t, UnknownDate, r.DisplayDate())
	assert.False(t, r.HasExternalID())

	r = Record{Title: " CRISPR ", Source: "Nature", PublishedDate: "2024 Jan", ExternalID: "123"}
	assert.Equal(t, "CRISPR", r.DisplayTitle())
	assert.Equal(t, "Nature", r.DisplaySource())
	assert.Equal(t, "2024 Jan", r.DisplayDate())
	assert.True(t, r.HasExternalID())
}
