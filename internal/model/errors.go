// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package model

import (
	"context"
	"errors"
	"net/http"

	"github.com/cenkalti/backoff/v5"
	openai "github.com/sashabaranov/go-openai"

	"github.com/pdiddy/research-agent/pkg/types"
)

const source = "model"

// classify maps a go-openai error to the taxonomy and reports whether a
// retry could help.
func classify(err error) (*types.Error, bool) {
	if errors.Is(err, context.Canceled) {
		return types.NewError(types.KindModelUnavailable, source, err), false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return types.Errorf(types.KindModelUnavailable, source, "request timed out: %w", err), true
	}

	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return types.NewError(types.KindAuthentication, source, err), false
	case status == http.StatusTooManyRequests, status >= 500:
		return types.NewError(types.KindModelUnavailable, source, err), true
	case status >= 400:
		// Unknown model, bad parameters: the endpoint refused the request.
		return types.NewError(types.KindModelUnavailable, source, err), false
	default:
		// Transport failure with no HTTP status.
		return types.NewError(types.KindModelUnavailable, source, err), true
	}
}

// retryable wraps classify for backoff: non-retryable errors become permanent.
func retryable(err error) error {
	e, retry := classify(err)
	if !retry {
		return backoff.Permanent(e)
	}
	return e
}
