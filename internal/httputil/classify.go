// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/research-agent/pkg/types"
)

// NewClient returns an HTTP client bounded by cfg.Timeout. A zero timeout
// falls back to 30 s so a stuck upstream cannot hang a run.
func NewClient(cfg types.HTTPConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// DefaultTimeout is the client timeout used when none is configured.
const DefaultTimeout = 30 * time.Second

// ClassifyTransport converts a failed client.Do into UpstreamUnavailable.
// Context cancellation and deadline errors are classified the same way so
// callers see a single kind for "the call did not complete".
func ClassifyTransport(source string, err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return types.Errorf(types.KindUpstreamUnavailable, source, "request timed out: %w", err)
	}
	return types.NewError(types.KindUpstreamUnavailable, source, err)
}

// ClassifyStatus maps a non-2xx response to the error taxonomy: 429 is
// UpstreamRateLimited, other 4xx are UpstreamRejected, and 5xx are
// UpstreamUnavailable. It returns nil for 2xx. A short prefix of the body is
// kept in the message to help diagnose rejections.
func ClassifyStatus(source string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	cause := fmt.Errorf("HTTP %d", resp.StatusCode)
	if s := strings.TrimSpace(string(snippet)); s != "" {
		cause = fmt.Errorf("HTTP %d: %s", resp.StatusCode, s)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		e := types.NewError(types.KindUpstreamRateLimited, source, cause)
		e.RetryAfter = RetryAfter(resp)
		return e
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return types.NewError(types.KindUpstreamRejected, source, cause)
	default:
		return types.NewError(types.KindUpstreamUnavailable, source, cause)
	}
}
