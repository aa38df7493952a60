// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies a failure reported by a search adapter, the model
// client, or the orchestrator.
type ErrorKind string

const (
	KindAuthentication      ErrorKind = "authentication"
	KindModelUnavailable    ErrorKind = "model_unavailable"
	KindToolLoopExceeded    ErrorKind = "tool_loop_exceeded"
	KindUpstreamUnavailable ErrorKind = "upstream_unavailable"
	KindUpstreamRateLimited ErrorKind = "upstream_rate_limited"
	KindUpstreamRejected    ErrorKind = "upstream_rejected"
	KindEmptyQuery          ErrorKind = "empty_query"
)

// Sentinels for errors.Is. A *Error matches the sentinel of its Kind.
var (
	ErrAuthentication      = &Error{Kind: KindAuthentication}
	ErrModelUnavailable    = &Error{Kind: KindModelUnavailable}
	ErrToolLoopExceeded    = &Error{Kind: KindToolLoopExceeded}
	ErrUpstreamUnavailable = &Error{Kind: KindUpstreamUnavailable}
	ErrUpstreamRateLimited = &Error{Kind: KindUpstreamRateLimited}
	ErrUpstreamRejected    = &Error{Kind: KindUpstreamRejected}
	ErrEmptyQuery          = &Error{Kind: KindEmptyQuery}
)

// Error is a classified failure. Source names the component or upstream that
// failed (e.g. "pubmed", "model").
type Error struct {
	Kind       ErrorKind
	Source     string
	RetryAfter time.Duration
	Err        error
}

// NewError returns an *Error of the given kind wrapping err.
func NewError(kind ErrorKind, source string, err error) *Error {
	return &Error{Kind: kind, Source: source, Err: err}
}

// Errorf returns an *Error of the given kind with a formatted cause.
func Errorf(kind ErrorKind, source, format string, args ...any) *Error {
	return &Error{Kind: kind, Source: source, Err: fmt.Errorf(format, args...)}
}

// Message returns a short human-readable description of the kind.
func (e *Error) Message() string {
	switch e.Kind {
	case KindAuthentication:
		return "authentication failed"
	case KindModelUnavailable:
		return "model unavailable"
	case KindToolLoopExceeded:
		return "tool loop exceeded"
	case KindUpstreamUnavailable:
		return "upstream unavailable"
	case KindUpstreamRateLimited:
		if e.RetryAfter > 0 {
			return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
		}
		return "rate limited"
	case KindUpstreamRejected:
		return "request rejected"
	case KindEmptyQuery:
		return "query is empty"
	default:
		return "unknown error"
	}
}

func (e *Error) Error() string {
	msg := e.Message()
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same Kind, so wrapped errors compare equal to
// the package sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or "" when err
// is not classified.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// UserMessage renders err for display in an error banner.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	switch e.Kind {
	case KindAuthentication:
		return "Authentication failed. Check HUGGINGFACEHUB_API_TOKEN. (" + err.Error() + ")"
	case KindUpstreamRejected:
		return "The search service rejected the request. (" + err.Error() + ")"
	case KindEmptyQuery:
		return "Enter a query first."
	default:
		return err.Error()
	}
}
