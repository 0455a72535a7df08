package llm

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// Kind partitions upstream failures so callers can pick a user-facing
// message without parsing error strings.
type Kind string

const (
	KindAuth      Kind = "auth"
	KindRateLimit Kind = "rate_limit"
	KindNetwork   Kind = "network"
	KindMalformed Kind = "malformed"
	KindUpstream  Kind = "upstream"
)

// Error wraps an upstream failure with its kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("llm %s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the kind carried by err, or KindNetwork when err did not
// come out of this package.
func KindOf(err error) Kind {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind
	}
	return KindNetwork
}

// classify maps SDK errors onto the taxonomy. API errors carry an HTTP
// status; anything the SDK could not parse counts as malformed; the rest is
// transport trouble.
func classify(err error) *Error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &Error{Kind: kindForStatus(apiErr.HTTPStatusCode), Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode != 0 {
			return &Error{Kind: kindForStatus(reqErr.HTTPStatusCode), Err: err}
		}
		return &Error{Kind: KindMalformed, Err: err}
	}
	if errors.Is(err, openai.ErrTooManyEmptyStreamMessages) {
		return &Error{Kind: KindMalformed, Err: err}
	}
	return &Error{Kind: KindNetwork, Err: err}
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusTooManyRequests:
		return KindRateLimit
	default:
		return KindUpstream
	}
}
