package client

import (
	"errors"
	"fmt"
)

var (
	// ErrRequestFailed matches every failed call: transport errors, non-2xx
	// responses and undecodable bodies alike.
	ErrRequestFailed = errors.New("request failed")

	ErrMalformedToken = errors.New("malformed access token")
)

// StatusError is returned for a non-2xx response. The code is kept for
// diagnostics only; callers are expected to match ErrRequestFailed.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: %s: %s", e.Method, e.Path, e.Status, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrRequestFailed
}
