package client

import (
	"errors"
	"fmt"
)

// ErrBaseURLRequired is returned by New for an empty base URL.
var ErrBaseURLRequired = errors.New("postsearch: base URL required")

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string // the "error" field
	Details    string // the optional "details" field
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("postsearch: %d %s: %s", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("postsearch: %d %s", e.StatusCode, e.Message)
}
