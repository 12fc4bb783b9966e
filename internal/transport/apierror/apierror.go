// Package apierror maps domain errors to the client-facing error body shared by
// the JSON endpoint and the browser page.
package apierror

import (
	"context"
	"errors"
	"net/http"

	"github.com/kailas-cloud/postsearch/internal/domain"
)

// Client-facing messages.
const (
	MsgQuestionRequired = "Question is required"
	MsgEmbeddingFailed  = "Failed to generate embedding"
	MsgDatabaseFailed   = "Database query failed"
	MsgInternal         = "Internal server error"
	MsgUnknown          = "Unknown error"
)

// Response is the error body: {"error": ..., "details": ...}.
type Response struct {
	Status  int    `json:"-"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// handler tries to classify an error. Returns false to pass it down the chain.
type handler func(err error) (Response, bool)

var handlers = []handler{
	sentinelHandler(domain.ErrQuestionRequired, http.StatusBadRequest, MsgQuestionRequired),
	sentinelHandler(domain.ErrEmptyEmbedding, http.StatusInternalServerError, MsgEmbeddingFailed),
	matchErrorHandler,
}

// FromError classifies err. Anything unrecognised becomes the generic 500 with the
// error text as details.
func FromError(err error) Response {
	for _, h := range handlers {
		if resp, ok := h(err); ok {
			return resp
		}
	}
	return Internal(err)
}

// Internal builds the generic 500 body.
func Internal(err error) Response {
	details := MsgUnknown
	if err != nil {
		details = err.Error()
	}
	return Response{Status: http.StatusInternalServerError, Error: MsgInternal, Details: details}
}

// IsClientError reports whether the failure was caused by the request itself.
func IsClientError(err error) bool {
	return errors.Is(err, domain.ErrQuestionRequired) || errors.Is(err, context.Canceled)
}

func sentinelHandler(sentinel error, status int, msg string) handler {
	return func(err error) (Response, bool) {
		if !errors.Is(err, sentinel) {
			return Response{}, false
		}
		return Response{Status: status, Error: msg}, true
	}
}

func matchErrorHandler(err error) (Response, bool) {
	var me *domain.MatchError
	if errors.As(err, &me) {
		return Response{Status: http.StatusInternalServerError, Error: MsgDatabaseFailed, Details: me.Message}, true
	}
	if errors.Is(err, domain.ErrMatchFailed) {
		return Response{Status: http.StatusInternalServerError, Error: MsgDatabaseFailed, Details: err.Error()}, true
	}
	return Response{}, false
}
