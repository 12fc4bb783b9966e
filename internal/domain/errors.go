package domain

import (
	"errors"
)

var (
	// ErrQuestionRequired signals a missing or empty question.
	ErrQuestionRequired = errors.New("question is required")
	// ErrEmptyEmbedding signals that the provider returned no usable vector.
	ErrEmptyEmbedding = errors.New("empty embedding")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrMatchFailed signals a failure of the remote similarity procedure.
	ErrMatchFailed = errors.New("match posts failed")
)

// MatchError wraps ErrMatchFailed with the message reported by the database.
type MatchError struct {
	// Message is the upstream error text, surfaced to clients as "details".
	Message string
	Err     error
}

func (e *MatchError) Error() string {
	return ErrMatchFailed.Error() + ": " + e.Message
}

func (e *MatchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMatchFailed}
	}
	return []error{ErrMatchFailed, e.Err}
}

// NewMatchError creates a match error carrying the upstream message.
func NewMatchError(message string, cause error) error {
	return &MatchError{Message: message, Err: cause}
}
