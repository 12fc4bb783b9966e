package request

import (
	"strings"

	"github.com/kailas-cloud/postsearch/internal/domain"
)

// Request is a validated search question.
type Request struct {
	question string
}

// New validates the question. Whitespace around it is trimmed; a blank question
// yields domain.ErrQuestionRequired.
func New(question string) (Request, error) {
	q := strings.TrimSpace(question)
	if q == "" {
		return Request{}, domain.ErrQuestionRequired
	}
	return Request{question: q}, nil
}

// Question returns the normalized question text.
func (r *Request) Question() string { return r.question }

// MatchCount returns the number of posts requested from the similarity procedure.
func (r *Request) MatchCount() int { return domain.MatchCount }
