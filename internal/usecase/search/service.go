package search

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/postsearch/internal/domain"
	"github.com/kailas-cloud/postsearch/internal/domain/post"
	"github.com/kailas-cloud/postsearch/internal/domain/search/request"
)

// Service answers a question with the posts semantically closest to it.
type Service struct {
	repo    Repository
	embed   Embedder
	timeout time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout bounds the whole embed+match pipeline. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// New creates a search service.
func New(repo Repository, embed Embedder, opts ...Option) *Service {
	s := &Service{repo: repo, embed: embed}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Search embeds the question once and asks the repository for the nearest posts.
// The returned slice is never nil and holds at most domain.MatchCount posts.
func (s *Service) Search(ctx context.Context, question string) ([]post.Post, error) {
	req, err := request.New(question)
	if err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	embResult, err := s.embed.Embed(ctx, req.Question())
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	if embResult.Empty() {
		return nil, domain.ErrEmptyEmbedding
	}

	posts, err := s.repo.Match(ctx, embResult.Embedding, req.MatchCount())
	if err != nil {
		return nil, fmt.Errorf("match posts: %w", err)
	}

	if posts == nil {
		posts = []post.Post{}
	}
	if len(posts) > req.MatchCount() {
		posts = posts[:req.MatchCount()]
	}

	return posts, nil
}
