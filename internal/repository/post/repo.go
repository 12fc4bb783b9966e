package post

import (
	"context"
	"errors"
	"time"

	"github.com/kailas-cloud/postsearch/internal/db"
	"github.com/kailas-cloud/postsearch/internal/domain"
	"github.com/kailas-cloud/postsearch/internal/domain/post"
	"github.com/kailas-cloud/postsearch/internal/metrics"
)

// matcher is the consumer interface for the similarity procedure (ISP).
type matcher interface {
	MatchPosts(ctx context.Context, embedding []float32, count int) ([]db.PostRow, error)
	Backend() string
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store matcher
}

// New creates a post repository.
func New(s matcher) *Repo {
	return &Repo{store: s}
}

// Match returns up to count posts nearest to the embedding, in the order the
// procedure produced them. Any store failure becomes a *domain.MatchError.
func (r *Repo) Match(ctx context.Context, embedding []float32, count int) ([]post.Post, error) {
	backend := r.store.Backend()
	start := time.Now()

	rows, err := r.store.MatchPosts(ctx, embedding, count)

	metrics.MatchRequestDuration.WithLabelValues(backend).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MatchRequestsTotal.WithLabelValues(backend, "error").Inc()
		return nil, toMatchError(err)
	}
	metrics.MatchRequestsTotal.WithLabelValues(backend, "success").Inc()
	metrics.MatchRowsReturned.WithLabelValues(backend).Observe(float64(len(rows)))

	posts := make([]post.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, post.New(row.ID, row.Title, row.Text, row.Similarity))
	}
	return posts, nil
}

func toMatchError(err error) error {
	var rpcErr *db.RPCError
	if errors.As(err, &rpcErr) && rpcErr.Message != "" {
		return domain.NewMatchError(rpcErr.Message, err)
	}
	return domain.NewMatchError(err.Error(), err)
}
