package post

import (
	"context"
	"testing"

	"github.com/kailas-cloud/postsearch/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	matchFn func(ctx context.Context, embedding []float32, count int) ([]db.PostRow, error)
}

func (m *mockStore) MatchPosts(ctx context.Context, embedding []float32, count int) ([]db.PostRow, error) {
	if m.matchFn != nil {
		return m.matchFn(ctx, embedding, count)
	}
	return nil, nil
}

func (m *mockStore) Backend() string { return "mock" }

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

func testVector() []float32 {
	vec := make([]float32, 4)
	for i := range vec {
		vec[i] = 0.1
	}
	return vec
}
