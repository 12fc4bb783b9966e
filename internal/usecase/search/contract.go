package search

import (
	"context"

	"github.com/kailas-cloud/postsearch/internal/domain"
	"github.com/kailas-cloud/postsearch/internal/domain/post"
)

// Repository defines the storage contract for similarity matching.
type Repository interface {
	Match(ctx context.Context, embedding []float32, count int) ([]post.Post, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
