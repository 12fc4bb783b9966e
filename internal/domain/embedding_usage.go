package domain

import "context"

type embeddingUsageKey struct{}

// EmbeddingUsage collects token usage for a single search request.
// The handler puts a mutable pointer into the context before calling the search service;
// the embedder chain writes to it; the handler reads it for the X-Embedding-Tokens header.
type EmbeddingUsage struct {
	TotalTokens int
	Calls       int // provider round trips, 0 on a cache hit
}

// NewContextWithUsage returns a context with an embedded usage collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *EmbeddingUsage) {
	u := &EmbeddingUsage{}
	return context.WithValue(ctx, embeddingUsageKey{}, u), u
}

// UsageFromContext extracts the usage collector from context. Returns nil if not set.
func UsageFromContext(ctx context.Context) *EmbeddingUsage {
	u, _ := ctx.Value(embeddingUsageKey{}).(*EmbeddingUsage)
	return u
}

// Record adds one provider call and its consumed tokens.
func (u *EmbeddingUsage) Record(tokens int) {
	if u != nil {
		u.TotalTokens += tokens
		u.Calls++
	}
}
