package db

import (
	"context"
	"time"
)

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PostRow is a single row returned by the similarity procedure.
type PostRow struct {
	ID         string
	Title      string
	Text       string
	Similarity float64
}

// Matcher calls the remote nearest-neighbour procedure (match_posts).
type Matcher interface {
	Pinger
	MatchPosts(ctx context.Context, embedding []float32, count int) ([]PostRow, error)
	// Backend names the driver for logs and metric labels.
	Backend() string
	WaitForReady(ctx context.Context, timeout time.Duration) error
	Close()
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Pinger
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close()
}
