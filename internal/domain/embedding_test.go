package domain

import (
	"context"
	"errors"
	"testing"
)

func TestEmbeddingResult_Empty(t *testing.T) {
	if !(EmbeddingResult{}).Empty() {
		t.Error("zero result should be empty")
	}
	if !(EmbeddingResult{Embedding: []float32{}}).Empty() {
		t.Error("zero-length vector should be empty")
	}
	if (EmbeddingResult{Embedding: []float32{0.1}}).Empty() {
		t.Error("non-empty vector reported empty")
	}
}

func TestUsage_RecordThroughContext(t *testing.T) {
	ctx, usage := NewContextWithUsage(context.Background())

	UsageFromContext(ctx).Record(7)
	UsageFromContext(ctx).Record(3)

	if usage.TotalTokens != 10 {
		t.Errorf("TotalTokens = %d, want 10", usage.TotalTokens)
	}
	if usage.Calls != 2 {
		t.Errorf("Calls = %d, want 2", usage.Calls)
	}
}

func TestUsage_NilSafe(t *testing.T) {
	// no collector in context
	UsageFromContext(context.Background()).Record(5)
}

func TestMatchError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewMatchError("function match_posts does not exist", cause)

	if !errors.Is(err, ErrMatchFailed) {
		t.Error("expected errors.Is(err, ErrMatchFailed)")
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is(err, cause)")
	}

	var me *MatchError
	if !errors.As(err, &me) {
		t.Fatal("expected *MatchError")
	}
	if me.Message != "function match_posts does not exist" {
		t.Errorf("Message = %q", me.Message)
	}
	if err.Error() != "match posts failed: function match_posts does not exist" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestMatchError_NilCause(t *testing.T) {
	err := NewMatchError("boom", nil)
	if !errors.Is(err, ErrMatchFailed) {
		t.Error("expected errors.Is(err, ErrMatchFailed)")
	}
}

func TestDefaultVectorConfig(t *testing.T) {
	c := DefaultVectorConfig()
	if c.Model != "text-embedding-ada-002" {
		t.Errorf("Model = %q", c.Model)
	}
	if c.Procedure != "match_posts" {
		t.Errorf("Procedure = %q", c.Procedure)
	}
	if MatchCount != 5 {
		t.Errorf("MatchCount = %d", MatchCount)
	}
}
