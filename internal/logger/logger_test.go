package logger

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_Environments(t *testing.T) {
	for _, env := range []string{"local", "dev", "docker", "prod"} {
		l, err := NewLogger(env, "")
		if err != nil {
			t.Errorf("%s: unexpected error: %v", env, err)
			continue
		}
		_ = l.Sync()
	}
	if _, err := NewLogger("staging", ""); err == nil {
		t.Error("expected error for unknown environment")
	}
}

func TestNewLogger_Level(t *testing.T) {
	l, err := NewLogger("prod", "warn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Core().Enabled(zap.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if _, err := NewLogger("prod", "loud"); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestNewLogger_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	l, err := NewLogger("prod", "info", WithFileSink(FileSink{Path: path, MaxSizeMB: 1}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l.Info("search completed", zap.Int("results", 2))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q", line)
	}
	if entry["msg"] != "search completed" || entry["results"] != float64(2) {
		t.Errorf("entry = %v", entry)
	}
}

func TestWithFileSink_EmptyPathIgnored(t *testing.T) {
	var o options
	WithFileSink(FileSink{})(&o)
	if o.file != nil {
		t.Error("empty path should not enable the file sink")
	}
}

func TestFromContext(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext must never return nil")
	}
	if FromContextOr(context.Background(), base) != base {
		t.Error("expected fallback without a stored logger")
	}

	reqLogger := base.With(zap.String("request_id", "r1"))
	ctx := ContextWithLogger(context.Background(), reqLogger)
	FromContextOr(ctx, zap.NewNop()).Info("hello")

	if logs.Len() != 1 || logs.All()[0].ContextMap()["request_id"] != "r1" {
		t.Errorf("expected entry from stored logger, got %v", logs.All())
	}
}
