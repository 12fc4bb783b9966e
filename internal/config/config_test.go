package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		Embedding: EmbeddingConfig{APIKey: "sk-test"},
		Database: DatabaseConfig{
			URL:     "https://abc.supabase.co",
			AnonKey: "anon",
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 3000 {
		t.Errorf("port = %d, want 3000", cfg.HTTP.Port)
	}
	if cfg.Database.Driver != DriverPostgREST {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Database.Procedure != "match_posts" {
		t.Errorf("procedure = %q", cfg.Database.Procedure)
	}
	if cfg.Embedding.Model != "text-embedding-ada-002" {
		t.Errorf("model = %q", cfg.Embedding.Model)
	}
	if cfg.Cache.Enabled() {
		t.Error("cache should be disabled by default")
	}
	if cfg.Logging.File.MaxSizeMB != 0 {
		t.Error("file sink defaults apply only when a path is set")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid postgrest", func(*Config) {}, ""},
		{"missing api key", func(c *Config) { c.Embedding.APIKey = "" }, "embedding.api_key is required"},
		{"missing url", func(c *Config) { c.Database.URL = "" }, "database.url is required"},
		{"missing anon key", func(c *Config) { c.Database.AnonKey = "" }, "database.anon_key is required"},
		{"postgres without dsn", func(c *Config) { c.Database.Driver = DriverPostgres }, "database.dsn is required"},
		{"valid postgres", func(c *Config) {
			c.Database.Driver = DriverPostgres
			c.Database.DSN = "postgres://localhost/db"
		}, ""},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "database.driver must be"},
		{"bad procedure", func(c *Config) { c.Database.Procedure = "match_posts; drop table posts" }, "database.procedure"},
		{"bad port", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"negative timeout", func(c *Config) { c.Search.TimeoutSec = -1 }, "search.timeout_sec"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("SUPABASE_URL", "https://xyz.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon-env")
	t.Setenv("PORT", "")

	cfg, err := Parse([]byte(`
http:
  port: ${PORT:-8081}
embedding:
  api_key: ${OPENAI_API_KEY}
database:
  url: ${SUPABASE_URL}
  anon_key: ${SUPABASE_ANON_KEY}
cache:
  addrs: ["${REDIS_ADDR_UNSET_FOR_TEST:-}"]
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.HTTP.Port != 8081 {
		t.Errorf("port = %d, want default 8081", cfg.HTTP.Port)
	}
	if cfg.Embedding.APIKey != "sk-env" || cfg.Database.URL != "https://xyz.supabase.co" || cfg.Database.AnonKey != "anon-env" {
		t.Errorf("env not expanded: %+v", cfg)
	}
	if cfg.Cache.Enabled() {
		t.Error("empty addr must not enable the cache")
	}
}

func TestParse_MissingRequiredEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Parse([]byte(`
embedding:
  api_key: ${OPENAI_API_KEY}
database:
  url: https://x.supabase.co
  anon_key: anon
`))
	if err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, ".env"), "POSTSEARCH_TEST_DOTENV_KEY=sk-dotenv\n")
	writeFile(t, filepath.Join(dir, "config", "unittest.yaml"), `
embedding:
  api_key: ${POSTSEARCH_TEST_DOTENV_KEY}
database:
  driver: postgres
  dsn: postgres://localhost/posts
`)
	t.Cleanup(func() { _ = os.Unsetenv("POSTSEARCH_TEST_DOTENV_KEY") })
	t.Chdir(dir)

	cfg, err := Load("unittest")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Embedding.APIKey != "sk-dotenv" {
		t.Errorf("api key = %q, want value from .env", cfg.Embedding.APIKey)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := Load("does-not-exist"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if GetEnv() != "local" {
		t.Errorf("default env = %q", GetEnv())
	}
	t.Setenv("ENV", "prod")
	if GetEnv() != "prod" {
		t.Errorf("env = %q", GetEnv())
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}
