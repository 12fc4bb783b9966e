// Package postgrest calls the similarity procedure through a PostgREST API
// (the HTTP layer Supabase exposes over Postgres).
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kailas-cloud/postsearch/internal/db"
)

// Compile-time check: Client implements db.Matcher.
var _ db.Matcher = (*Client)(nil)

const (
	restPath = "/rest/v1"
	// maxErrorBody caps how much of a failed response is read.
	maxErrorBody = 64 << 10
)

// Config holds PostgREST connection settings.
type Config struct {
	URL        string // project URL, e.g. https://xyz.supabase.co
	AnonKey    string
	Procedure  string
	Schema     string // empty or "public" uses the default profile
	HTTPClient *http.Client
}

// Client implements db.Matcher over PostgREST RPC.
type Client struct {
	baseURL   string
	anonKey   string
	procedure string
	schema    string
	http      *http.Client
}

// NewClient creates a PostgREST RPC client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("url is required")
	}
	if cfg.AnonKey == "" {
		return nil, fmt.Errorf("anon key is required")
	}
	if cfg.Procedure == "" {
		return nil, fmt.Errorf("procedure is required")
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.URL, "/") + restPath,
		anonKey:   cfg.AnonKey,
		procedure: cfg.Procedure,
		schema:    cfg.Schema,
		http:      hc,
	}, nil
}

// Backend implements db.Matcher.
func (c *Client) Backend() string { return "postgrest" }

// Close is a no-op: the underlying http.Client owns its idle connections.
func (c *Client) Close() {}

type matchRequest struct {
	QueryEmbedding []float32 `json:"query_embedding"`
	MatchCount     int       `json:"match_count"`
}

type postRow struct {
	ID         json.RawMessage `json:"id"`
	Title      string          `json:"title"`
	Text       string          `json:"text"`
	Similarity float64         `json:"similarity"`
}

// MatchPosts calls POST /rest/v1/rpc/{procedure}.
func (c *Client) MatchPosts(ctx context.Context, embedding []float32, count int) ([]db.PostRow, error) {
	body, err := json.Marshal(matchRequest{QueryEmbedding: embedding, MatchCount: count})
	if err != nil {
		return nil, fmt.Errorf("encode rpc args: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/rpc/"+c.procedure, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build rpc request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	if c.schema != "" && c.schema != "public" {
		req.Header.Set("Content-Profile", c.schema)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &db.Error{Op: db.OpRPC, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.parseError(resp)
	}

	var rows []postRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, &db.Error{Op: db.OpScan, Err: fmt.Errorf("decode rpc response: %w", err)}
	}

	out := make([]db.PostRow, len(rows))
	for i, r := range rows {
		out[i] = db.PostRow{
			ID:         idString(r.ID),
			Title:      r.Title,
			Text:       r.Text,
			Similarity: r.Similarity,
		}
	}
	return out, nil
}

// Ping checks that the REST endpoint answers. Any non-5xx response counts as reachable,
// since the anon role may not be allowed to read the OpenAPI root.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", http.NoBody)
	if err != nil {
		return fmt.Errorf("build ping request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return &db.Error{Op: db.OpPing, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	return nil
}

// WaitForReady polls Ping until the endpoint responds or timeout expires.
func (c *Client) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		if err := c.Ping(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for postgrest: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	req.Header.Set("Accept", "application/json")
}

// apiError is the PostgREST error body.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (c *Client) parseError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	rpcErr := &db.RPCError{Procedure: c.procedure, Status: resp.StatusCode}

	var body apiError
	if json.Unmarshal(raw, &body) == nil && body.Message != "" {
		rpcErr.Code = body.Code
		rpcErr.Message = body.Message
		rpcErr.Details = body.Details
		rpcErr.Hint = body.Hint
		return rpcErr
	}

	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		msg = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	rpcErr.Message = msg
	return rpcErr
}

// idString renders a JSON id as text: strings are unquoted, numbers keep their literal form.
func idString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return string(raw)
}
