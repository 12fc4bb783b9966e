package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kailas-cloud/postsearch/internal/version"
)

const defaultTimeout = 30 * time.Second

// Client calls the postsearch HTTP API.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	obs       *observer
}

// New creates a Client for the server at baseURL (e.g. "http://localhost:3000").
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}

	cfg := &clientConfig{timeout: defaultTimeout, userAgent: version.UserAgent("postsearch-go-client")}
	for _, o := range opts {
		o.apply(cfg)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{baseURL: baseURL, http: hc, userAgent: cfg.userAgent, obs: obs}, nil
}

// Search returns up to five posts closest to question. The slice is never nil
// on success. Non-2xx responses are returned as *APIError.
func (c *Client) Search(ctx context.Context, question string) (posts []Post, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	body, err := json.Marshal(searchRequest{Question: question})
	if err != nil {
		return nil, fmt.Errorf("postsearch: encode request: %w", err)
	}

	var resp searchResponse
	if err = c.do(ctx, http.MethodPost, "/api/search", body, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		resp.Results = []Post{}
	}
	return resp.Results, nil
}

// Health fetches GET /health. A degraded service (HTTP 503) is reported in the
// returned status, not as an error.
func (c *Client) Health(ctx context.Context) (status HealthStatus, err error) {
	start := time.Now()
	defer func() { c.obs.observe("health", start, err) }()

	err = c.do(ctx, http.MethodGet, "/health", nil, &status)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusServiceUnavailable && status.Status != "" {
		return status, nil
	}
	return status, err
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("postsearch: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("postsearch: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("postsearch: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Health bodies on 503 still carry the report.
		_ = json.Unmarshal(raw, out)
		return parseAPIError(resp, raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("postsearch: decode response: %w", err)
	}
	return nil
}

func parseAPIError(resp *http.Response, raw []byte) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Details = body.Details
		return apiErr
	}
	apiErr.Message = http.StatusText(resp.StatusCode)
	if text := strings.TrimSpace(string(raw)); text != "" {
		apiErr.Details = text
	}
	return apiErr
}
