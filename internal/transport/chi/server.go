package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/postsearch/internal/domain"
	"github.com/kailas-cloud/postsearch/internal/domain/post"
	logpkg "github.com/kailas-cloud/postsearch/internal/logger"
	"github.com/kailas-cloud/postsearch/internal/metrics"
	"github.com/kailas-cloud/postsearch/internal/transport/apierror"
	healthuc "github.com/kailas-cloud/postsearch/internal/usecase/health"
)

// maxBodyBytes bounds the search request body.
const maxBodyBytes = 1 << 20

// Searcher answers a question with the nearest posts.
type Searcher interface {
	Search(ctx context.Context, question string) ([]post.Post, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server serves the JSON API.
type Server struct {
	search Searcher
	health HealthChecker
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(search Searcher, health HealthChecker, logger *zap.Logger) *Server {
	return &Server{search: search, health: health, logger: logger}
}

// Mount registers the API routes on r.
func (s *Server) Mount(r chi.Router) {
	r.Post("/api/search", s.Search)
	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
}

type searchRequest struct {
	Question string `json:"question"`
}

type postResponse struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"`
}

type searchResponse struct {
	Results []postResponse `json:"results"`
}

type healthResponse struct {
	Status healthuc.Status                 `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

// Search handles POST /api/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		logpkg.FromContextOr(r.Context(), s.logger).Warn("invalid search body", zap.Error(err))
		writeError(w, apierror.FromError(domain.ErrQuestionRequired))
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	posts, err := s.search.Search(ctx, req.Question)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	results := make([]postResponse, len(posts))
	for i := range posts {
		results[i] = postToResponse(&posts[i])
	}

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, searchResponse{Results: results})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: report.Status,
		Checks: report.Checks,
	})
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	if apierror.IsClientError(err) {
		log.Warn("search rejected", zap.Error(err))
	} else {
		log.Error("search failed", zap.Error(err))
	}
	writeError(w, apierror.FromError(err))
}

func postToResponse(p *post.Post) postResponse {
	return postResponse{
		ID:         p.ID(),
		Title:      p.Title(),
		Text:       p.Text(),
		Similarity: p.Similarity(),
	}
}

func setEmbeddingHeaders(w http.ResponseWriter, usage *domain.EmbeddingUsage) {
	if usage != nil {
		w.Header().Set("X-Embedding-Tokens", strconv.Itoa(usage.TotalTokens))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, resp apierror.Response) {
	writeJSON(w, resp.Status, resp)
}
