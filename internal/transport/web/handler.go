// Package web serves the server-rendered search form.
package web

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/postsearch/internal/domain/post"
	logpkg "github.com/kailas-cloud/postsearch/internal/logger"
	"github.com/kailas-cloud/postsearch/internal/transport/apierror"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// Searcher answers a question with the nearest posts.
type Searcher interface {
	Search(ctx context.Context, question string) ([]post.Post, error)
}

type card struct {
	ID          string
	Title       string
	Body        string
	Toggle      bool
	ToggleLabel string
	ToggleURL   string
	Similarity  string
}

type pageData struct {
	Question string
	Error    string
	Results  []card
}

// Handler renders the form and, when q is present, the result cards.
type Handler struct {
	search Searcher
	logger *zap.Logger
}

// NewHandler creates the page handler.
func NewHandler(search Searcher, logger *zap.Logger) *Handler {
	return &Handler{search: search, logger: logger}
}

// ServeHTTP handles GET /?q=<question>&expanded=<id>...
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	data := pageData{Question: query.Get("q")}

	if query.Has("q") {
		data.Results, data.Error = h.results(r, data.Question, ParseExpanded(query["expanded"]))
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		logpkg.FromContextOr(r.Context(), h.logger).Error("render page", zap.Error(err))
		http.Error(w, apierror.MsgInternal, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *Handler) results(r *http.Request, question string, expanded Expanded) ([]card, string) {
	posts, err := h.search.Search(r.Context(), question)
	if err != nil {
		log := logpkg.FromContextOr(r.Context(), h.logger)
		if apierror.IsClientError(err) {
			log.Warn("page search rejected", zap.Error(err))
		} else {
			log.Error("page search failed", zap.Error(err))
		}
		return nil, apierror.FromError(err).Error
	}

	cards := make([]card, len(posts))
	for i := range posts {
		cards[i] = toCard(&posts[i], strings.TrimSpace(question), expanded)
	}
	return cards, ""
}

func toCard(p *post.Post, question string, expanded Expanded) card {
	open := expanded.Has(p.ID())
	c := card{
		ID:         p.ID(),
		Title:      p.Title(),
		Body:       Truncate(p.Text(), open),
		Similarity: FormatSimilarity(p.Similarity()),
	}
	if NeedsToggle(p.Text()) {
		c.Toggle = true
		c.ToggleLabel = ToggleLabel(open)
		c.ToggleURL = ToggleURL(question, expanded, p.ID())
	}
	return c
}
