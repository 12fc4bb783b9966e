package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/postsearch/internal/metrics"
)

// NewRouter assembles middleware, the API routes and, when page is non-nil, the
// browser form at GET /.
func NewRouter(api *Server, page http.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEventMiddleware(logger))
	r.Use(metrics.Middleware())

	api.Mount(r)
	if page != nil {
		r.Method(http.MethodGet, "/", page)
	}
	return r
}
