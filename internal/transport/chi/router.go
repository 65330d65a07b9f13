package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/plantdex/internal/metrics"
)

// RouterOptions configures the middleware stack.
type RouterOptions struct {
	// MetricsAPIKeys guard /metrics. Empty leaves it open.
	MetricsAPIKeys []string
	// RateLimit is the sustained request rate for /api; 0 disables limiting.
	RateLimit float64
	RateBurst int
	// MetricsHandler overrides the promhttp default handler.
	MetricsHandler http.Handler
}

// NewRouter wires handlers and middleware into a chi router.
func NewRouter(s *Server, logger *zap.Logger, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rateLimitMiddleware(opts.RateLimit, opts.RateBurst))
		r.Get("/plants", s.ListPlants)
		r.Get("/plants/{id}", s.GetPlant)
	})

	r.Get("/health", s.HealthCheck)

	mh := opts.MetricsHandler
	if mh == nil {
		mh = promhttp.Handler()
	}
	r.With(BearerAuthMiddleware(opts.MetricsAPIKeys)).Method(http.MethodGet, "/metrics", mh)

	return r
}
