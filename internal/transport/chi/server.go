package chi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/plantdex/internal/domain"
	"github.com/kailas-cloud/plantdex/internal/domain/plant"
	"github.com/kailas-cloud/plantdex/internal/domain/search/request"
	"github.com/kailas-cloud/plantdex/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/plantdex/internal/logger"
	healthuc "github.com/kailas-cloud/plantdex/internal/usecase/health"
)

// PlantService is the listing engine as seen by HTTP handlers.
type PlantService interface {
	List(ctx context.Context, req *request.Request) (result.Response, error)
	Get(ctx context.Context, id string) (plant.Plant, error)
}

// HealthService reports component health.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}

// Response headers describing the query embedding step.
const (
	HeaderEmbeddingTokens = "X-Embedding-Tokens"
	HeaderSearchFallback  = "X-Search-Fallback"
)

// Server holds the HTTP handlers.
type Server struct {
	plants         PlantService
	health         HealthService
	logger         *zap.Logger
	maxQueryLength int
	exposeDetail   bool
	errorHandlers  []errorHandler
}

// ServerOptions tunes request validation and error reporting.
type ServerOptions struct {
	MaxQueryLength int
	// ExposeErrorDetail adds the error chain to 500 bodies. Off in production.
	ExposeErrorDetail bool
}

// NewServer creates an HTTP API server.
func NewServer(plants PlantService, health HealthService, logger *zap.Logger, opts ServerOptions) *Server {
	if opts.MaxQueryLength <= 0 {
		opts.MaxQueryLength = request.MaxQueryLength
	}
	return &Server{
		plants:         plants,
		health:         health,
		logger:         logger,
		maxQueryLength: opts.MaxQueryLength,
		exposeDetail:   opts.ExposeErrorDetail,
		errorHandlers:  defaultErrorHandlers(),
	}
}

// ListPlants handles GET /api/v1/plants.
func (s *Server) ListPlants(w http.ResponseWriter, r *http.Request) {
	req, err := request.Parse(r.URL.Query(), s.maxQueryLength)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	resp, err := s.plants.List(ctx, &req)
	setEmbeddingHeaders(w, usage)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetPlant handles GET /api/v1/plants/{id}.
func (s *Server) GetPlant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		s.handleDomainError(w, r, domain.NewInvalidRequest("id", "required"))
		return
	}

	p, err := s.plants.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result.Hit{Plant: p})
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status healthuc.Status                 `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
	Errors map[string]string               `json:"errors,omitempty"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	resp := HealthResponse{Status: report.Status, Checks: report.Checks}
	if s.exposeDetail && len(report.Errors) > 0 {
		resp.Errors = report.Errors
	}
	writeJSON(w, httpStatus, resp)
}

func setEmbeddingHeaders(w http.ResponseWriter, usage *domain.EmbeddingUsage) {
	if usage == nil {
		return
	}
	if usage.Used {
		w.Header().Set(HeaderEmbeddingTokens, strconv.Itoa(usage.TotalTokens))
	}
	if usage.Fallback {
		w.Header().Set(HeaderSearchFallback, "name-match")
	}
}

func (s *Server) log(r *http.Request) *zap.Logger {
	return logpkg.FromContextOr(r.Context(), s.logger)
}
