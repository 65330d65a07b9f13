package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/plantdex/internal/domain"
)

// ErrorCode is the machine-readable error kind in an error body.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest   ErrorCode = "bad_request"
	CodeNotFound     ErrorCode = "not_found"
	CodeRateLimited  ErrorCode = "rate_limited"
	CodeUnauthorized ErrorCode = "unauthorized"
	CodeInternal     ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	// Detail carries the error chain outside production.
	Detail string `json:"detail,omitempty"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

// invalidRequestHandler reports which parameter was rejected.
func invalidRequestHandler(w http.ResponseWriter, err error) bool {
	var ire *domain.InvalidRequestError
	if !errors.As(err, &ire) {
		return false
	}
	writeError(w, http.StatusBadRequest, CodeBadRequest, ire.Error())
	return true
}

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		invalidRequestHandler,
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, CodeBadRequest),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, CodeRateLimited),
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			s.log(r).Warn("request rejected", zap.Error(err))
			return
		}
	}
	s.log(r).Error("internal error", zap.Error(err))
	resp := ErrorResponse{Code: CodeInternal, Message: "internal error"}
	if s.exposeDetail {
		resp.Detail = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, resp)
}
