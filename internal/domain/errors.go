package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing plant.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest signals a listing request rejected at the boundary.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrVectorDimMismatch signals embeddings produced by different model versions.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrEmbeddingUnavailable signals that no embedding model is configured.
	ErrEmbeddingUnavailable = errors.New("embedding model unavailable")
)

// InvalidRequestError carries the offending parameter for a 400 response.
type InvalidRequestError struct {
	Param  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidRequest.Error(), e.Param, e.Reason)
}

func (e *InvalidRequestError) Unwrap() error { return ErrInvalidRequest }

// NewInvalidRequest creates an invalid request error for param.
func NewInvalidRequest(param, reason string) error {
	return &InvalidRequestError{Param: param, Reason: reason}
}
