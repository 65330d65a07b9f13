package catalog

import (
	"context"

	"github.com/kailas-cloud/plantdex/internal/domain"
	"github.com/kailas-cloud/plantdex/internal/domain/plant"
	"github.com/kailas-cloud/plantdex/internal/domain/search/predicate"
)

// Store is the writable side of the plant catalog.
type Store interface {
	// EnsureIndex creates the search index when missing and reports whether it did.
	EnsureIndex(ctx context.Context) (bool, error)
	// Upsert replaces plants by ID and returns how many were new.
	Upsert(ctx context.Context, plants []plant.Plant) (int, error)
	Find(ctx context.Context, pred predicate.Predicate, opts predicate.FindOptions) ([]plant.Plant, error)
	SetEmbedding(ctx context.Context, id string, vec []float32) error
}

// BatchEmbedder vectorizes many texts in one call.
type BatchEmbedder interface {
	BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}
