package plants

import (
	"context"

	"github.com/kailas-cloud/plantdex/internal/domain"
	"github.com/kailas-cloud/plantdex/internal/domain/plant"
	"github.com/kailas-cloud/plantdex/internal/domain/search/predicate"
)

// Catalog is the document store contract of the listing engine.
type Catalog interface {
	// Get returns one plant by ID, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (plant.Plant, error)
	// Find returns plants matching pred, sorted and windowed per opts.
	Find(ctx context.Context, pred predicate.Predicate, opts predicate.FindOptions) ([]plant.Plant, error)
	// Count returns the number of plants matching pred.
	Count(ctx context.Context, pred predicate.Predicate) (int, error)
	// Distinct returns every non-empty value of a string field across the catalog.
	Distinct(ctx context.Context, field string) ([]string, error)
	// Facet counts matching plants per field value. Boolean fields are keyed "true" and "false".
	// With unwind every element of an array field is counted.
	Facet(ctx context.Context, pred predicate.Predicate, field string, unwind bool) (map[string]int, error)
	// Bounds returns min and max of a numeric field over matching plants.
	// ok is false when no matching plant carries the field.
	Bounds(ctx context.Context, pred predicate.Predicate, field string) (lo, hi float64, ok bool, err error)
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
