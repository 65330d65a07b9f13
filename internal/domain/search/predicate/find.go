package predicate

import "github.com/kailas-cloud/plantdex/internal/domain/search/order"

// FindOptions controls how a catalog returns matching plants.
type FindOptions struct {
	Sort []order.Key
	Skip int
	// Limit 0 returns every match.
	Limit int
	// IncludeEmbedding keeps embedding vectors on returned plants.
	IncludeEmbedding bool
}
