// Package result holds the listing response envelope.
package result

import (
	"encoding/json"

	"github.com/kailas-cloud/plantdex/internal/domain/plant"
)

// Hit is a plant in a listing. Score is set only for semantic results.
type Hit struct {
	plant.Plant
	Score *float64
}

// MarshalJSON flattens the plant and adds "_semanticScore" when scored.
// The embedding vector is never serialized.
func (h Hit) MarshalJSON() ([]byte, error) {
	type scored struct {
		plant.Plant
		SemanticScore *float64 `json:"_semanticScore,omitempty"`
	}
	return json.Marshal(scored{Plant: h.Plant.WithoutEmbedding(), SemanticScore: h.Score})
}

// NumberRange is an observed [Min, Max] of a numeric field.
type NumberRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Response is the listing envelope.
type Response struct {
	Results     []Hit                     `json:"results"`
	Total       *int                      `json:"total,omitempty"`
	Choices     map[string][]string       `json:"choices"`
	Counts      map[string]map[string]int `json:"counts"`
	HeightRange NumberRange               `json:"heightRange"`
	SpreadRange NumberRange               `json:"spreadRange"`
}
