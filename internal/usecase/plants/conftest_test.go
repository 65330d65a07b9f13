package plants

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/plantdex/internal/domain"
	"github.com/kailas-cloud/plantdex/internal/domain/plant"
	"github.com/kailas-cloud/plantdex/internal/domain/search/predicate"
	plantrepo "github.com/kailas-cloud/plantdex/internal/repository/plant"
)

// --- Mocks ---

type stubEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (s *stubEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	s.calls++
	if s.err != nil {
		return domain.EmbeddingResult{}, s.err
	}
	v, ok := s.vectors[text]
	if !ok {
		return domain.EmbeddingResult{}, fmt.Errorf("no vector for %q", text)
	}
	return domain.EmbeddingResult{Embedding: v, TotalTokens: 3}, nil
}

// failingCatalog fails selected operations and delegates the rest.
type failingCatalog struct {
	*plantrepo.Memory
	facetErr error
	countErr error
}

func (f *failingCatalog) Facet(
	ctx context.Context, pred predicate.Predicate, field string, unwind bool,
) (map[string]int, error) {
	if f.facetErr != nil {
		return nil, f.facetErr
	}
	return f.Memory.Facet(ctx, pred, field, unwind)
}

func (f *failingCatalog) Count(ctx context.Context, pred predicate.Predicate) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.Memory.Count(ctx, pred)
}

var errStoreDown = errors.New("store down")

// --- Fixtures ---

func ptr(f float64) *float64 { return &f }

// gardenPlants is a small catalog with 3-dim embeddings. The query vector for
// "native flowers" is [1,0,0]: Trillium scores 1.0, Asclepias 0.8, Carex 0,
// Aquilegia has a 2-dim vector and Monarda has none.
func gardenPlants() []plant.Plant {
	return []plant.Plant{
		{
			ID: "Trillium grandiflorum", CommonName: "Large-flowered Trillium",
			Family: "Melanthiaceae", Genus: "Trillium",
			Height: ptr(1.5), Spread: ptr(1), RecommendationScore: 8,
			States: []string{"NY", "PA"}, SunExposure: []string{"Shade"},
			SoilMoisture: []string{"Moist"}, PlantType: []string{"Herb"},
			LifeCycle: []string{"Perennial"}, Pollinator: []string{"Native Bees"},
			FlowerColor: []string{"White"}, FloweringMonths: []int{3, 4},
			Embedding: []float32{1, 0, 0},
		},
		{
			ID: "Asclepias tuberosa", CommonName: "Butterfly Weed",
			Family: "Apocynaceae", Genus: "Asclepias",
			Height: ptr(2.5), Spread: ptr(1.5), RecommendationScore: 10,
			States: []string{"NY", "TX"}, SunExposure: []string{"Sun"},
			SoilMoisture: []string{"Dry"}, Pollinator: []string{"Butterflies", "Monarchs", "Wind"},
			FlowerColor: []string{"Orange"}, FloweringMonths: []int{5, 6, 7},
			Superplant: true,
			Embedding:  []float32{0.8, 0.6, 0},
		},
		{
			ID: "Carex pensylvanica", CommonName: "Pennsylvania Sedge",
			Family: "Cyperaceae", Genus: "Carex",
			Height: ptr(0.7), Spread: ptr(1.2), RecommendationScore: 5,
			States: []string{"PA"}, SunExposure: []string{"Shade", "Part Shade"},
			PlantType: []string{"Graminoid"}, Pollinator: []string{"Wind"},
			Embedding: []float32{0, 0, 1},
		},
		{
			ID: "Aquilegia canadensis", CommonName: "Eastern Columbine",
			Family: "Ranunculaceae", Genus: "Aquilegia",
			Height: ptr(2), Spread: ptr(1), RecommendationScore: 7,
			States: []string{"NY"}, SunExposure: []string{"Shade", "Part Shade"},
			Pollinator: []string{"Hummingbirds"},
			Embedding:  []float32{1, 0},
		},
		{
			ID: "Monarda fistulosa", CommonName: "Wild Bergamot",
			Family: "Lamiaceae", Genus: "Monarda",
			RecommendationScore: 9,
			States:              []string{"TX"}, SunExposure: []string{"Sun"},
		},
	}
}

func gardenEmbedder() *stubEmbedder {
	return &stubEmbedder{vectors: map[string][]float32{"native flowers": {1, 0, 0}}}
}
