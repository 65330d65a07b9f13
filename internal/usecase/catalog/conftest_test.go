package catalog

import (
	"context"
	"slices"

	"github.com/kailas-cloud/plantdex/internal/domain"
	"github.com/kailas-cloud/plantdex/internal/domain/plant"
	"github.com/kailas-cloud/plantdex/internal/domain/search/predicate"
)

type mockStore struct {
	plants      []plant.Plant
	created     bool
	ensureErr   error
	upserted    []plant.Plant
	upsertErr   error
	findErr     error
	findOpts    predicate.FindOptions
	embeddings  map[string][]float32
	setErrForID map[string]error
}

func (m *mockStore) EnsureIndex(context.Context) (bool, error) { return m.created, m.ensureErr }

func (m *mockStore) Upsert(_ context.Context, plants []plant.Plant) (int, error) {
	if m.upsertErr != nil {
		return 0, m.upsertErr
	}
	created := 0
	for _, p := range plants {
		if !slices.ContainsFunc(m.plants, func(q plant.Plant) bool { return q.ID == p.ID }) {
			created++
		}
	}
	m.upserted = append(m.upserted, plants...)
	return created, nil
}

func (m *mockStore) Find(_ context.Context, _ predicate.Predicate, opts predicate.FindOptions) ([]plant.Plant, error) {
	m.findOpts = opts
	if m.findErr != nil {
		return nil, m.findErr
	}
	return slices.Clone(m.plants), nil
}

func (m *mockStore) SetEmbedding(_ context.Context, id string, vec []float32) error {
	if err := m.setErrForID[id]; err != nil {
		return err
	}
	if m.embeddings == nil {
		m.embeddings = map[string][]float32{}
	}
	m.embeddings[id] = vec
	return nil
}

type mockEmbedder struct {
	calls [][]string
	err   error
	short bool
}

func (m *mockEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	m.calls = append(m.calls, texts)
	if m.err != nil {
		return domain.BatchEmbeddingResult{}, m.err
	}
	n := len(texts)
	if m.short {
		n--
	}
	out := make([][]float32, n)
	for i := range out {
		out[i] = []float32{float32(len(texts[i])), 1}
	}
	return domain.BatchEmbeddingResult{Embeddings: out, TotalTokens: 2 * len(texts)}, nil
}

func catalogPlants() []plant.Plant {
	return []plant.Plant{
		{ID: "Asclepias tuberosa", ScientificName: "Asclepias tuberosa", CommonName: "Butterfly Milkweed"},
		{ID: "Carex pensylvanica", ScientificName: "Carex pensylvanica", CommonName: "Pennsylvania Sedge",
			Embedding: []float32{0.3, 0.4}},
		{ID: "Monarda fistulosa", ScientificName: "Monarda fistulosa", CommonName: "Wild Bergamot"},
	}
}
