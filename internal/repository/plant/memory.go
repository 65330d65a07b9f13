package plant

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/kailas-cloud/plantdex/internal/domain"
	domplant "github.com/kailas-cloud/plantdex/internal/domain/plant"
	"github.com/kailas-cloud/plantdex/internal/domain/search/predicate"
)

// Memory is an in-process catalog. Predicates are evaluated with their own
// Matches, so it behaves exactly like the in-process semantic path.
type Memory struct {
	mu     sync.RWMutex
	plants []domplant.Plant
	index  map[string]int
}

// NewMemory creates a catalog holding plants.
func NewMemory(plants ...domplant.Plant) *Memory {
	m := &Memory{index: map[string]int{}}
	_, _ = m.Upsert(context.Background(), plants)
	return m
}

// LoadFile reads a JSON array of plants.
func LoadFile(path string) ([]domplant.Plant, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var plants []domplant.Plant
	if err := json.Unmarshal(raw, &plants); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	for i := range plants {
		plants[i].Normalize()
	}
	return plants, nil
}

// Upsert replaces plants wholesale by ID. Returns the number of new plants.
func (m *Memory) Upsert(_ context.Context, plants []domplant.Plant) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	created := 0
	for _, p := range plants {
		p.Normalize()
		if p.ID == "" {
			return created, fmt.Errorf("upsert: %w", domain.NewInvalidRequest("_id", "plant without scientific name"))
		}
		if i, ok := m.index[p.ID]; ok {
			m.plants[i] = p
			continue
		}
		m.index[p.ID] = len(m.plants)
		m.plants = append(m.plants, p)
		created++
	}
	return created, nil
}

// SetEmbedding stores a plant's embedding vector.
func (m *Memory) SetEmbedding(_ context.Context, id string, vec []float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.index[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.plants[i].Embedding = slices.Clone(vec)
	return nil
}

// Get returns a plant by ID.
func (m *Memory) Get(_ context.Context, id string) (domplant.Plant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.index[id]
	if !ok {
		return domplant.Plant{}, domain.ErrNotFound
	}
	return m.plants[i], nil
}

// Find returns matching plants sorted by opts.Sort, stable on insertion order.
func (m *Memory) Find(
	_ context.Context, pred predicate.Predicate, opts predicate.FindOptions,
) ([]domplant.Plant, error) {
	return sortAndWindow(m.matching(pred), opts), nil
}

// Count returns the number of matching plants.
func (m *Memory) Count(_ context.Context, pred predicate.Predicate) (int, error) {
	return len(m.matching(pred)), nil
}

// Distinct returns sorted non-empty values of a string field.
func (m *Memory) Distinct(_ context.Context, field string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []string
	for i := range m.plants {
		for _, v := range m.plants[i].Strings(field) {
			if v != "" {
				out = append(out, v)
			}
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// Facet counts matching plants per value of field.
func (m *Memory) Facet(
	_ context.Context, pred predicate.Predicate, field string, unwind bool,
) (map[string]int, error) {
	return facetOf(m.matching(pred), field, unwind), nil
}

// Bounds returns min and max of a numeric field over matching plants.
func (m *Memory) Bounds(
	_ context.Context, pred predicate.Predicate, field string,
) (float64, float64, bool, error) {
	lo, hi, ok := boundsOf(m.matching(pred), field)
	return lo, hi, ok, nil
}

// EnsureIndex is a no-op: the memory catalog evaluates predicates directly.
func (m *Memory) EnsureIndex(context.Context) (bool, error) { return false, nil }

// Ping always succeeds.
func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) matching(pred predicate.Predicate) []domplant.Plant {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return filterPlants(m.plants, pred)
}
