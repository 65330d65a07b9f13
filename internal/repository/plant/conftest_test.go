package plant

import (
	"context"
	"encoding/json"

	"github.com/kailas-cloud/plantdex/internal/db"
	domplant "github.com/kailas-cloud/plantdex/internal/domain/plant"
)

const testPrefix = "plantdex:"

// mockStore implements the consumer interface for tests.
type mockStore struct {
	pingFn             func(ctx context.Context) error
	jsonSetMultiFn     func(ctx context.Context, items []db.JSONSetItem) error
	jsonSetFn          func(ctx context.Context, key, path string, data []byte) error
	jsonGetFn          func(ctx context.Context, key string, paths ...string) ([]byte, error)
	existsFn           func(ctx context.Context, key string) (bool, error)
	existsMultiFn      func(ctx context.Context, keys []string) ([]bool, error)
	createIndexFn      func(ctx context.Context, def *db.IndexDefinition) error
	dropIndexFn        func(ctx context.Context, name string) error
	indexExistsFn      func(ctx context.Context, name string) (bool, error)
	searchCountFn      func(ctx context.Context, index, query string) (int, error)
	searchCountMultiFn func(ctx context.Context, index string, queries []string) ([]int, error)
	aggregateFn        func(ctx context.Context, q *db.AggregateQuery) ([]db.Row, error)
	tagValsFn          func(ctx context.Context, index, field string) ([]string, error)
}

func (m *mockStore) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

func (m *mockStore) JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error {
	if m.jsonSetMultiFn != nil {
		return m.jsonSetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetFn != nil {
		return m.jsonSetFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	if m.jsonGetFn != nil {
		return m.jsonGetFn(ctx, key, paths...)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) ExistsMulti(ctx context.Context, keys []string) ([]bool, error) {
	if m.existsMultiFn != nil {
		return m.existsMultiFn(ctx, keys)
	}
	return make([]bool, len(keys)), nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) DropIndex(ctx context.Context, name string) error {
	if m.dropIndexFn != nil {
		return m.dropIndexFn(ctx, name)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) SearchCount(ctx context.Context, index, query string) (int, error) {
	if m.searchCountFn != nil {
		return m.searchCountFn(ctx, index, query)
	}
	return 0, nil
}

func (m *mockStore) SearchCountMulti(ctx context.Context, index string, queries []string) ([]int, error) {
	if m.searchCountMultiFn != nil {
		return m.searchCountMultiFn(ctx, index, queries)
	}
	return make([]int, len(queries)), nil
}

func (m *mockStore) Aggregate(ctx context.Context, q *db.AggregateQuery) ([]db.Row, error) {
	if m.aggregateFn != nil {
		return m.aggregateFn(ctx, q)
	}
	return nil, nil
}

func (m *mockStore) TagVals(ctx context.Context, index, field string) ([]string, error) {
	if m.tagValsFn != nil {
		return m.tagValsFn(ctx, index, field)
	}
	return nil, nil
}

func ptr(v float64) *float64 { return &v }

func samplePlants() []domplant.Plant {
	return []domplant.Plant{
		{
			ScientificName: "Asclepias tuberosa", CommonName: "Butterfly Weed", Genus: "Asclepias",
			Height: ptr(2), Spread: ptr(1.5), RecommendationScore: 9,
			States: []string{"NY", "NJ"}, SunExposure: []string{"Sun"},
			FloweringMonths: []int{5, 6, 7}, Showy: true, Superplant: true,
			Embedding: []float32{1, 0},
		},
		{
			ScientificName: "Carex pensylvanica", CommonName: "Pennsylvania Sedge", Genus: "Carex",
			Height: ptr(0.5), Spread: ptr(1), RecommendationScore: 7,
			States: []string{"NY"}, SunExposure: []string{"Shade", "Part Shade"},
			FloweringMonths: []int{3, 4},
		},
		{
			ScientificName: "Monarda fistulosa", CommonName: "wild bergamot", Genus: "Monarda",
			RecommendationScore: 9, States: []string{"PA"}, Showy: true,
		},
	}
}

// docRows encodes plants the way FT.AGGREGATE LOAD 1 $ returns them.
func docRows(plants ...domplant.Plant) []db.Row {
	rows := make([]db.Row, len(plants))
	for i := range plants {
		p := plants[i]
		p.Normalize()
		data, err := json.Marshal(p)
		if err != nil {
			panic(err)
		}
		rows[i] = db.Row{"$": string(data)}
	}
	return rows
}
