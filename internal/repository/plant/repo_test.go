package plant

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/plantdex/internal/db"
	"github.com/kailas-cloud/plantdex/internal/domain"
	domplant "github.com/kailas-cloud/plantdex/internal/domain/plant"
	"github.com/kailas-cloud/plantdex/internal/domain/search/order"
	"github.com/kailas-cloud/plantdex/internal/domain/search/predicate"
	"github.com/kailas-cloud/plantdex/internal/logger"
)

var errStore = errors.New("connection refused")

func TestEnsureIndex(t *testing.T) {
	t.Run("creates missing index", func(t *testing.T) {
		var created *db.IndexDefinition
		ms := &mockStore{
			createIndexFn: func(_ context.Context, def *db.IndexDefinition) error {
				created = def
				return nil
			},
		}
		ok, err := New(ms, testPrefix).EnsureIndex(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
		require.NotNil(t, created)
		assert.Equal(t, db.StorageJSON, created.StorageType)
	})

	t.Run("existing index untouched", func(t *testing.T) {
		ms := &mockStore{
			indexExistsFn: func(context.Context, string) (bool, error) { return true, nil },
			createIndexFn: func(context.Context, *db.IndexDefinition) error {
				t.Fatal("must not create")
				return nil
			},
		}
		ok, err := New(ms, testPrefix).EnsureIndex(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("concurrent creation tolerated", func(t *testing.T) {
		ms := &mockStore{
			createIndexFn: func(context.Context, *db.IndexDefinition) error { return db.ErrIndexExists },
		}
		ok, err := New(ms, testPrefix).EnsureIndex(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestDropIndex_MissingIsFine(t *testing.T) {
	ms := &mockStore{
		dropIndexFn: func(_ context.Context, name string) error {
			assert.Equal(t, "plantdex:plants", name)
			return db.ErrIndexNotFound
		},
	}
	require.NoError(t, New(ms, testPrefix).DropIndex(context.Background()))
}

func TestUpsert(t *testing.T) {
	var written []db.JSONSetItem
	ms := &mockStore{
		existsMultiFn: func(_ context.Context, keys []string) ([]bool, error) {
			return []bool{true, false, false}, nil
		},
		jsonSetMultiFn: func(_ context.Context, items []db.JSONSetItem) error {
			written = items
			return nil
		},
	}

	created, err := New(ms, testPrefix).Upsert(context.Background(), samplePlants())
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	require.Len(t, written, 3)
	assert.Equal(t, "plantdex:plant:Asclepias tuberosa", written[0].Key)
	assert.Equal(t, "$", written[0].Path)

	var back domplant.Plant
	require.NoError(t, json.Unmarshal(written[1].Data, &back))
	assert.Equal(t, "Carex pensylvanica", back.ID)
	assert.Equal(t, []string{}, back.Availability)
}

func TestUpsert_RejectsMissingID(t *testing.T) {
	_, err := New(&mockStore{}, testPrefix).Upsert(context.Background(), []domplant.Plant{{CommonName: "nameless"}})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestSetEmbedding(t *testing.T) {
	t.Run("writes vector path", func(t *testing.T) {
		var path, data string
		ms := &mockStore{
			existsFn: func(context.Context, string) (bool, error) { return true, nil },
			jsonSetFn: func(_ context.Context, key, p string, d []byte) error {
				assert.Equal(t, "plantdex:plant:Carex pensylvanica", key)
				path, data = p, string(d)
				return nil
			},
		}
		err := New(ms, testPrefix).SetEmbedding(context.Background(), "Carex pensylvanica", []float32{0.5, 1})
		require.NoError(t, err)
		assert.Equal(t, "$.embedding", path)
		assert.Equal(t, "[0.5,1]", data)
	})

	t.Run("missing plant", func(t *testing.T) {
		err := New(&mockStore{}, testPrefix).SetEmbedding(context.Background(), "nope", []float32{1})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestGet(t *testing.T) {
	ms := &mockStore{
		jsonGetFn: func(_ context.Context, key string, _ ...string) ([]byte, error) {
			if key != "plantdex:plant:Carex pensylvanica" {
				return nil, db.ErrKeyNotFound
			}
			return []byte(docRows(samplePlants()[1])[0]["$"]), nil
		},
	}
	r := New(ms, testPrefix)

	p, err := r.Get(context.Background(), "Carex pensylvanica")
	require.NoError(t, err)
	assert.Equal(t, "Pennsylvania Sedge", p.CommonName)

	_, err = r.Get(context.Background(), "Quercus alba")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDecodePlant_ArrayReply(t *testing.T) {
	p, err := decodePlant([]byte(`[{"_id":"Carex","Common Name":"Sedge"}]`))
	require.NoError(t, err)
	assert.Equal(t, "Carex", p.ScientificName)
	assert.Equal(t, []string{}, p.States)
}

func TestFind_ServerSide(t *testing.T) {
	var got *db.AggregateQuery
	ms := &mockStore{
		aggregateFn: func(_ context.Context, q *db.AggregateQuery) ([]db.Row, error) {
			got = q
			return docRows(samplePlants()[0]), nil
		},
	}

	pred := predicate.New(
		predicate.IsTrue{Filter: domplant.FieldShowy, Field: domplant.FieldShowy},
		predicate.Exists{Field: domplant.FieldRecommendation},
	)
	docs, err := New(ms, testPrefix).Find(context.Background(), pred, predicate.FindOptions{
		Sort:  []order.Key{{Field: domplant.FieldRecommendation, Dir: order.Desc}, {Field: domplant.FieldCommonName, Dir: order.Asc}},
		Skip:  20,
		Limit: 20,
	})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Nil(t, docs[0].Embedding)

	assert.Equal(t, "plantdex:plants", got.IndexName)
	assert.Equal(t, "@showy:{true} @reco:[-inf +inf]", got.Query)
	assert.Equal(t, []string{"$"}, got.Load)
	assert.Equal(t, []db.SortKey{{Field: "reco", Desc: true}, {Field: "common_name"}}, got.SortBy)
	assert.Equal(t, 20, got.Offset)
	assert.Equal(t, 20, got.Limit)
}

func TestFind_ResidualEvaluatedInProcess(t *testing.T) {
	ms := &mockStore{
		aggregateFn: func(_ context.Context, q *db.AggregateQuery) ([]db.Row, error) {
			assert.Equal(t, "*", q.Query)
			assert.Equal(t, scanWindow, q.Limit)
			assert.Empty(t, q.SortBy)
			return docRows(samplePlants()...), nil
		},
	}

	pred := predicate.New(predicate.Exists{Field: domplant.FieldEmbedding})
	docs, err := New(ms, testPrefix).Find(context.Background(), pred, predicate.FindOptions{IncludeEmbedding: true})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Asclepias tuberosa", docs[0].ID)
	assert.Equal(t, []float32{1, 0}, docs[0].Embedding)
}

func TestCount(t *testing.T) {
	ms := &mockStore{
		searchCountFn: func(_ context.Context, index, query string) (int, error) {
			assert.Equal(t, "plantdex:plants", index)
			assert.Equal(t, "@states:{NY}", query)
			return 2, nil
		},
		aggregateFn: func(context.Context, *db.AggregateQuery) ([]db.Row, error) {
			return docRows(samplePlants()...), nil
		},
	}
	r := New(ms, testPrefix)

	n, err := r.Count(context.Background(), predicate.New(
		predicate.AnyOf{Filter: domplant.FieldStates, Field: domplant.FieldStates, Values: []string{"NY"}},
	))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = r.Count(context.Background(), predicate.New(predicate.NameMatch{Text: "BERGAMOT"}))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCount_StoreError(t *testing.T) {
	ms := &mockStore{
		searchCountFn: func(context.Context, string, string) (int, error) { return 0, errStore },
	}
	_, err := New(ms, testPrefix).Count(context.Background(), predicate.Predicate{})
	assert.ErrorIs(t, err, errStore)
}

func TestDistinct(t *testing.T) {
	ms := &mockStore{
		tagValsFn: func(_ context.Context, _, field string) ([]string, error) {
			assert.Equal(t, "sun", field)
			return []string{"Sun", "", "Part Shade", "Shade"}, nil
		},
	}
	r := New(ms, testPrefix)

	got, err := r.Distinct(context.Background(), domplant.FieldSunExposure)
	require.NoError(t, err)
	assert.Equal(t, []string{"Part Shade", "Shade", "Sun"}, got)

	_, err = r.Distinct(context.Background(), domplant.FieldHeight)
	assert.Error(t, err)
}

func TestFacet_Pipelined(t *testing.T) {
	ms := &mockStore{
		tagValsFn: func(context.Context, string, string) ([]string, error) {
			return []string{"NY", "NJ", "PA"}, nil
		},
		searchCountMultiFn: func(_ context.Context, _ string, queries []string) ([]int, error) {
			assert.Equal(t, []string{
				"@showy:{true} @states:{NJ}",
				"@showy:{true} @states:{NY}",
				"@showy:{true} @states:{PA}",
			}, queries)
			return []int{1, 1, 0}, nil
		},
	}

	pred := predicate.New(predicate.IsTrue{Filter: domplant.FieldShowy, Field: domplant.FieldShowy})
	got, err := New(ms, testPrefix).Facet(context.Background(), pred, domplant.FieldStates, true)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"NJ": 1, "NY": 1}, got)
}

func TestFacet_Boolean(t *testing.T) {
	ms := &mockStore{
		searchCountMultiFn: func(_ context.Context, _ string, queries []string) ([]int, error) {
			assert.Equal(t, []string{"@superplant:{true}", "@superplant:{false}"}, queries)
			return []int{1, 2}, nil
		},
	}
	got, err := New(ms, testPrefix).Facet(context.Background(), predicate.Predicate{}, domplant.FieldSuperplant, false)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"true": 1, "false": 2}, got)
}

func TestFacet_Residual(t *testing.T) {
	ms := &mockStore{
		aggregateFn: func(context.Context, *db.AggregateQuery) ([]db.Row, error) {
			return docRows(samplePlants()...), nil
		},
		searchCountMultiFn: func(context.Context, string, []string) ([]int, error) {
			t.Fatal("residual facets are counted in process")
			return nil, nil
		},
	}
	pred := predicate.New(predicate.NameMatch{Text: "e"})
	got, err := New(ms, testPrefix).Facet(context.Background(), pred, domplant.FieldSunExposure, true)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Sun": 1, "Shade": 1, "Part Shade": 1}, got)
}

func TestBounds(t *testing.T) {
	t.Run("aggregated", func(t *testing.T) {
		ms := &mockStore{
			aggregateFn: func(_ context.Context, q *db.AggregateQuery) ([]db.Row, error) {
				assert.Equal(t, "@height:[-inf +inf]", q.Query)
				assert.NotNil(t, q.GroupBy)
				assert.Empty(t, q.GroupBy)
				return []db.Row{{"n": "2", "lo": "0.5", "hi": "2"}}, nil
			},
		}
		lo, hi, ok, err := New(ms, testPrefix).Bounds(context.Background(), predicate.Predicate{}, domplant.FieldHeight)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.InDelta(t, 0.5, lo, 1e-9)
		assert.InDelta(t, 2, hi, 1e-9)
	})

	t.Run("no data", func(t *testing.T) {
		ms := &mockStore{
			aggregateFn: func(context.Context, *db.AggregateQuery) ([]db.Row, error) {
				return []db.Row{{"n": "0", "lo": "inf", "hi": "-inf"}}, nil
			},
		}
		_, _, ok, err := New(ms, testPrefix).Bounds(context.Background(), predicate.Predicate{}, domplant.FieldSpread)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("malformed reply", func(t *testing.T) {
		ms := &mockStore{
			aggregateFn: func(context.Context, *db.AggregateQuery) ([]db.Row, error) {
				return []db.Row{{"n": "1", "lo": "x", "hi": "1"}}, nil
			},
		}
		_, _, _, err := New(ms, testPrefix).Bounds(context.Background(), predicate.Predicate{}, domplant.FieldSpread)
		assert.Error(t, err)
	})
}

func TestFind_WarnsWhenScanTruncated(t *testing.T) {
	row := docRows(samplePlants()[0])
	ms := &mockStore{
		aggregateFn: func(_ context.Context, q *db.AggregateQuery) ([]db.Row, error) {
			return slices.Repeat(row, q.Limit), nil
		},
	}
	repo := New(ms, testPrefix)

	core, logs := observer.New(zap.WarnLevel)
	ctx := logger.ContextWithLogger(context.Background(), zap.New(core))

	docs, err := repo.Find(ctx, predicate.New(), predicate.FindOptions{Limit: 20})
	require.NoError(t, err)
	assert.Len(t, docs, 20)
	assert.Zero(t, logs.Len())

	docs, err = repo.Find(ctx, predicate.New(), predicate.FindOptions{})
	require.NoError(t, err)
	assert.Len(t, docs, scanWindow)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "plant scan truncated", entry.Message)
	assert.EqualValues(t, scanWindow, entry.ContextMap()["limit"])
}
