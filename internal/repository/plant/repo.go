package plant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/plantdex/internal/db"
	"github.com/kailas-cloud/plantdex/internal/domain"
	domplant "github.com/kailas-cloud/plantdex/internal/domain/plant"
	"github.com/kailas-cloud/plantdex/internal/domain/search/order"
	"github.com/kailas-cloud/plantdex/internal/domain/search/predicate"
	"github.com/kailas-cloud/plantdex/internal/logger"
)

// scanWindow caps how many documents one aggregation returns when a request
// asks for every match. It matches the query engine's default result cap.
const scanWindow = 10000

const upsertBatch = 500

// store is the consumer interface for the plant catalog (ISP).
//
//nolint:interfacebloat // catalog needs JSON documents, index lifecycle and aggregations
type store interface {
	Ping(ctx context.Context) error
	JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
	ExistsMulti(ctx context.Context, keys []string) ([]bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
	SearchCountMulti(ctx context.Context, index string, queries []string) ([]int, error)
	Aggregate(ctx context.Context, q *db.AggregateQuery) ([]db.Row, error)
	TagVals(ctx context.Context, index, field string) ([]string, error)
}

// Repo is the plant catalog on Redis JSON documents and the Redis Query Engine.
type Repo struct {
	store  store
	prefix string
}

// New creates a plant repository. prefix namespaces keys and the index, e.g. "plantdex:".
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

func (r *Repo) index() string { return indexName(r.prefix) }

// Ping checks the backing store.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.store.Ping(ctx); err != nil {
		return fmt.Errorf("plant store: %w", err)
	}
	return nil
}

// EnsureIndex creates the plant index when missing. Reports whether it was created.
func (r *Repo) EnsureIndex(ctx context.Context) (bool, error) {
	exists, err := r.store.IndexExists(ctx, r.index())
	if err != nil {
		return false, fmt.Errorf("check index: %w", err)
	}
	if exists {
		return false, nil
	}

	def, err := buildIndex(r.prefix)
	if err != nil {
		return false, fmt.Errorf("build index: %w", err)
	}
	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return false, nil
		}
		return false, fmt.Errorf("create index: %w", err)
	}
	return true, nil
}

// DropIndex removes the plant index and keeps the documents.
func (r *Repo) DropIndex(ctx context.Context) error {
	if err := r.store.DropIndex(ctx, r.index()); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index: %w", err)
	}
	return nil
}

// Upsert replaces plants wholesale by ID. Returns the number of new plants.
func (r *Repo) Upsert(ctx context.Context, plants []domplant.Plant) (int, error) {
	created := 0
	for batch := range slices.Chunk(plants, upsertBatch) {
		keys := make([]string, len(batch))
		items := make([]db.JSONSetItem, len(batch))
		for i := range batch {
			p := batch[i]
			p.Normalize()
			if p.ID == "" {
				return created, fmt.Errorf("upsert: %w", domain.NewInvalidRequest("_id", "plant without scientific name"))
			}
			data, err := json.Marshal(p)
			if err != nil {
				return created, fmt.Errorf("marshal plant %s: %w", p.ID, err)
			}
			keys[i] = docKey(r.prefix, p.ID)
			items[i] = db.JSONSetItem{Key: keys[i], Path: "$", Data: data}
		}

		exists, err := r.store.ExistsMulti(ctx, keys)
		if err != nil {
			return created, fmt.Errorf("check plants: %w", err)
		}
		if err := r.store.JSONSetMulti(ctx, items); err != nil {
			return created, fmt.Errorf("write plants: %w", err)
		}
		for _, ok := range exists {
			if !ok {
				created++
			}
		}
	}
	return created, nil
}

// SetEmbedding stores a plant's embedding vector.
func (r *Repo) SetEmbedding(ctx context.Context, id string, vec []float32) error {
	key := docKey(r.prefix, id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check plant: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}

	data, err := json.Marshal(vec)
	if err != nil {
		return fmt.Errorf("marshal embedding: %w", err)
	}
	if err := r.store.JSONSet(ctx, key, "$.embedding", data); err != nil {
		return fmt.Errorf("write embedding: %w", err)
	}
	return nil
}

// Get returns a plant by ID.
func (r *Repo) Get(ctx context.Context, id string) (domplant.Plant, error) {
	raw, err := r.store.JSONGet(ctx, docKey(r.prefix, id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domplant.Plant{}, domain.ErrNotFound
		}
		return domplant.Plant{}, fmt.Errorf("get plant: %w", err)
	}
	p, err := decodePlant(raw)
	if err != nil {
		return domplant.Plant{}, err
	}
	return p, nil
}

// Find returns matching plants sorted and windowed per opts.
func (r *Repo) Find(
	ctx context.Context, pred predicate.Predicate, opts predicate.FindOptions,
) ([]domplant.Plant, error) {
	t := translate(pred)
	if !t.exact() {
		docs, err := r.materialize(ctx, t)
		if err != nil {
			return nil, err
		}
		return sortAndWindow(docs, opts), nil
	}

	q := &db.AggregateQuery{
		IndexName: r.index(),
		Query:     t.query,
		Load:      []string{"$"},
		SortBy:    sortKeys(opts.Sort),
		Offset:    opts.Skip,
		Limit:     opts.Limit,
	}
	if q.Limit <= 0 {
		q.Limit = scanWindow
	}
	docs, err := r.aggregateDocs(ctx, q)
	if err != nil {
		return nil, err
	}
	if !opts.IncludeEmbedding {
		for i := range docs {
			docs[i].Embedding = nil
		}
	}
	return docs, nil
}

// Count returns the number of matching plants.
func (r *Repo) Count(ctx context.Context, pred predicate.Predicate) (int, error) {
	t := translate(pred)
	if !t.exact() {
		docs, err := r.materialize(ctx, t)
		if err != nil {
			return 0, err
		}
		return len(docs), nil
	}

	n, err := r.store.SearchCount(ctx, r.index(), t.query)
	if err != nil {
		return 0, fmt.Errorf("count plants: %w", err)
	}
	return n, nil
}

// Distinct returns sorted non-empty values of a TAG field across the catalog.
func (r *Repo) Distinct(ctx context.Context, field string) ([]string, error) {
	if !isTag(field) {
		return nil, fmt.Errorf("distinct %s: field is not a tag", field)
	}
	vals, err := r.store.TagVals(ctx, r.index(), attrs[field])
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", field, err)
	}
	out := slices.DeleteFunc(vals, func(v string) bool { return v == "" })
	slices.Sort(out)
	return slices.Compact(out), nil
}

// Facet counts matching plants per value of field. Each value is counted by
// one search in a single pipeline; values with no match are omitted.
func (r *Repo) Facet(
	ctx context.Context, pred predicate.Predicate, field string, unwind bool,
) (map[string]int, error) {
	t := translate(pred)
	if !t.exact() || !isTag(field) {
		docs, err := r.materialize(ctx, t)
		if err != nil {
			return nil, err
		}
		return facetOf(docs, field, unwind), nil
	}

	var values []string
	if domplant.IsBool(field) {
		values = []string{"true", "false"}
	} else {
		var err error
		if values, err = r.Distinct(ctx, field); err != nil {
			return nil, err
		}
	}
	if len(values) == 0 {
		return map[string]int{}, nil
	}

	queries := make([]string, len(values))
	for i, v := range values {
		queries[i] = db.And(t.query, db.TagQuery(attrs[field], v))
	}
	counts, err := r.store.SearchCountMulti(ctx, r.index(), queries)
	if err != nil {
		return nil, fmt.Errorf("facet %s: %w", field, err)
	}

	out := make(map[string]int, len(values))
	for i, v := range values {
		if counts[i] > 0 {
			out[v] = counts[i]
		}
	}
	return out, nil
}

// Bounds returns min and max of a numeric field over matching plants.
func (r *Repo) Bounds(
	ctx context.Context, pred predicate.Predicate, field string,
) (float64, float64, bool, error) {
	t := translate(pred)
	if !t.exact() || !isNumeric(field) {
		docs, err := r.materialize(ctx, t)
		if err != nil {
			return 0, 0, false, err
		}
		lo, hi, ok := boundsOf(docs, field)
		return lo, hi, ok, nil
	}

	attr := "@" + attrs[field]
	rows, err := r.store.Aggregate(ctx, &db.AggregateQuery{
		IndexName: r.index(),
		Query:     db.And(t.query, db.HasNumber(attrs[field])),
		GroupBy:   []string{},
		Reducers: []db.Reducer{
			{Func: "COUNT", As: "n"},
			{Func: "MIN", Args: []string{attr}, As: "lo"},
			{Func: "MAX", Args: []string{attr}, As: "hi"},
		},
	})
	if err != nil {
		return 0, 0, false, fmt.Errorf("bounds %s: %w", field, err)
	}
	return parseBounds(rows)
}

func parseBounds(rows []db.Row) (float64, float64, bool, error) {
	if len(rows) == 0 || rows[0]["n"] == "" || rows[0]["n"] == "0" {
		return 0, 0, false, nil
	}
	lo, err := strconv.ParseFloat(rows[0]["lo"], 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("parse min: %w", err)
	}
	hi, err := strconv.ParseFloat(rows[0]["hi"], 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("parse max: %w", err)
	}
	return lo, hi, true, nil
}

// materialize loads every document matching the translated query and keeps
// those that also satisfy the residual clauses.
func (r *Repo) materialize(ctx context.Context, t translated) ([]domplant.Plant, error) {
	docs, err := r.aggregateDocs(ctx, &db.AggregateQuery{
		IndexName: r.index(),
		Query:     t.query,
		Load:      []string{"$"},
		Limit:     scanWindow,
	})
	if err != nil {
		return nil, err
	}
	return filterPlants(docs, t.residual), nil
}

func (r *Repo) aggregateDocs(ctx context.Context, q *db.AggregateQuery) ([]domplant.Plant, error) {
	rows, err := r.store.Aggregate(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("load plants: %w", err)
	}
	if q.Limit == scanWindow && len(rows) >= scanWindow {
		logger.FromContext(ctx).Warn("plant scan truncated",
			zap.Int("limit", scanWindow),
			zap.String("query", q.Query),
		)
	}
	docs := make([]domplant.Plant, 0, len(rows))
	for _, row := range rows {
		p, err := decodePlant([]byte(row["$"]))
		if err != nil {
			return nil, err
		}
		docs = append(docs, p)
	}
	return docs, nil
}

// decodePlant accepts a bare document or the one-element array JSONPath replies use.
func decodePlant(raw []byte) (domplant.Plant, error) {
	var p domplant.Plant
	if s := strings.TrimSpace(string(raw)); strings.HasPrefix(s, "[") {
		var arr []domplant.Plant
		if err := json.Unmarshal(raw, &arr); err != nil {
			return p, fmt.Errorf("decode plant: %w", err)
		}
		if len(arr) == 0 {
			return p, domain.ErrNotFound
		}
		p = arr[0]
	} else if err := json.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("decode plant: %w", err)
	}
	p.Normalize()
	return p, nil
}

func sortKeys(keys []order.Key) []db.SortKey {
	out := make([]db.SortKey, 0, len(keys))
	for _, k := range keys {
		attr, ok := attrs[k.Field]
		if !ok {
			continue
		}
		out = append(out, db.SortKey{Field: attr, Desc: k.Dir == order.Desc})
	}
	return out
}
