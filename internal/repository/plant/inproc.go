package plant

import (
	"math"
	"slices"
	"strconv"

	domplant "github.com/kailas-cloud/plantdex/internal/domain/plant"
	"github.com/kailas-cloud/plantdex/internal/domain/search/order"
	"github.com/kailas-cloud/plantdex/internal/domain/search/predicate"
)

// The helpers below evaluate catalog operations over plants that already
// match a predicate. The memory catalog uses them for everything; the Redis
// catalog uses them when a predicate has clauses the query engine cannot express.

func filterPlants(plants []domplant.Plant, pred predicate.Predicate) []domplant.Plant {
	var out []domplant.Plant
	for i := range plants {
		if pred.Matches(&plants[i]) {
			out = append(out, plants[i])
		}
	}
	return out
}

// sortAndWindow sorts stably by opts.Sort, applies Skip and Limit and strips
// embeddings unless requested.
func sortAndWindow(plants []domplant.Plant, opts predicate.FindOptions) []domplant.Plant {
	if len(opts.Sort) > 0 {
		slices.SortStableFunc(plants, func(a, b domplant.Plant) int {
			return order.Compare(opts.Sort, &a, &b)
		})
	}
	if opts.Skip > 0 {
		plants = plants[min(opts.Skip, len(plants)):]
	}
	if opts.Limit > 0 && len(plants) > opts.Limit {
		plants = plants[:opts.Limit]
	}
	if !opts.IncludeEmbedding {
		for i := range plants {
			plants[i].Embedding = nil
		}
	}
	return plants
}

func facetOf(plants []domplant.Plant, field string, unwind bool) map[string]int {
	counts := map[string]int{}
	for i := range plants {
		p := &plants[i]
		if domplant.IsBool(field) {
			counts[strconv.FormatBool(p.Bool(field))]++
			continue
		}
		values := p.Strings(field)
		if !unwind && len(values) > 1 {
			values = values[:1]
		}
		for _, v := range values {
			counts[v]++
		}
	}
	return counts
}

func boundsOf(plants []domplant.Plant, field string) (float64, float64, bool) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range plants {
		if v, ok := plants[i].Number(field); ok {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 0, false
	}
	return lo, hi, true
}
