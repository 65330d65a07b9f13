package plants

import (
	"github.com/kailas-cloud/plantdex/internal/domain/search/facet"
	"github.com/kailas-cloud/plantdex/internal/domain/search/order"
	"github.com/kailas-cloud/plantdex/internal/domain/search/predicate"
	"github.com/kailas-cloud/plantdex/internal/domain/search/request"
)

// BuildPredicate translates request filter values into owned clauses.
func BuildPredicate(filters []facet.Filter, req *request.Request) predicate.Predicate {
	var clauses []predicate.Clause
	for _, f := range filters {
		if c, ok := clauseFor(f, req); ok {
			clauses = append(clauses, c)
		}
	}
	return predicate.New(clauses...)
}

func clauseFor(f facet.Filter, req *request.Request) (predicate.Clause, bool) {
	switch f := f.(type) {
	case facet.Array:
		values := req.Values(f.Field)
		if len(values) == 0 {
			return nil, false
		}
		if f.Storage == facet.StorageDelimited {
			return predicate.Tokens{Filter: f.Field, Field: f.Field, Values: values}, true
		}
		return predicate.AnyOf{Filter: f.Field, Field: f.Field, Values: values}, true

	case facet.Boolean:
		if len(req.Values(f.Field)) == 0 {
			return nil, false
		}
		return predicate.IsTrue{Filter: f.Field, Field: f.Field}, true

	case facet.Range:
		rg, ok := req.Range(f.Field)
		if !ok || rg.Min > rg.Max {
			return nil, false
		}
		lo, hi, ok := f.Clamp(rg.Min, rg.Max)
		if !ok || f.IsFullDomain(lo, hi) {
			return nil, false
		}
		if f.ByNumber != "" {
			nums := make([]int, 0, hi-lo+1)
			for n := lo; n <= hi; n++ {
				nums = append(nums, n)
			}
			return predicate.AnyNumber{Filter: f.Field, Field: f.ByNumber, Values: nums}, true
		}
		return predicate.Between{Filter: f.Field, Field: f.Field, Min: float64(lo), Max: float64(hi)}, true
	}
	return nil, false
}

// sortGuards requires every sort key to be present.
func sortGuards(keys []order.Key) []predicate.Clause {
	guards := make([]predicate.Clause, 0, len(keys))
	for _, k := range keys {
		guards = append(guards, predicate.Exists{Field: k.Field})
	}
	return guards
}
