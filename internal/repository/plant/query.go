package plant

import (
	"math"
	"slices"

	"github.com/kailas-cloud/plantdex/internal/db"
	domplant "github.com/kailas-cloud/plantdex/internal/domain/plant"
	"github.com/kailas-cloud/plantdex/internal/domain/search/predicate"
)

// translated is a predicate split into a query engine string and the clauses
// left for in-process evaluation.
type translated struct {
	query    string
	residual predicate.Predicate
}

func (t translated) exact() bool { return t.residual.IsEmpty() }

// translate renders every clause the query engine can evaluate. Name
// substrings, delimited tokens, array existence and embedding presence stay residual.
func translate(pred predicate.Predicate) translated {
	var parts []string
	var rest []predicate.Clause

	for _, c := range pred.Clauses() {
		q, ok := clauseQuery(c)
		if !ok {
			rest = append(rest, c)
			continue
		}
		parts = append(parts, q)
	}
	return translated{query: db.And(parts...), residual: predicate.New(rest...)}
}

func clauseQuery(c predicate.Clause) (string, bool) {
	switch c := c.(type) {
	case predicate.AnyOf:
		if len(c.Values) == 0 || !isTag(c.Field) {
			return "", false
		}
		return db.TagQuery(attrs[c.Field], c.Values...), true

	case predicate.IsTrue:
		if !domplant.IsBool(c.Field) {
			return "", false
		}
		return db.TagQuery(attrs[c.Field], "true"), true

	case predicate.Between:
		if !isNumeric(c.Field) {
			return "", false
		}
		return db.NumericQuery(attrs[c.Field], c.Min, c.Max), true

	case predicate.AnyNumber:
		if len(c.Values) == 0 || !isNumeric(c.Field) {
			return "", false
		}
		values := slices.Sorted(slices.Values(c.Values))
		parts := make([]string, 0, len(values))
		for _, v := range slices.Compact(values) {
			parts = append(parts, db.NumericQuery(attrs[c.Field], float64(v), float64(v)))
		}
		return db.Or(parts...), true

	case predicate.IDIn:
		if len(c.IDs) == 0 {
			return "", false
		}
		return db.TagQuery(attrs[domplant.FieldID], c.IDs...), true

	case predicate.Exists:
		return existsQuery(c.Field)
	}
	return "", false
}

// existsQuery mirrors Plant.Has: scalar text and flags always exist, numbers
// must be present, anything else is checked in process.
func existsQuery(field string) (string, bool) {
	switch {
	case slices.Contains(domplant.NumberFields, field):
		return db.NumericQuery(attrs[field], math.Inf(-1), math.Inf(1)), true
	case field == domplant.FieldID,
		field == domplant.FieldScientificName,
		field == domplant.FieldCommonName,
		slices.Contains(domplant.ScalarFields, field),
		domplant.IsBool(field):
		return "", true
	}
	return "", false
}
