// Package predicate models a listing query as a conjunction of clauses.
//
// Clauses are tagged with the filter that produced them so that facet counting
// can drop one filter's constraint while keeping all others. A Predicate can be
// evaluated in process (Matches) or translated by a store into its own query language.
package predicate

import (
	"regexp"
	"slices"
	"strings"

	"github.com/kailas-cloud/plantdex/internal/domain/plant"
)

// Clause is one conjunct. The concrete type is one of the clause structs below.
type Clause interface {
	// Owner is the filter name that produced the clause, or "" for guards.
	Owner() string
	// Matches evaluates the clause against a plant.
	Matches(p *plant.Plant) bool
}

// AnyOf matches when the field holds any of Values. Scalar fields behave as one-element sets.
type AnyOf struct {
	Filter string
	Field  string
	Values []string
}

// IsTrue matches when the boolean field is true.
type IsTrue struct {
	Filter string
	Field  string
}

// Between matches when the numeric field lies in [Min, Max].
// Documents without the field never match.
type Between struct {
	Filter string
	Field  string
	Min    float64
	Max    float64
}

// AnyNumber matches when the numeric array field contains any of Values.
type AnyNumber struct {
	Filter string
	Field  string
	Values []int
}

// Tokens matches when a delimited string field contains any value as a whole token.
// Tokens are bounded by the start or end of the string or by ',' or ';'.
type Tokens struct {
	Filter string
	Field  string
	Values []string
}

// NameMatch is a case-insensitive literal substring match over common and scientific names.
type NameMatch struct {
	Text string
}

// Exists requires the field to carry a value.
type Exists struct {
	Field string
}

// IDIn restricts results to the given plant IDs.
type IDIn struct {
	IDs []string
}

func (c AnyOf) Owner() string     { return c.Filter }
func (c IsTrue) Owner() string    { return c.Filter }
func (c Between) Owner() string   { return c.Filter }
func (c AnyNumber) Owner() string { return c.Filter }
func (c Tokens) Owner() string    { return c.Filter }
func (NameMatch) Owner() string   { return "" }
func (Exists) Owner() string      { return "" }
func (IDIn) Owner() string        { return "" }

func (c AnyOf) Matches(p *plant.Plant) bool { return p.HasAny(c.Field, c.Values) }

func (c IsTrue) Matches(p *plant.Plant) bool { return p.Bool(c.Field) }

func (c Between) Matches(p *plant.Plant) bool {
	v, ok := p.Number(c.Field)
	return ok && v >= c.Min && v <= c.Max
}

func (c AnyNumber) Matches(p *plant.Plant) bool {
	for _, n := range p.Numbers(c.Field) {
		if slices.Contains(c.Values, n) {
			return true
		}
	}
	return false
}

func (c Tokens) Matches(p *plant.Plant) bool {
	s := p.Text(c.Field)
	for _, v := range c.Values {
		if TokenPattern(v).MatchString(s) {
			return true
		}
	}
	return false
}

// TokenPattern is the regular expression a Tokens value is tested with.
func TokenPattern(v string) *regexp.Regexp {
	return regexp.MustCompile(`(^|[,;])` + regexp.QuoteMeta(v) + `($|[,;])`)
}

func (c NameMatch) Matches(p *plant.Plant) bool {
	needle := strings.ToLower(c.Text)
	return strings.Contains(strings.ToLower(p.CommonName), needle) ||
		strings.Contains(strings.ToLower(p.ScientificName), needle)
}

func (c Exists) Matches(p *plant.Plant) bool { return p.Has(c.Field) }

func (c IDIn) Matches(p *plant.Plant) bool { return slices.Contains(c.IDs, p.ID) }

// Predicate is an ordered conjunction. The zero value matches everything.
type Predicate struct {
	clauses []Clause
}

// New creates a predicate from clauses.
func New(clauses ...Clause) Predicate {
	return Predicate{clauses: slices.Clone(clauses)}
}

// And returns a predicate with c appended.
func (p Predicate) And(c ...Clause) Predicate {
	out := make([]Clause, 0, len(p.clauses)+len(c))
	out = append(out, p.clauses...)
	return Predicate{clauses: append(out, c...)}
}

// Without returns a predicate without the clauses owned by filter.
func (p Predicate) Without(filter string) Predicate {
	out := make([]Clause, 0, len(p.clauses))
	for _, c := range p.clauses {
		if filter != "" && c.Owner() == filter {
			continue
		}
		out = append(out, c)
	}
	return Predicate{clauses: out}
}

// Guards returns only the clauses not owned by any filter.
func (p Predicate) Guards() Predicate {
	out := make([]Clause, 0, len(p.clauses))
	for _, c := range p.clauses {
		if c.Owner() == "" {
			out = append(out, c)
		}
	}
	return Predicate{clauses: out}
}

// Clauses returns a copy of the conjuncts.
func (p Predicate) Clauses() []Clause { return slices.Clone(p.clauses) }

// IsEmpty reports whether the predicate has no clauses.
func (p Predicate) IsEmpty() bool { return len(p.clauses) == 0 }

// Matches reports whether every clause matches.
func (p Predicate) Matches(pl *plant.Plant) bool {
	for _, c := range p.clauses {
		if !c.Matches(pl) {
			return false
		}
	}
	return true
}

// Owns reports whether any clause belongs to filter.
func (p Predicate) Owns(filter string) bool {
	return slices.ContainsFunc(p.clauses, func(c Clause) bool { return c.Owner() == filter })
}
