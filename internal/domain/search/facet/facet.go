// Package facet declares the fixed set of listing filters.
package facet

import (
	"math"
	"slices"
	"strconv"

	"github.com/kailas-cloud/plantdex/internal/domain/plant"
)

// Storage describes how an array filter's values are laid out in a document.
type Storage int

const (
	// StorageArray is a set-of-strings field; facets unwind it.
	StorageArray Storage = iota
	// StorageScalar is a single string field; facets group without unwinding.
	StorageScalar
	// StorageDelimited is a legacy comma/semicolon separated string field.
	StorageDelimited
)

// Filter is one facet definition. The concrete type is one of Array, Boolean or Range.
type Filter interface {
	Name() string
	isFilter()
}

// Array filters match documents carrying any of the requested values.
type Array struct {
	Field   string
	Storage Storage
	// Ignore lists values hidden from choices and counts. They still filter.
	Ignore []string
}

// Boolean filters match documents where the flag is true.
type Boolean struct {
	Field string
	// Label is the single displayable choice and the key of the true bucket.
	Label string
}

// Range filters constrain a value to an inclusive index window over Domain.
type Range struct {
	Field  string
	Domain []string
	// ByNumber names a numeric array field tested for membership in [min..max].
	// Empty means Field itself is compared numerically.
	ByNumber string
}

func (a Array) Name() string   { return a.Field }
func (b Boolean) Name() string { return b.Field }
func (r Range) Name() string   { return r.Field }

func (Array) isFilter()   {}
func (Boolean) isFilter() {}
func (Range) isFilter()   {}

// Unwind reports whether facet grouping must expand the field per value.
func (a Array) Unwind() bool { return a.Storage == StorageArray }

// Displayable reports whether v may appear in choices and counts.
func (a Array) Displayable(v string) bool {
	return v != "" && !slices.Contains(a.Ignore, v)
}

// Clamp narrows [lo, hi] to the domain indexes. ok is false when nothing of
// the window lies inside the domain.
func (r Range) Clamp(lo, hi int) (int, int, bool) {
	lo = max(lo, 0)
	hi = min(hi, len(r.Domain)-1)
	return lo, hi, lo <= hi
}

// IsFullDomain reports whether [lo, hi] spans the whole domain, which means no constraint.
func (r Range) IsFullDomain(lo, hi int) bool {
	return lo == 0 && hi == len(r.Domain)-1
}

// Months is the flowering month domain, indexed 0..11.
var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Bounds are catalog-wide maxima used to size the height and spread domains.
type Bounds struct {
	MaxHeight float64
	MaxSpread float64
}

// NumberDomain returns "0".."ceil(max)".
func NumberDomain(maxValue float64) []string {
	top := int(math.Ceil(math.Max(maxValue, 0)))
	d := make([]string, top+1)
	for i := range d {
		d[i] = strconv.Itoa(i)
	}
	return d
}

// Table builds the filter list for one request. Order is the display order.
func Table(b Bounds) []Filter {
	return []Filter{
		Array{Field: plant.FieldStates},
		Array{Field: plant.FieldGenus, Storage: StorageScalar},
		Array{Field: plant.FieldFamily, Storage: StorageScalar},
		Array{Field: plant.FieldSunExposure},
		Array{Field: plant.FieldSoilMoisture},
		Array{Field: plant.FieldPlantType},
		Array{Field: plant.FieldLifeCycle},
		Array{Field: plant.FieldPollinator, Ignore: []string{"Wind"}},
		Boolean{Field: plant.FieldSuperplant, Label: "Super Plant"},
		Array{Field: plant.FieldFlowerColor},
		Array{Field: plant.FieldAvailability},
		Range{Field: plant.FieldFloweringMonthsUI, Domain: Months, ByNumber: plant.FieldFloweringMonths},
		Range{Field: plant.FieldHeight, Domain: NumberDomain(b.MaxHeight)},
		Range{Field: plant.FieldSpread, Domain: NumberDomain(b.MaxSpread)},
		Boolean{Field: plant.FieldShowy, Label: "Showy"},
	}
}

// Find returns the filter named name.
func Find(filters []Filter, name string) (Filter, bool) {
	for _, f := range filters {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}
