// Package order resolves listing sort labels and ranks results.
package order

import (
	"cmp"
	"strings"

	"github.com/kailas-cloud/plantdex/internal/domain"
	"github.com/kailas-cloud/plantdex/internal/domain/plant"
)

// Sort labels accepted by the listing endpoint.
const (
	Recommendation    = "Sort by Recommendation Score"
	Relevance         = "Sort by Search Relevance"
	CommonNameAsc     = "Sort by Common Name (A-Z)"
	CommonNameDesc    = "Sort by Common Name (Z-A)"
	ScientificNameAsc = "Sort by Scientific Name (A-Z)"
	ScientificNameDsc = "Sort by Scientific Name (Z-A)"
	HeightAsc         = "Sort by Height (Low to High)"
	HeightDesc        = "Sort by Height (High to Low)"
	SpreadAsc         = "Sort by Spread (Low to High)"
	SpreadDesc        = "Sort by Spread (High to Low)"
	FlowerColor       = "Sort by Flower Color"
)

// Direction is +1 for ascending and -1 for descending.
type Direction int

// Sort directions.
const (
	Asc  Direction = 1
	Desc Direction = -1
)

// Key is one sort field with its direction.
type Key struct {
	Field string
	Dir   Direction
}

// Sort is a resolved sort label.
type Sort struct {
	Label string
	Keys  []Key
}

var byRecommendation = []Key{{plant.FieldRecommendation, Desc}, {plant.FieldCommonName, Asc}}

var table = map[string][]Key{
	Recommendation:    byRecommendation,
	CommonNameAsc:     {{plant.FieldCommonName, Asc}},
	CommonNameDesc:    {{plant.FieldCommonName, Desc}},
	ScientificNameAsc: {{plant.FieldScientificName, Asc}},
	ScientificNameDsc: {{plant.FieldScientificName, Desc}},
	HeightAsc:         {{plant.FieldHeight, Asc}, {plant.FieldCommonName, Asc}},
	HeightDesc:        {{plant.FieldHeight, Desc}, {plant.FieldCommonName, Asc}},
	SpreadAsc:         {{plant.FieldSpread, Asc}, {plant.FieldCommonName, Asc}},
	SpreadDesc:        {{plant.FieldSpread, Desc}, {plant.FieldCommonName, Asc}},
	FlowerColor:       {{plant.FieldFlowerColorText, Asc}, {plant.FieldCommonName, Asc}},
}

// Labels lists every accepted label, default first.
var Labels = []string{
	Recommendation, Relevance,
	CommonNameAsc, CommonNameDesc, ScientificNameAsc, ScientificNameDsc,
	HeightAsc, HeightDesc, SpreadAsc, SpreadDesc, FlowerColor,
}

// Resolve maps a label to sort keys. An empty label picks the mode default:
// relevance for scored results, recommendation otherwise. Relevance has no
// stored key, so without scoring it sorts like recommendation.
func Resolve(label string, scored bool) (Sort, error) {
	if label == "" {
		label = Recommendation
		if scored {
			label = Relevance
		}
	}
	if label == Relevance {
		return Sort{Label: label, Keys: byRecommendation}, nil
	}
	keys, ok := table[label]
	if !ok {
		return Sort{}, domain.NewInvalidRequest("sort", "unknown sort "+label)
	}
	return Sort{Label: label, Keys: keys}, nil
}

// Compare orders two plants by keys. Missing strings compare as "", missing
// numbers sort before present ones.
func Compare(keys []Key, a, b *plant.Plant) int {
	for _, k := range keys {
		if c := compareField(k.Field, a, b); c != 0 {
			return c * int(k.Dir)
		}
	}
	return 0
}

func compareField(field string, a, b *plant.Plant) int {
	av, aok := a.Number(field)
	bv, bok := b.Number(field)
	if aok || bok {
		switch {
		case aok && bok:
			return cmp.Compare(av, bv)
		case aok:
			return 1
		default:
			return -1
		}
	}
	return strings.Compare(a.Text(field), b.Text(field))
}

// Candidate is a plant with its semantic score.
type Candidate struct {
	Plant *plant.Plant
	Score float64
}

// Semantic returns the comparator for scored results.
//
// Recommendation sorts keep the requested recommendation order first, then
// score, then common name. Relevance sorts by score then common name. Any
// other sort lets score dominate and uses the requested keys as tiebreakers.
func Semantic(s Sort) func(a, b Candidate) int {
	byScore := func(a, b Candidate) int { return cmp.Compare(b.Score, a.Score) }

	switch {
	case s.Label == Relevance:
		return func(a, b Candidate) int {
			if c := byScore(a, b); c != 0 {
				return c
			}
			return plant.CompareText(a.Plant, b.Plant, plant.FieldCommonName)
		}
	case len(s.Keys) > 0 && s.Keys[0].Field == plant.FieldRecommendation:
		reco, rest := s.Keys[0], s.Keys[1:]
		return func(a, b Candidate) int {
			if c := Compare([]Key{reco}, a.Plant, b.Plant); c != 0 {
				return c
			}
			if c := byScore(a, b); c != 0 {
				return c
			}
			return Compare(rest, a.Plant, b.Plant)
		}
	default:
		return func(a, b Candidate) int {
			if c := byScore(a, b); c != 0 {
				return c
			}
			return Compare(s.Keys, a.Plant, b.Plant)
		}
	}
}
