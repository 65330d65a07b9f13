package plant

import (
	"slices"

	"github.com/kailas-cloud/plantdex/internal/db"
	domplant "github.com/kailas-cloud/plantdex/internal/domain/plant"
)

// Key layout: <prefix>plant:<id> holds one JSON document per plant and
// <prefix>plants is the FT index over them.
const (
	docSegment   = "plant:"
	indexSegment = "plants"
)

// attrs maps document fields to index attribute names. Field names contain
// spaces and parentheses, so every field is aliased.
var attrs = map[string]string{
	domplant.FieldID:              "id",
	domplant.FieldScientificName:  "scientific_name",
	domplant.FieldCommonName:      "common_name",
	domplant.FieldFamily:          "family",
	domplant.FieldGenus:           "genus",
	domplant.FieldFlowerColorText: "flower_color_text",
	domplant.FieldHeight:          "height",
	domplant.FieldSpread:          "spread",
	domplant.FieldRecommendation:  "reco",
	domplant.FieldStates:          "states",
	domplant.FieldSunExposure:     "sun",
	domplant.FieldSoilMoisture:    "moisture",
	domplant.FieldPlantType:       "plant_type",
	domplant.FieldLifeCycle:       "life_cycle",
	domplant.FieldPollinator:      "pollinator",
	domplant.FieldFlowerColor:     "flower_color",
	domplant.FieldAvailability:    "availability",
	domplant.FieldFloweringMonths: "months",
	domplant.FieldShowy:           "showy",
	domplant.FieldSuperplant:      "superplant",
	domplant.FieldHasImage:        "has_image",
	domplant.FieldHasPreview:      "has_preview",
}

// isTag reports fields indexed as case-sensitive TAGs, so facet values round-trip unchanged.
func isTag(field string) bool {
	return field == domplant.FieldID ||
		slices.Contains(domplant.ArrayFields, field) ||
		slices.Contains(domplant.ScalarFields, field) ||
		domplant.IsBool(field)
}

func isNumeric(field string) bool {
	return slices.Contains(domplant.NumberFields, field) || field == domplant.FieldFloweringMonths
}

func jsonPath(field string) string {
	p := `$["` + field + `"]`
	if slices.Contains(domplant.ArrayFields, field) || field == domplant.FieldFloweringMonths {
		p += "[*]"
	}
	return p
}

// buildIndex describes the plant index: a TAG per filter field, sortable
// NUMERIC height, spread and score, and unnormalized sortable names and IDs.
func buildIndex(prefix string) (*db.IndexDefinition, error) {
	b := db.NewIndex(indexName(prefix)).
		OnJSON().
		Prefix(prefix+docSegment).
		TagWithOpts(jsonPath(domplant.FieldID), "", true).As(attrs[domplant.FieldID]).SortableUNF().
		Text(jsonPath(domplant.FieldScientificName)).As(attrs[domplant.FieldScientificName]).SortableUNF().
		Text(jsonPath(domplant.FieldCommonName)).As(attrs[domplant.FieldCommonName]).SortableUNF()

	for _, f := range domplant.ScalarFields {
		b = b.TagWithOpts(jsonPath(f), "", true).As(attrs[f])
		if f == domplant.FieldFlowerColorText {
			b = b.SortableUNF()
		}
	}
	for _, f := range domplant.ArrayFields {
		b = b.TagWithOpts(jsonPath(f), "", true).As(attrs[f])
	}
	for _, f := range domplant.BoolFields {
		b = b.Tag(jsonPath(f)).As(attrs[f])
	}
	for _, f := range domplant.NumberFields {
		b = b.Numeric(jsonPath(f)).As(attrs[f]).Sortable()
	}
	b = b.Numeric(jsonPath(domplant.FieldFloweringMonths)).As(attrs[domplant.FieldFloweringMonths])

	def, err := b.Build()
	if err != nil {
		return nil, err //nolint:wrapcheck // validation message is self-describing
	}
	return def, nil
}

func indexName(prefix string) string { return prefix + indexSegment }

func docKey(prefix, id string) string { return prefix + docSegment + id }
