// Package plant defines the catalog entity and typed access to its fields by name.
package plant

import (
	"slices"
	"strings"
)

// Document field names. Filters, sort keys and store indexes refer to fields by these names.
const (
	FieldID                = "_id"
	FieldScientificName    = "Scientific Name"
	FieldCommonName        = "Common Name"
	FieldFamily            = "Family"
	FieldGenus             = "Genus"
	FieldHeight            = "Height (feet)"
	FieldSpread            = "Spread (feet)"
	FieldRecommendation    = "Recommendation Score"
	FieldStates            = "States"
	FieldSunExposure       = "Sun Exposure Flags"
	FieldSoilMoisture      = "Soil Moisture Flags"
	FieldPlantType         = "Plant Type Flags"
	FieldLifeCycle         = "Life Cycle Flags"
	FieldPollinator        = "Pollinator Flags"
	FieldFlowerColor       = "Flower Color Flags"
	FieldFlowerColorText   = "Flower Color"
	FieldAvailability      = "Availability Flags"
	FieldFloweringMonths   = "Flowering Months By Number"
	FieldShowy             = "Showy"
	FieldSuperplant        = "Superplant"
	FieldHasImage          = "Has Image"
	FieldHasPreview        = "Has Preview"
	FieldEmbedding         = "embedding"
	FieldSemanticScore     = "_semanticScore"
	FieldFloweringMonthsUI = "Flowering Months"
)

// Plant is a native plant record. It is written wholesale by ingestion and only read by search.
type Plant struct {
	ID                  string    `json:"_id"`
	ScientificName      string    `json:"Scientific Name"`
	CommonName          string    `json:"Common Name"`
	Family              string    `json:"Family"`
	Genus               string    `json:"Genus"`
	Height              *float64  `json:"Height (feet),omitempty"`
	Spread              *float64  `json:"Spread (feet),omitempty"`
	RecommendationScore int       `json:"Recommendation Score"`
	States              []string  `json:"States"`
	SunExposure         []string  `json:"Sun Exposure Flags"`
	SoilMoisture        []string  `json:"Soil Moisture Flags"`
	PlantType           []string  `json:"Plant Type Flags"`
	LifeCycle           []string  `json:"Life Cycle Flags"`
	Pollinator          []string  `json:"Pollinator Flags"`
	FlowerColor         []string  `json:"Flower Color Flags"`
	FlowerColorText     string    `json:"Flower Color,omitempty"`
	Availability        []string  `json:"Availability Flags"`
	FloweringMonths     []int     `json:"Flowering Months By Number"`
	Showy               bool      `json:"Showy"`
	Superplant          bool      `json:"Superplant"`
	HasImage            bool      `json:"Has Image,omitempty"`
	HasPreview          bool      `json:"Has Preview,omitempty"`
	Embedding           []float32 `json:"embedding,omitempty"`
}

// Normalize fills absent flag sets with empty ones and defaults the ID to the scientific name.
func (p *Plant) Normalize() {
	if p.ID == "" {
		p.ID = p.ScientificName
	}
	if p.ScientificName == "" {
		p.ScientificName = p.ID
	}
	for _, s := range []*[]string{
		&p.States, &p.SunExposure, &p.SoilMoisture, &p.PlantType,
		&p.LifeCycle, &p.Pollinator, &p.FlowerColor, &p.Availability,
	} {
		if *s == nil {
			*s = []string{}
		}
	}
	if p.FloweringMonths == nil {
		p.FloweringMonths = []int{}
	}
}

// Strings returns the string values of a categorical field.
// Scalar fields (Genus, Family, names) yield at most one element.
func (p *Plant) Strings(field string) []string {
	switch field {
	case FieldStates:
		return p.States
	case FieldSunExposure:
		return p.SunExposure
	case FieldSoilMoisture:
		return p.SoilMoisture
	case FieldPlantType:
		return p.PlantType
	case FieldLifeCycle:
		return p.LifeCycle
	case FieldPollinator:
		return p.Pollinator
	case FieldFlowerColor:
		return p.FlowerColor
	case FieldAvailability:
		return p.Availability
	}
	if s := p.Text(field); s != "" {
		return []string{s}
	}
	return nil
}

// Text returns a scalar string field, or "" when absent.
func (p *Plant) Text(field string) string {
	switch field {
	case FieldID:
		return p.ID
	case FieldScientificName:
		return p.ScientificName
	case FieldCommonName:
		return p.CommonName
	case FieldFamily:
		return p.Family
	case FieldGenus:
		return p.Genus
	case FieldFlowerColorText:
		return p.FlowerColorText
	}
	return ""
}

// Number returns a numeric field and whether it is present.
func (p *Plant) Number(field string) (float64, bool) {
	switch field {
	case FieldHeight:
		if p.Height != nil {
			return *p.Height, true
		}
	case FieldSpread:
		if p.Spread != nil {
			return *p.Spread, true
		}
	case FieldRecommendation:
		return float64(p.RecommendationScore), true
	}
	return 0, false
}

// Numbers returns a numeric array field.
func (p *Plant) Numbers(field string) []int {
	if field == FieldFloweringMonths {
		return p.FloweringMonths
	}
	return nil
}

// Bool returns a boolean flag field.
func (p *Plant) Bool(field string) bool {
	switch field {
	case FieldShowy:
		return p.Showy
	case FieldSuperplant:
		return p.Superplant
	case FieldHasImage:
		return p.HasImage
	case FieldHasPreview:
		return p.HasPreview
	}
	return false
}

// Has reports whether the field carries a value, for sort key existence checks.
// Scalar text fields always exist; an empty string is a value.
func (p *Plant) Has(field string) bool {
	switch field {
	case FieldEmbedding:
		return len(p.Embedding) > 0
	case FieldHeight, FieldSpread, FieldRecommendation:
		_, ok := p.Number(field)
		return ok
	case FieldShowy, FieldSuperplant, FieldHasImage, FieldHasPreview:
		return true
	case FieldID, FieldScientificName, FieldCommonName, FieldFamily, FieldGenus, FieldFlowerColorText:
		return true
	case FieldFloweringMonths:
		return p.FloweringMonths != nil
	}
	return len(p.Strings(field)) > 0
}

// HasAny reports whether any of the field's values is in values.
func (p *Plant) HasAny(field string, values []string) bool {
	for _, v := range p.Strings(field) {
		if slices.Contains(values, v) {
			return true
		}
	}
	return false
}

// WithoutEmbedding returns a copy that does not carry the embedding vector.
func (p Plant) WithoutEmbedding() Plant {
	p.Embedding = nil
	return p
}

// CompareText compares a string field of two plants, missing values sorting as "".
func CompareText(a, b *Plant, field string) int {
	return strings.Compare(a.Text(field), b.Text(field))
}

// Field groups by storage shape.
var (
	ArrayFields = []string{
		FieldStates, FieldSunExposure, FieldSoilMoisture, FieldPlantType,
		FieldLifeCycle, FieldPollinator, FieldFlowerColor, FieldAvailability,
	}
	ScalarFields = []string{FieldFamily, FieldGenus, FieldFlowerColorText}
	NumberFields = []string{FieldHeight, FieldSpread, FieldRecommendation}
	BoolFields   = []string{FieldShowy, FieldSuperplant, FieldHasImage, FieldHasPreview}
)

// IsBool reports whether field is a boolean flag.
func IsBool(field string) bool { return slices.Contains(BoolFields, field) }
