package plants

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/plantdex/internal/domain/plant"
	"github.com/kailas-cloud/plantdex/internal/domain/search/facet"
	"github.com/kailas-cloud/plantdex/internal/domain/search/order"
	"github.com/kailas-cloud/plantdex/internal/domain/search/predicate"
	"github.com/kailas-cloud/plantdex/internal/domain/search/request"
)

func TestBuildPredicate_Ranges(t *testing.T) {
	filters := facet.Table(facet.Bounds{MaxHeight: 50, MaxSpread: 10})

	tests := []struct {
		name   string
		ranges map[string]request.Range
		want   []predicate.Clause
	}{
		{
			name:   "full domain is no constraint",
			ranges: map[string]request.Range{plant.FieldHeight: {Min: 0, Max: 50}},
			want:   nil,
		},
		{
			name:   "full month domain is no constraint",
			ranges: map[string]request.Range{plant.FieldFloweringMonthsUI: {Min: 0, Max: 11}},
			want:   nil,
		},
		{
			name:   "inverted range ignored",
			ranges: map[string]request.Range{plant.FieldHeight: {Min: 6, Max: 2}},
			want:   nil,
		},
		{
			name:   "months beyond the domain clamp to full domain",
			ranges: map[string]request.Range{plant.FieldFloweringMonthsUI: {Min: -1, Max: math.MaxInt}},
			want:   nil,
		},
		{
			name:   "months outside the domain ignored",
			ranges: map[string]request.Range{plant.FieldFloweringMonthsUI: {Min: 20, Max: 2000000000}},
			want:   nil,
		},
		{
			name:   "months clamped to december",
			ranges: map[string]request.Range{plant.FieldFloweringMonthsUI: {Min: 10, Max: 2000000000}},
			want: []predicate.Clause{
				predicate.AnyNumber{
					Filter: plant.FieldFloweringMonthsUI,
					Field:  plant.FieldFloweringMonths,
					Values: []int{10, 11},
				},
			},
		},
		{
			name:   "negative height clamped to zero",
			ranges: map[string]request.Range{plant.FieldHeight: {Min: math.MinInt, Max: 3}},
			want: []predicate.Clause{
				predicate.Between{Filter: plant.FieldHeight, Field: plant.FieldHeight, Min: 0, Max: 3},
			},
		},
		{
			name:   "partial height",
			ranges: map[string]request.Range{plant.FieldHeight: {Min: 0, Max: 49}},
			want: []predicate.Clause{
				predicate.Between{Filter: plant.FieldHeight, Field: plant.FieldHeight, Min: 0, Max: 49},
			},
		},
		{
			name:   "months by number",
			ranges: map[string]request.Range{plant.FieldFloweringMonthsUI: {Min: 2, Max: 4}},
			want: []predicate.Clause{
				predicate.AnyNumber{
					Filter: plant.FieldFloweringMonthsUI,
					Field:  plant.FieldFloweringMonths,
					Values: []int{2, 3, 4},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := request.New(request.Options{Ranges: tt.ranges}, 0)
			require.NoError(t, err)

			got := BuildPredicate(filters, &req)
			if tt.want == nil {
				assert.True(t, got.IsEmpty())
				return
			}
			assert.Equal(t, tt.want, got.Clauses())
		})
	}
}

func TestBuildPredicate_ValuesAndBooleans(t *testing.T) {
	filters := facet.Table(facet.Bounds{})
	req, err := request.New(request.Options{Values: map[string][]string{
		plant.FieldStates: {"NY", "NJ"},
		plant.FieldGenus:  {"Carex"},
		plant.FieldShowy:  {"Showy"},
		plant.FieldFamily: {""},
		"Unknown Filter":  {"x"},
		plant.FieldHeight: {"3"},
	}}, 0)
	require.NoError(t, err)

	got := BuildPredicate(filters, &req)
	assert.Equal(t, []predicate.Clause{
		predicate.AnyOf{Filter: plant.FieldStates, Field: plant.FieldStates, Values: []string{"NY", "NJ"}},
		predicate.AnyOf{Filter: plant.FieldGenus, Field: plant.FieldGenus, Values: []string{"Carex"}},
		predicate.IsTrue{Filter: plant.FieldShowy, Field: plant.FieldShowy},
	}, got.Clauses())
}

func TestBuildPredicate_DelimitedStorage(t *testing.T) {
	filters := []facet.Filter{facet.Array{Field: plant.FieldFlowerColorText, Storage: facet.StorageDelimited}}
	req, err := request.New(request.Options{Values: map[string][]string{
		plant.FieldFlowerColorText: {"Yellow"},
	}}, 0)
	require.NoError(t, err)

	got := BuildPredicate(filters, &req)
	require.Len(t, got.Clauses(), 1)
	assert.IsType(t, predicate.Tokens{}, got.Clauses()[0])
	assert.True(t, got.Matches(&plant.Plant{FlowerColorText: "Orange;Yellow"}))
	assert.False(t, got.Matches(&plant.Plant{FlowerColorText: "Yellowish"}))
}

func TestSortGuards(t *testing.T) {
	s, err := order.Resolve(order.SpreadDesc, false)
	require.NoError(t, err)
	assert.Equal(t, []predicate.Clause{
		predicate.Exists{Field: plant.FieldSpread},
		predicate.Exists{Field: plant.FieldCommonName},
	}, sortGuards(s.Keys))
}
