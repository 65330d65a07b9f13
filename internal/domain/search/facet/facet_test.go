package facet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/plantdex/internal/domain/plant"
)

func TestNumberDomain(t *testing.T) {
	assert.Equal(t, []string{"0"}, NumberDomain(0))
	assert.Equal(t, []string{"0", "1", "2", "3"}, NumberDomain(2.1))
	assert.Equal(t, []string{"0", "1", "2"}, NumberDomain(2))
	assert.Equal(t, []string{"0"}, NumberDomain(-4))
}

func TestTable(t *testing.T) {
	filters := Table(Bounds{MaxHeight: 50, MaxSpread: 7.5})
	require.Len(t, filters, 15)

	h, ok := Find(filters, plant.FieldHeight)
	require.True(t, ok)
	hr := h.(Range)
	assert.Len(t, hr.Domain, 51)
	assert.True(t, hr.IsFullDomain(0, 50))
	assert.False(t, hr.IsFullDomain(0, 49))
	assert.False(t, hr.IsFullDomain(1, 50))

	s, _ := Find(filters, plant.FieldSpread)
	assert.Len(t, s.(Range).Domain, 9)

	m, _ := Find(filters, plant.FieldFloweringMonthsUI)
	mr := m.(Range)
	assert.Equal(t, plant.FieldFloweringMonths, mr.ByNumber)
	assert.True(t, mr.IsFullDomain(0, 11))

	g, _ := Find(filters, plant.FieldGenus)
	assert.False(t, g.(Array).Unwind())
	st, _ := Find(filters, plant.FieldStates)
	assert.True(t, st.(Array).Unwind())

	_, ok = Find(filters, "Nope")
	assert.False(t, ok)
}

func TestArray_Displayable(t *testing.T) {
	p := Array{Field: plant.FieldPollinator, Ignore: []string{"Wind"}}
	assert.True(t, p.Displayable("Bombus"))
	assert.False(t, p.Displayable("Wind"))
	assert.False(t, p.Displayable(""))
}

func TestFilterKinds(t *testing.T) {
	kinds := map[string]int{}
	for _, f := range Table(Bounds{}) {
		switch f.(type) {
		case Array:
			kinds["array"]++
		case Boolean:
			kinds["boolean"]++
		case Range:
			kinds["range"]++
		}
	}
	assert.Equal(t, map[string]int{"array": 10, "boolean": 2, "range": 3}, kinds)
}

func TestRange_Clamp(t *testing.T) {
	months := Range{Field: plant.FieldFloweringMonthsUI, Domain: Months}

	lo, hi, ok := months.Clamp(-1, math.MaxInt)
	require.True(t, ok)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 11, hi)

	lo, hi, ok = months.Clamp(3, 5)
	require.True(t, ok)
	assert.Equal(t, 3, lo)
	assert.Equal(t, 5, hi)

	_, _, ok = months.Clamp(12, 40)
	assert.False(t, ok)
	_, _, ok = months.Clamp(math.MinInt, -1)
	assert.False(t, ok)
	_, _, ok = Range{}.Clamp(0, 0)
	assert.False(t, ok)
}
