package db

import (
	"math"
	"testing"
)

func TestTagQuery(t *testing.T) {
	tests := []struct {
		name   string
		attr   string
		values []string
		want   string
	}{
		{"single", "states", []string{"NY"}, "@states:{NY}"},
		{"union", "states", []string{"NY", "NJ"}, "@states:{NY | NJ}"},
		{"spaces", "sun", []string{"Part Shade"}, `@sun:{Part\ Shade}`},
		{"punctuation", "id", []string{"Rudbeckia hirta (L.)"}, `@id:{Rudbeckia\ hirta\ \(L\.\)}`},
		{"hyphen", "type", []string{"Semi-Evergreen"}, `@type:{Semi\-Evergreen}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TagQuery(tt.attr, tt.values...); got != tt.want {
				t.Errorf("TagQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNumericQuery(t *testing.T) {
	if got := NumericQuery("height", 0, 2.5); got != "@height:[0 2.5]" {
		t.Errorf("got %q", got)
	}
	if got := NumericQuery("height", math.Inf(-1), math.Inf(1)); got != "@height:[-inf +inf]" {
		t.Errorf("got %q", got)
	}
	if got := HasNumber("spread"); got != "@spread:[-inf +inf]" {
		t.Errorf("got %q", got)
	}
}

func TestAndOr(t *testing.T) {
	if got := And(); got != MatchAll {
		t.Errorf("And() = %q, want *", got)
	}
	if got := And("", MatchAll); got != MatchAll {
		t.Errorf("And(empty) = %q, want *", got)
	}
	if got := And("@a:{x}", "", "@b:[1 2]"); got != "@a:{x} @b:[1 2]" {
		t.Errorf("And() = %q", got)
	}
	if got := Or("@m:[1 1]"); got != "@m:[1 1]" {
		t.Errorf("Or(single) = %q", got)
	}
	if got := Or("@m:[1 1]", "@m:[2 2]"); got != "(@m:[1 1] | @m:[2 2])" {
		t.Errorf("Or() = %q", got)
	}
}
