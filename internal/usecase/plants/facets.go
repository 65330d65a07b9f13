package plants

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/plantdex/internal/domain/search/facet"
	"github.com/kailas-cloud/plantdex/internal/domain/search/order"
	"github.com/kailas-cloud/plantdex/internal/domain/search/predicate"
	"github.com/kailas-cloud/plantdex/internal/domain/search/result"
)

// storeFacets runs one catalog aggregation per array or boolean filter, each
// under pred minus that filter's own clauses. Aggregations run concurrently.
func (s *Service) storeFacets(
	ctx context.Context, filters []facet.Filter, pred predicate.Predicate,
) (map[string]map[string]int, error) {
	raw := make([]map[string]int, len(filters))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.FacetConcurrency)
	for i, f := range filters {
		var unwind bool
		switch f := f.(type) {
		case facet.Array:
			unwind = f.Unwind()
		case facet.Boolean:
		default:
			continue
		}
		g.Go(func() error {
			counts, err := s.catalog.Facet(gctx, pred.Without(f.Name()), f.Name(), unwind)
			if err != nil {
				return fmt.Errorf("facet %s: %w", f.Name(), err)
			}
			raw[i] = counts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err //nolint:wrapcheck // already wrapped per facet
	}

	return normalizeCounts(filters, raw), nil
}

// tallyFacets counts facet values over scored candidates. A candidate is
// counted for filter F when it matches every clause except F's own.
func tallyFacets(
	filters []facet.Filter, base predicate.Predicate, scored []order.Candidate,
) map[string]map[string]int {
	raw := make([]map[string]int, len(filters))
	for i, f := range filters {
		switch f := f.(type) {
		case facet.Array:
			fp := base.Without(f.Field)
			counts := map[string]int{}
			for _, c := range scored {
				if !fp.Matches(c.Plant) {
					continue
				}
				for _, v := range c.Plant.Strings(f.Field) {
					counts[v]++
				}
			}
			raw[i] = counts
		case facet.Boolean:
			fp := base.Without(f.Field)
			counts := map[string]int{}
			for _, c := range scored {
				if fp.Matches(c.Plant) {
					counts[strconv.FormatBool(c.Plant.Bool(f.Field))]++
				}
			}
			raw[i] = counts
		}
	}
	return normalizeCounts(filters, raw)
}

// normalizeCounts hides ignored values and keys boolean facets by their label.
// The label bucket is always present so the option can be rendered.
func normalizeCounts(filters []facet.Filter, raw []map[string]int) map[string]map[string]int {
	out := make(map[string]map[string]int, len(filters))
	for i, f := range filters {
		switch f := f.(type) {
		case facet.Array:
			counts := make(map[string]int, len(raw[i]))
			for v, n := range raw[i] {
				if f.Displayable(v) {
					counts[v] = n
				}
			}
			out[f.Field] = counts
		case facet.Boolean:
			out[f.Field] = map[string]int{f.Label: raw[i]["true"]}
		}
	}
	return out
}

// tallyRange computes min and max of field over scored candidates matching
// every clause except the field's own range.
func tallyRange(
	base predicate.Predicate, scored []order.Candidate, field string, round rounding,
) result.NumberRange {
	fp := base.Without(field)
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range scored {
		if !fp.Matches(c.Plant) {
			continue
		}
		if v, ok := c.Plant.Number(field); ok {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return result.NumberRange{}
	}
	return round(lo, hi)
}

// fillChoices lists the selectable values of every filter. Array filters reuse
// facet keys when counts were computed and ask the catalog otherwise.
func (s *Service) fillChoices(ctx context.Context, p *plan, resp *result.Response) error {
	resp.Choices = make(map[string][]string, len(p.filters))
	if resp.Counts == nil {
		resp.Counts = map[string]map[string]int{}
	}

	for _, f := range p.filters {
		switch f := f.(type) {
		case facet.Array:
			values := []string{}
			if counts, ok := resp.Counts[f.Field]; ok {
				for v := range counts {
					values = append(values, v)
				}
			} else {
				all, err := s.catalog.Distinct(ctx, f.Field)
				if err != nil {
					return fmt.Errorf("distinct %s: %w", f.Field, err)
				}
				for _, v := range all {
					if f.Displayable(v) {
						values = append(values, v)
					}
				}
			}
			slices.Sort(values)
			resp.Choices[f.Field] = slices.Compact(values)
		case facet.Boolean:
			resp.Choices[f.Field] = []string{f.Label}
		case facet.Range:
			resp.Choices[f.Field] = slices.Clone(f.Domain)
		}
	}
	return nil
}
