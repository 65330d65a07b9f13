// Package request normalizes raw listing parameters into a typed request.
package request

import (
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/plantdex/internal/domain"
)

// Listing parameter limits.
const (
	// MaxQueryLength is the maximum allowed free-text query length in characters.
	MaxQueryLength = 200
	// PageSize is the default number of results per page.
	PageSize = 20
	// MaxPage is the highest page number served. Larger pages are clamped.
	MaxPage = 100000
)

// Reserved parameter names. Every other parameter is a filter.
const (
	ParamQuery     = "q"
	ParamPage      = "page"
	ParamSort      = "sort"
	ParamFavorites = "favorites"
	ParamTotal     = "total"
	ParamResults   = "results"
)

// Range is an inclusive index window requested for a range filter.
type Range struct {
	Min int
	Max int
}

// Request is a validated listing request.
type Request struct {
	query        string
	page         int
	sort         string
	values       map[string][]string
	ranges       map[string]Range
	favorites    []string
	fetchTotal   bool
	fetchResults bool
}

// Options carries the typed listing parameters.
type Options struct {
	Query     string
	Page      int
	Sort      string
	Values    map[string][]string
	Ranges    map[string]Range
	Favorites []string
	// SkipTotal and SkipResults turn off counting and result fetching.
	SkipTotal   bool
	SkipResults bool
}

// New validates and normalizes listing parameters.
// Pages are 1-based; anything below 1 becomes 1, anything above MaxPage becomes MaxPage.
func New(o Options, maxQueryLength int) (Request, error) {
	if maxQueryLength <= 0 {
		maxQueryLength = MaxQueryLength
	}
	q := strings.TrimSpace(o.Query)
	if utf8.RuneCountInString(q) > maxQueryLength {
		return Request{}, domain.NewInvalidRequest(ParamQuery,
			"query too long (max "+strconv.Itoa(maxQueryLength)+" chars)")
	}
	page := min(max(o.Page, 1), MaxPage)

	values := make(map[string][]string, len(o.Values))
	for name, vs := range o.Values {
		if clean := compact(vs); len(clean) > 0 {
			values[name] = clean
		}
	}
	ranges := make(map[string]Range, len(o.Ranges))
	for name, r := range o.Ranges {
		ranges[name] = r
	}

	return Request{
		query:        q,
		page:         page,
		sort:         o.Sort,
		values:       values,
		ranges:       ranges,
		favorites:    compact(o.Favorites),
		fetchTotal:   !o.SkipTotal,
		fetchResults: !o.SkipResults,
	}, nil
}

// Query returns the free-text query.
func (r *Request) Query() string { return r.query }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// Offset returns the number of results before the current page for pageSize
// results per page. It saturates at math.MaxInt instead of overflowing.
func (r *Request) Offset(pageSize int) int {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	if r.page-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (r.page - 1) * pageSize
}

// Sort returns the requested sort label, empty for the default.
func (r *Request) Sort() string { return r.sort }

// Values returns the requested values of an array or boolean filter.
func (r *Request) Values(filter string) []string { return r.values[filter] }

// Range returns the requested window of a range filter.
func (r *Request) Range(filter string) (Range, bool) {
	rg, ok := r.ranges[filter]
	return rg, ok
}

// Favorites returns the favorite plant IDs. Non-empty favorites disable paging and facets.
func (r *Request) Favorites() []string { return r.favorites }

// FetchTotal reports whether the total count is wanted.
func (r *Request) FetchTotal() bool { return r.fetchTotal }

// FetchResults reports whether result documents are wanted.
func (r *Request) FetchResults() bool { return r.fetchResults }

// WithExtracted returns a copy whose filter values are the union of the
// explicit values and filters extracted from free text, and whose query is residual.
func (r *Request) WithExtracted(filters map[string][]string, residual string) Request {
	values := make(map[string][]string, len(r.values)+len(filters))
	for name, vs := range r.values {
		values[name] = slices.Clone(vs)
	}
	for name, vs := range filters {
		for _, v := range vs {
			if !slices.Contains(values[name], v) {
				values[name] = append(values[name], v)
			}
		}
	}
	out := *r
	out.values = values
	out.query = residual
	return out
}

// Parse normalizes query-string parameters as encoded by qs-style clients:
// "name", "name[]" and "name[0]" carry values, "name[min]" and "name[max]"
// carry a range. Ranges whose bounds are missing or not integers are dropped.
func Parse(params url.Values, maxQueryLength int) (Request, error) {
	o := Options{
		Query:  params.Get(ParamQuery),
		Sort:   params.Get(ParamSort),
		Values: map[string][]string{},
		Ranges: map[string]Range{},
	}
	if p, err := strconv.Atoi(params.Get(ParamPage)); err == nil {
		o.Page = p
	}
	o.SkipTotal = isOff(params.Get(ParamTotal))
	o.SkipResults = isOff(params.Get(ParamResults))

	bounds := map[string]map[string]string{}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeys)

	for _, key := range keys {
		name, sub := splitKey(key)
		switch name {
		case ParamQuery, ParamPage, ParamSort, ParamTotal, ParamResults:
			continue
		case ParamFavorites:
			o.Favorites = append(o.Favorites, params[key]...)
			continue
		}
		if sub == "min" || sub == "max" {
			if bounds[name] == nil {
				bounds[name] = map[string]string{}
			}
			bounds[name][sub] = params.Get(key)
			continue
		}
		o.Values[name] = append(o.Values[name], params[key]...)
	}

	for name, b := range bounds {
		lo, errLo := strconv.Atoi(strings.TrimSpace(b["min"]))
		hi, errHi := strconv.Atoi(strings.TrimSpace(b["max"]))
		if errLo != nil || errHi != nil {
			continue
		}
		o.Ranges[name] = Range{Min: lo, Max: hi}
	}

	return New(o, maxQueryLength)
}

// splitKey splits "name[sub]" into name and sub. Keys without a bracket suffix have an empty sub.
func splitKey(key string) (string, string) {
	if !strings.HasSuffix(key, "]") {
		return key, ""
	}
	i := strings.LastIndexByte(key, '[')
	if i <= 0 {
		return key, ""
	}
	return key[:i], key[i+1 : len(key)-1]
}

// compareKeys orders "name[2]" before "name[10]" so indexed values keep client order.
func compareKeys(a, b string) int {
	an, as := splitKey(a)
	bn, bs := splitKey(b)
	if c := strings.Compare(an, bn); c != 0 {
		return c
	}
	ai, aerr := strconv.Atoi(as)
	bi, berr := strconv.Atoi(bs)
	if aerr == nil && berr == nil {
		return ai - bi
	}
	return strings.Compare(as, bs)
}

func isOff(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "0", "false", "no":
		return true
	}
	return false
}

func compact(vs []string) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if v = strings.TrimSpace(v); v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
