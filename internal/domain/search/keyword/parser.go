// Package keyword extracts structured filters from free-text plant queries.
package keyword

import (
	"regexp"
	"slices"
	"strings"
)

// Result is the outcome of parsing one query.
type Result struct {
	// Filters maps filter name to deduplicated matched values.
	Filters map[string][]string
	// Remaining is the query text left after stripping matched trigger phrases.
	Remaining string
}

type candidate struct {
	keyword string
	pattern *regexp.Regexp
	mapping *Mapping
}

// Parser matches trigger phrases against queries. It is immutable and safe for concurrent use.
type Parser struct {
	candidates []candidate
}

var whitespace = regexp.MustCompile(`\s+`)

// NewParser compiles the mapping table. Longer phrases are tried first so that
// "part shade" wins over "shade"; phrases of equal length keep table order.
func NewParser(mappings []Mapping) *Parser {
	var cs []candidate
	for i := range mappings {
		for _, kw := range mappings[i].Keywords {
			kw = strings.ToLower(kw)
			cs = append(cs, candidate{
				keyword: kw,
				pattern: wordPattern(kw),
				mapping: &mappings[i],
			})
		}
	}
	slices.SortStableFunc(cs, func(a, b candidate) int {
		return len(b.keyword) - len(a.keyword)
	})
	return &Parser{candidates: cs}
}

// Default is the parser over the built-in vocabulary.
var Default = NewParser(Mappings)

// Parse is shorthand for Default.Parse.
func Parse(query string) Result {
	return Default.Parse(query)
}

// Parse extracts filters from query. It never fails: an empty or blank query
// yields no filters and an empty remainder.
func (p *Parser) Parse(query string) Result {
	res := Result{Filters: map[string][]string{}}
	lower := strings.ToLower(strings.TrimSpace(query))
	if lower == "" {
		return res
	}

	var matched []candidate
	for _, c := range p.candidates {
		if !c.pattern.MatchString(lower) {
			continue
		}
		if overlapsMatched(lower, c.keyword, matched) {
			continue
		}
		for _, v := range c.mapping.Values {
			if !slices.Contains(res.Filters[c.mapping.Filter], v) {
				res.Filters[c.mapping.Filter] = append(res.Filters[c.mapping.Filter], v)
			}
		}
		matched = append(matched, c)
	}

	remaining := query
	for _, c := range matched {
		remaining = strings.TrimSpace(c.pattern.ReplaceAllString(remaining, ""))
	}
	res.Remaining = strings.TrimSpace(whitespace.ReplaceAllString(remaining, " "))
	return res
}

// overlapsMatched rejects a keyword that is a sub- or superstring of an
// already accepted keyword still present in the query.
func overlapsMatched(query, keyword string, matched []candidate) bool {
	for _, m := range matched {
		if strings.Contains(query, m.keyword) &&
			(strings.Contains(m.keyword, keyword) || strings.Contains(keyword, m.keyword)) {
			return true
		}
	}
	return false
}

func wordPattern(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
}
