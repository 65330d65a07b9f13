package db

import (
	"strconv"
	"strings"
)

// MatchAll is the query that selects every document in an index.
const MatchAll = "*"

// TagQuery matches a TAG attribute against any of values.
func TagQuery(attr string, values ...string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = EscapeTag(v)
	}
	return "@" + attr + ":{" + strings.Join(escaped, " | ") + "}"
}

// NumericQuery matches a NUMERIC attribute within [lo, hi]. Infinite bounds are open.
func NumericQuery(attr string, lo, hi float64) string {
	return "@" + attr + ":[" + formatBound(lo) + " " + formatBound(hi) + "]"
}

// HasNumber matches documents that carry a NUMERIC attribute.
func HasNumber(attr string) string {
	return "@" + attr + ":[-inf +inf]"
}

// And joins query parts into an intersection. No parts means MatchAll.
func And(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" && p != MatchAll {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return MatchAll
	}
	return strings.Join(out, " ")
}

// Or joins query parts into a parenthesized union.
func Or(parts ...string) string {
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, " | ") + ")"
}

func formatBound(v float64) string {
	switch {
	case v > 1e308:
		return "+inf"
	case v < -1e308:
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// EscapeTag escapes a TAG value for use inside {...}.
func EscapeTag(v string) string {
	return tagEscaper.Replace(v)
}

var tagEscaper = strings.NewReplacer(
	`\`, `\\`,
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"[", "\\[",
	"]", "\\]",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	"/", "\\/",
	" ", "\\ ",
)
