package condtable

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Rank grades how well a value matches a search query. Higher is better.
type Rank int

const (
	RankNoMatch Rank = iota
	RankMatches
	RankAcronym
	RankContains
	RankWordStartsWith
	RankStartsWith
	RankEqual
	RankCaseSensitiveEqual
)

// FilterThreshold is the lowest rank a row needs to pass the global filter.
const FilterThreshold = RankAcronym

var rankNames = [...]string{
	"NO_MATCH", "MATCHES", "ACRONYM", "CONTAINS",
	"WORD_STARTS_WITH", "STARTS_WITH", "EQUAL", "CASE_SENSITIVE_EQUAL",
}

// String returns the rank name.
func (r Rank) String() string {
	if r < 0 || int(r) >= len(rankNames) {
		return "UNKNOWN"
	}
	return rankNames[r]
}

// RankMatch grades value against query.
func RankMatch(value, query string) Rank {
	if value == query {
		return RankCaseSensitiveEqual
	}
	value, query = fold(value), fold(query)
	if utf8.RuneCountInString(query) > utf8.RuneCountInString(value) {
		return RankNoMatch
	}
	switch {
	case value == query:
		return RankEqual
	case strings.HasPrefix(value, query):
		return RankStartsWith
	case strings.Contains(value, " "+query):
		return RankWordStartsWith
	case strings.Contains(value, query):
		return RankContains
	case len([]rune(query)) == 1:
		return RankNoMatch
	case strings.Contains(acronym(value), query):
		return RankAcronym
	case subsequence(value, query):
		return RankMatches
	default:
		return RankNoMatch
	}
}

// fold lowercases s and strips diacritics.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}

// acronym takes the first letter of every word, splitting on spaces and
// hyphens.
func acronym(s string) string {
	var b strings.Builder
	for _, word := range strings.Fields(s) {
		for _, part := range strings.Split(word, "-") {
			for _, r := range part {
				b.WriteRune(r)
				break
			}
		}
	}
	return b.String()
}

// subsequence reports whether every rune of query appears in value in
// order.
func subsequence(value, query string) bool {
	q := []rune(query)
	i := 0
	for _, r := range value {
		if i < len(q) && r == q[i] {
			i++
		}
	}
	return i == len(q)
}

// rowRank grades a row by the best rank among its column values and the
// space-joined row text, so "north 42" can match across columns.
func rowRank(row Row, keys []string, query string) Rank {
	best := RankNoMatch
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = stringify(row[k])
		if r := RankMatch(parts[i], query); r > best {
			best = r
		}
	}
	if r := RankMatch(strings.Join(parts, " "), query); r > best {
		best = r
	}
	return best
}

// FilterRows keeps the rows whose rank for query reaches FilterThreshold,
// in their original order. An empty query keeps every row.
func FilterRows(rows []Row, keys []string, query string) []Row {
	if strings.TrimSpace(query) == "" {
		return rows
	}
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if rowRank(row, keys, query) >= FilterThreshold {
			out = append(out, row)
		}
	}
	return out
}
