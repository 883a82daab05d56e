package condtable

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortRows returns a copy of rows ordered by column col. The sort is stable
// in both directions: rows with equal keys keep their relative order.
// Temporal columns order by instant, string columns by case-insensitive
// collation with numeric runs compared by value, and everything else
// numerically with a string fallback. Missing values sort first.
func SortRows(rows []Row, col Column, dir SortDirection) []Row {
	out := append([]Row(nil), rows...)
	if dir == SortNone {
		return out
	}
	compare := comparatorFor(col)
	slices.SortStableFunc(out, func(a, b Row) int {
		c := compare(a[col.Key], b[col.Key])
		if dir == SortDescending {
			return -c
		}
		return c
	})
	return out
}

func comparatorFor(col Column) func(a, b any) int {
	switch col.Type {
	case TypeTemporal, TypeDate:
		return compareTemporal
	case TypeString:
		coll := collate.New(language.Und, collate.IgnoreCase, collate.Numeric)
		return func(a, b any) int {
			if c, done := compareMissing(a, b); done {
				return c
			}
			return coll.CompareString(stringify(a), stringify(b))
		}
	default:
		return compareBasic
	}
}

// compareMissing orders nil before anything else. done is false when both
// values are present.
func compareMissing(a, b any) (int, bool) {
	switch {
	case a == nil && b == nil:
		return 0, true
	case a == nil:
		return -1, true
	case b == nil:
		return 1, true
	}
	return 0, false
}

func compareTemporal(a, b any) int {
	ta, okA := instantOf(a, "")
	tb, okB := instantOf(b, "")
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return -1
	case !okB:
		return 1
	}
	return ta.Compare(tb)
}

func compareBasic(a, b any) int {
	if c, done := compareMissing(a, b); done {
		return c
	}
	fa, okA := numberOf(a)
	fb, okB := numberOf(b)
	switch {
	case okA && okB:
		return cmp.Compare(fa, fb)
	case okA:
		return -1
	case okB:
		return 1
	}
	return cmp.Compare(stringify(a), stringify(b))
}
