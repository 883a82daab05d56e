package condtable

import (
	"strings"
	"time"
)

// Satisfies reports whether value satisfies boundary b for a column of type
// t. Date and temporal comparisons resolve "now" against the current time
// and parse text through dateFormat (strftime directives).
//
// A boundary whose value is falsy is treated as absent and reports false;
// callers that combine boundaries into a range skip absent ones instead of
// calling Satisfies.
func Satisfies(value any, b Boundary, t ValueType, dateFormat string) bool {
	return satisfiesAt(time.Now(), value, b, t, dateFormat)
}

func satisfiesAt(now time.Time, value any, b Boundary, t ValueType, dateFormat string) bool {
	if !boundaryPresent(&b) {
		return false
	}
	sym := b.Symbol.canonical()
	if sym == "" {
		return false
	}
	switch t {
	case TypeNumber:
		return compareNumbers(value, b.Value, sym)
	case TypeString:
		return sym == SymbolEqual && stringify(value) == stringify(b.Value)
	case TypeDate, TypeTemporal:
		return compareInstants(now, value, b.Value, sym, dateFormat)
	default:
		// Undeclared types compare numerically when both sides are numbers
		// and fall back to exact string equality.
		if _, ok := numberOf(value); ok {
			if _, ok := numberOf(b.Value); ok {
				return compareNumbers(value, b.Value, sym)
			}
		}
		sv, ok1 := value.(string)
		bv, ok2 := b.Value.(string)
		return ok1 && ok2 && sym == SymbolEqual && sv == bv
	}
}

func boundaryPresent(b *Boundary) bool {
	return b != nil && !falsy(b.Value)
}

func compareNumbers(value, bound any, sym Symbol) bool {
	v, ok := numberOf(value)
	if !ok {
		return false
	}
	c, ok := numberOf(bound)
	if !ok {
		return false
	}
	switch sym {
	case SymbolGreater:
		return v > c
	case SymbolGreaterEqual:
		return v >= c
	case SymbolLess:
		return v < c
	case SymbolLessEqual:
		return v <= c
	case SymbolEqual:
		return v == c
	default:
		return false
	}
}

func compareInstants(now time.Time, value, bound any, sym Symbol, dateFormat string) bool {
	v, ok := instantOf(value, dateFormat)
	if !ok {
		return false
	}
	c, ok := comparativeInstant(now, bound, dateFormat)
	if !ok {
		return false
	}
	switch sym {
	case SymbolGreater:
		return v.After(c)
	case SymbolGreaterEqual:
		return !v.Before(c)
	case SymbolLess:
		return v.Before(c)
	case SymbolLessEqual:
		return !v.After(c)
	case SymbolEqual:
		return v.Equal(c)
	default:
		return false
	}
}

// comparativeInstant resolves a boundary value. "now" is the current time;
// a purely numeric value is first tried against dateFormat (e.g. 20240131
// under "%Y%m%d") and otherwise read as epoch milliseconds.
func comparativeInstant(now time.Time, bound any, dateFormat string) (time.Time, bool) {
	if s, ok := bound.(string); ok {
		s = strings.TrimSpace(s)
		if strings.EqualFold(s, "now") {
			return now, true
		}
		return parseInstant(s, dateFormat)
	}
	if _, ok := numberOf(bound); ok && dateFormat != "" {
		if t, ok := parseInstant(stringify(bound), dateFormat); ok {
			return t, true
		}
	}
	return instantOf(bound, dateFormat)
}
