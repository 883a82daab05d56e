package condtable

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// NonNumericTotal is displayed for columns holding any non-numeric value.
const NonNumericTotal = "-"

// totalState is the per-column aggregation state.
type totalState int

const (
	totalUnseen totalState = iota
	totalNumeric
	totalNonNumeric
)

// Total is the aggregated sum of one column.
type Total struct {
	Key   string
	state totalState
	sum   decimal.Decimal
}

// Seen reports whether any row carried a value for the column.
func (t Total) Seen() bool { return t.state != totalUnseen }

// NonNumeric reports whether the column held a non-numeric value.
func (t Total) NonNumeric() bool { return t.state == totalNonNumeric }

// Value returns the sum. It is zero for unseen and non-numeric columns.
func (t Total) Value() float64 {
	if t.state != totalNumeric {
		return 0
	}
	return t.sum.InexactFloat64()
}

// Raw returns the value handed to the rule engine for the totals row: the
// sum, the sentinel "-", or nil when the column was never seen.
func (t Total) Raw() any {
	switch t.state {
	case totalNumeric:
		return t.Value()
	case totalNonNumeric:
		return NonNumericTotal
	default:
		return nil
	}
}

// Display renders the total without any rule applied.
func (t Total) Display() string { return stringify(t.Raw()) }

// observe folds one value into the total. Once a column turns non-numeric
// it stays that way.
func (t *Total) observe(v any) {
	if t.state == totalNonNumeric {
		return
	}
	n, ok := aggregateNumber(v)
	if !ok || math.IsInf(n, 0) {
		t.state = totalNonNumeric
		t.sum = decimal.Zero
		return
	}
	t.state = totalNumeric
	t.sum = t.sum.Add(decimal.NewFromFloat(n).Round(2)).Round(2)
}

// Totals holds one Total per column, in column order.
type Totals []Total

// Get returns the total for key.
func (ts Totals) Get(key string) (Total, bool) {
	for _, t := range ts {
		if t.Key == key {
			return t, true
		}
	}
	return Total{}, false
}

// Values returns the numeric sums by key, omitting non-numeric and unseen
// columns. It is the variable set for total formulas.
func (ts Totals) Values() map[string]float64 {
	vars := make(map[string]float64, len(ts))
	for _, t := range ts {
		if t.state == totalNumeric {
			vars[t.Key] = t.Value()
		}
	}
	return vars
}

// Aggregate sums every column across all rows. Each value and the running
// sum are rounded to two decimals. A single non-numeric value anywhere in a
// column makes its total the sentinel "-". Rows missing a key do not count
// as a value for that column.
func Aggregate(rows []Row, columns []Column) Totals {
	totals := make(Totals, len(columns))
	for i, c := range columns {
		totals[i] = Total{Key: c.Key, sum: decimal.Zero}
	}
	for _, row := range rows {
		for i := range totals {
			v, ok := row[totals[i].Key]
			if !ok {
				continue
			}
			totals[i].observe(v)
		}
	}
	return totals
}

// aggregateNumber converts v for summing. Unlike range comparisons, nil and
// empty strings count as zero and booleans as 0 or 1.
func aggregateNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, !math.IsNaN(f)
	}
	return numberOf(v)
}
