package condtable

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ncruces/go-strftime"
)

const defaultDateFormat = "%Y-%m-%d"

// numberOf reports the float value of v when v is a number or a string that
// parses as one. nil, booleans and empty strings are not numbers.
func numberOf(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case interface{ Float64() (float64, error) }: // json.Number and friends
		x, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = x
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = x
	default:
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// falsy reports whether v counts as "not set": nil, false, zero, NaN or the
// empty string.
func falsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	case float64:
		return x == 0 || math.IsNaN(x)
	case float32:
		return x == 0 || math.IsNaN(float64(x))
	}
	if f, ok := numberOf(v); ok {
		return f == 0
	}
	return false
}

// stringify renders a raw value the way a dashboard shows it unformatted.
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	case interface{ String() string }:
		return x.String()
	}
	if f, ok := numberOf(v); ok {
		return formatFloat(f)
	}
	return fmt.Sprint(v)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// instantOf resolves v to a point in time. Numbers are epoch milliseconds;
// strings are tried against layout (strftime) and then ISO forms.
func instantOf(v any, layout string) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		return parseInstant(x, layout)
	}
	if f, ok := numberOf(v); ok {
		return time.UnixMilli(int64(f)).UTC(), true
	}
	return time.Time{}, false
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseInstant(s, layout string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if layout != "" {
		if t, err := strftime.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, l := range isoLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return time.UnixMilli(int64(f)).UTC(), true
	}
	return time.Time{}, false
}

// groupThousands inserts western digit grouping into the integer part of s,
// keeping any fractional suffix as is.
func groupThousands(s string) string {
	intPart, frac := splitFraction(s)
	if n, err := strconv.ParseInt(intPart, 10, 64); err == nil {
		return humanize.Comma(n) + frac
	}
	return groupDigits(s, 3)
}

// groupIndian inserts lakh/crore grouping: the last three digits, then pairs.
func groupIndian(s string) string {
	return groupDigits(s, 2)
}

// groupDigits separates the last three integer digits of s, then every
// step digits before them. Strings that are not plain decimals are returned
// as is.
func groupDigits(s string, step int) string {
	intPart, frac := splitFraction(s)
	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}
	if intPart == "" || strings.TrimLeft(intPart, "0123456789") != "" {
		return s
	}
	if len(intPart) <= 3 {
		return sign + intPart + frac
	}
	head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
	var b strings.Builder
	b.WriteString(sign)
	lead := len(head) % step
	if lead > 0 {
		b.WriteString(head[:lead])
	}
	for i := lead; i < len(head); i += step {
		if b.Len() > len(sign) {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+step])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	b.WriteString(frac)
	return b.String()
}

// splitFraction splits "123.45" into "123" and ".45". A leading dot is not
// treated as a fraction separator.
func splitFraction(s string) (string, string) {
	if i := strings.IndexByte(s, '.'); i > 0 {
		return s[:i], s[i:]
	}
	return s, ""
}

// formatDate renders v through a strftime layout. Values that are not
// instants are returned unformatted.
func formatDate(v any, layout string) string {
	if layout == "" {
		layout = defaultDateFormat
	}
	t, ok := instantOf(v, "")
	if !ok {
		return stringify(v)
	}
	return strftime.Format(layout, t.UTC())
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
