package condtable

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupIndian(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input, want string
	}{
		"seven digits":  {input: "1234567", want: "12,34,567"},
		"five digits":   {input: "12345", want: "12,345"},
		"six digits":    {input: "123456", want: "1,23,456"},
		"crore":         {input: "123456789", want: "12,34,56,789"},
		"negative":      {input: "-1234567.5", want: "-12,34,567.5"},
		"three digits":  {input: "100", want: "100"},
		"not a number":  {input: "abc", want: "abc"},
		"sign only":     {input: "-", want: "-"},
		"scientific":    {input: "1e+21", want: "1e+21"},
		"leading point": {input: ".5", want: ".5"},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, groupIndian(tt.input))
		})
	}
}

func TestGroupThousands(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "1,234,567.25", groupThousands("1234567.25"))
	assert.Equal(t, "-1,000", groupThousands("-1000"))
	assert.Equal(t, "999", groupThousands("999"))
	assert.Equal(t, "x", groupThousands("x"))
	assert.Equal(t, "1,000,000,000,000,000,000,000", groupThousands("1000000000000000000000"))
	assert.Equal(t, "-12,345,678,901,234,567,890.5", groupThousands("-12345678901234567890.5"))
}

func TestSplitFraction(t *testing.T) {
	t.Parallel()
	i, f := splitFraction("1.5")
	assert.Equal(t, "1", i)
	assert.Equal(t, ".5", f)

	i, f = splitFraction(".5")
	assert.Equal(t, ".5", i)
	assert.Empty(t, f)
}

func TestNumberOf(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input  any
		want   float64
		wantOK bool
	}{
		"float":          {input: 2.5, want: 2.5, wantOK: true},
		"int8":           {input: int8(3), want: 3, wantOK: true},
		"uint64":         {input: uint64(9), want: 9, wantOK: true},
		"padded string":  {input: "  3.5 ", want: 3.5, wantOK: true},
		"json number":    {input: json.Number("7"), want: 7, wantOK: true},
		"bad json":       {input: json.Number("x"), wantOK: false},
		"empty string":   {input: "", wantOK: false},
		"text":           {input: "abc", wantOK: false},
		"bool":           {input: true, wantOK: false},
		"nil":            {input: nil, wantOK: false},
		"nan":            {input: math.NaN(), wantOK: false},
		"infinity":       {input: math.Inf(1), want: math.Inf(1), wantOK: true},
		"unhandled type": {input: []int{1}, wantOK: false},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, ok := numberOf(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFalsy(t *testing.T) {
	t.Parallel()
	for _, v := range []any{nil, false, 0, 0.0, int64(0), "", math.NaN()} {
		assert.True(t, falsy(v), "%#v", v)
	}
	for _, v := range []any{true, 1, -0.5, "0", "a", []int{}} {
		assert.False(t, falsy(v), "%#v", v)
	}
}

func TestStringify(t *testing.T) {
	t.Parallel()
	assert.Empty(t, stringify(nil))
	assert.Equal(t, "true", stringify(true))
	assert.Equal(t, "42", stringify(42))
	assert.Equal(t, "0.1", stringify(0.1))
	assert.Equal(t, "NaN", stringify(math.NaN()))
	assert.Equal(t, "-Infinity", stringify(math.Inf(-1)))
	assert.Equal(t, "Ascending", stringify(SortAscending))
}

func TestFormatDate(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "2024-02-01", formatDate(1706745600000, ""))
	assert.Equal(t, "Feb 2024", formatDate("2024-02-01T10:00:00Z", "%b %Y"))
	assert.Equal(t, "later", formatDate("later", ""))
}

func TestScanNumber(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 4, scanNumber("12.5.3", 0))
	assert.Equal(t, 3, scanNumber("100+1", 0))
	assert.Equal(t, 6, scanNumber("1+22.5", 2))
}

func TestScanIdent(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input    string
		wantName string
		wantEnd  int
	}{
		"bare":       {input: "abc_1+2", wantName: "abc_1", wantEnd: 5},
		"braced":     {input: "{net sales}+1", wantName: "net sales", wantEnd: 11},
		"unfinished": {input: "{open", wantName: "open", wantEnd: 5},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, end := scanIdent(tt.input, 0)
			assert.Equal(t, tt.wantName, got)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestPaginate(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		pageSize, total, visible, index, fallback int
		want                                      paging
	}{
		"clamps past end":       {pageSize: 10, total: 37, visible: 37, index: 9, fallback: 10, want: paging{size: 10, count: 4, index: 3}},
		"clamps negative":       {pageSize: 10, total: 37, visible: 37, index: -2, fallback: 10, want: paging{size: 10, count: 4, index: 0}},
		"all rows":              {pageSize: 0, total: 37, visible: 5, index: 2, fallback: 10, want: paging{size: 37, count: 1, index: 0}},
		"no rows uses fallback": {pageSize: 0, total: 0, visible: 0, index: 0, fallback: 10, want: paging{size: 10, count: 1, index: 0}},
		"filtered page count":   {pageSize: 10, total: 37, visible: 11, index: 1, fallback: 10, want: paging{size: 10, count: 2, index: 1}},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, paginate(tt.pageSize, tt.total, tt.visible, tt.index, tt.fallback))
		})
	}
}

func TestOverWhite(t *testing.T) {
	t.Parallel()
	assert.Equal(t, RGBA{R: 255, G: 128, B: 128, A: 1}, overWhite(RGBA{R: 255, A: 0.5}))
	assert.Equal(t, RGBA{R: 10, G: 20, B: 30, A: 1}, overWhite(RGBA{R: 10, G: 20, B: 30, A: 1}))
	assert.Equal(t, RGBA{R: 255, G: 255, B: 255, A: 1}, overWhite(RGBA{A: 0}))
}

func TestSpanCuts(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []bool{true, true}, spanCuts(3, nil))
	assert.Equal(t, []bool{true, false}, spanCuts(3, []span{{width: 1}, {label: "G", width: 2}}))
	assert.Equal(t, []bool{false, true, false}, spanCuts(4, []span{{label: "A", width: 2}, {label: "B", width: 2}}))
	assert.Empty(t, spanCuts(1, nil))
}

func TestFitSpans(t *testing.T) {
	t.Parallel()
	widths := []int{1, 1, 1}
	fitSpans(widths, []span{{width: 1}, {label: "Group label", width: 2}}, borderedGap)
	assert.Equal(t, []int{1, 1, 7}, widths)

	widths = []int{5, 5}
	fitSpans(widths, []span{{label: "G", width: 2}}, plainGap)
	assert.Equal(t, []int{5, 5}, widths)
}

func TestAlignCell(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ab   ", alignCell("ab", 5, AlignLeft))
	assert.Equal(t, "   ab", alignCell("ab", 5, AlignRight))
	assert.Equal(t, " ab  ", alignCell("ab", 5, AlignCenter))
	assert.Equal(t, "漢字 ", alignCell("漢字", 5, AlignLeft))
	assert.Equal(t, "toolong", alignCell("toolong", 3, AlignRight))
}

func TestClosest(t *testing.T) {
	t.Parallel()
	keys := []string{"region", "units", "revenue"}
	assert.Equal(t, "revenue", closest("revnue", keys))
	assert.Equal(t, "units", closest("UNIT", keys))
	assert.Empty(t, closest("completely different", keys))
	assert.Empty(t, closest("x", nil))
}

func TestAcronym(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "posn", acronym("point-of-sale  north"))
	assert.Equal(t, "ñb", acronym("ñu bar"))
	assert.Empty(t, acronym("   "))
}

func TestSubsequence(t *testing.T) {
	t.Parallel()
	assert.True(t, subsequence("abcdef", "ace"))
	assert.True(t, subsequence("abc", ""))
	assert.False(t, subsequence("abc", "ca"))
}

func TestFold(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ca va", fold("Ça Va"))
	assert.Equal(t, "strasse", fold("STRASSE"))
}

func TestFingerprints(t *testing.T) {
	t.Parallel()
	joined := headerFingerprint([]Column{{Key: "ab"}}, nil)
	split := headerFingerprint([]Column{{Key: "a", Label: "b"}}, nil)
	assert.NotEqual(t, joined, split)

	cols := []Column{{Key: "a"}, {Key: "b"}}
	g := []Group{{Label: "G", Children: []GroupChild{{ColumnKey: "a"}}}}
	assert.Equal(t, headerFingerprint(cols, g), headerFingerprint(cols, g))
	assert.NotEqual(t, headerFingerprint(cols, g), headerFingerprint(cols, nil))

	assert.NotEqual(t, totalsFingerprint(1, cols), totalsFingerprint(2, cols))
	assert.NotEqual(t, totalsFingerprint(1, cols), totalsFingerprint(1, cols[:1]))
}

func TestMemo(t *testing.T) {
	t.Parallel()
	m := newMemo()
	cols := []Column{{Key: "n"}}

	first := m.aggregate(1, []Row{{"n": 1}, {"n": 2}}, cols)
	total, _ := first.Get("n")
	assert.Equal(t, 3.0, total.Value())

	// Same generation: the cached totals are returned.
	cached := m.aggregate(1, []Row{{"n": 100}}, cols)
	total, _ = cached.Get("n")
	assert.Equal(t, 3.0, total.Value())

	fresh := m.aggregate(2, []Row{{"n": 100}}, cols)
	total, _ = fresh.Get("n")
	assert.Equal(t, 100.0, total.Value())

	groups := []Group{{Label: "G", Children: []GroupChild{{ColumnKey: "n"}}}}
	tree := m.headerTree(cols, groups)
	assert.True(t, tree.Grouped())
	assert.Equal(t, 1, m.headers.Len())
	m.headerTree(cols, groups)
	assert.Equal(t, 1, m.headers.Len())
}

func TestSameValue(t *testing.T) {
	t.Parallel()
	assert.True(t, sameValue(1, 1.0))
	assert.True(t, sameValue("a", "a"))
	assert.True(t, sameValue(nil, nil))
	assert.False(t, sameValue(nil, ""))
	assert.False(t, sameValue("1", "2"))
}
