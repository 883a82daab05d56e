package condtable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bjaus/condtable"
)

func TestSatisfies(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		value      any
		bound      condtable.Boundary
		typ        condtable.ValueType
		dateFormat string
		want       bool
	}{
		"number greater":            {value: 5, bound: condtable.Boundary{Value: 3, Symbol: ">"}, typ: condtable.TypeNumber, want: true},
		"number not greater":        {value: 3, bound: condtable.Boundary{Value: 3, Symbol: ">"}, typ: condtable.TypeNumber, want: false},
		"number greater equal":      {value: "5", bound: condtable.Boundary{Value: 5, Symbol: ">="}, typ: condtable.TypeNumber, want: true},
		"number less":               {value: 2.5, bound: condtable.Boundary{Value: "3", Symbol: "<"}, typ: condtable.TypeNumber, want: true},
		"number less equal":         {value: 3, bound: condtable.Boundary{Value: 3, Symbol: "<="}, typ: condtable.TypeNumber, want: true},
		"number equal":              {value: 7, bound: condtable.Boundary{Value: 7.0, Symbol: "="}, typ: condtable.TypeNumber, want: true},
		"number named symbol":       {value: 10, bound: condtable.Boundary{Value: 5, Symbol: "GREATER"}, typ: condtable.TypeNumber, want: true},
		"number lowercase name":     {value: 5, bound: condtable.Boundary{Value: 5, Symbol: "greater_equal"}, typ: condtable.TypeNumber, want: true},
		"number non-numeric value":  {value: "abc", bound: condtable.Boundary{Value: 1, Symbol: ">"}, typ: condtable.TypeNumber, want: false},
		"number nil value":          {value: nil, bound: condtable.Boundary{Value: 1, Symbol: "<"}, typ: condtable.TypeNumber, want: false},
		"zero boundary is absent":   {value: 5, bound: condtable.Boundary{Value: 0, Symbol: ">"}, typ: condtable.TypeNumber, want: false},
		"empty boundary is absent":  {value: 5, bound: condtable.Boundary{Value: "", Symbol: "<"}, typ: condtable.TypeNumber, want: false},
		"unknown symbol":            {value: 5, bound: condtable.Boundary{Value: 1, Symbol: "~"}, typ: condtable.TypeNumber, want: false},
		"missing symbol":            {value: 5, bound: condtable.Boundary{Value: 1}, typ: condtable.TypeNumber, want: false},
		"string equal":              {value: "ok", bound: condtable.Boundary{Value: "ok", Symbol: "="}, typ: condtable.TypeString, want: true},
		"string not equal":          {value: "ok", bound: condtable.Boundary{Value: "OK", Symbol: "="}, typ: condtable.TypeString, want: false},
		"string greater never":      {value: "b", bound: condtable.Boundary{Value: "a", Symbol: ">"}, typ: condtable.TypeString, want: false},
		"string less never":         {value: "a", bound: condtable.Boundary{Value: "b", Symbol: "<"}, typ: condtable.TypeString, want: false},
		"date after":                {value: "2024-02-01", bound: condtable.Boundary{Value: "2024-01-01", Symbol: ">"}, typ: condtable.TypeDate, want: true},
		"date before":               {value: "2024-02-01", bound: condtable.Boundary{Value: "2024-01-01", Symbol: "<"}, typ: condtable.TypeDate, want: false},
		"date equal":                {value: "2024-01-01", bound: condtable.Boundary{Value: "2024-01-01", Symbol: "="}, typ: condtable.TypeDate, want: true},
		"date with format":          {value: "01/02/2024", bound: condtable.Boundary{Value: "15/01/2024", Symbol: ">"}, typ: condtable.TypeDate, dateFormat: "%d/%m/%Y", want: true},
		"temporal epoch millis":     {value: 1706745600000, bound: condtable.Boundary{Value: "2024-02-01", Symbol: ">="}, typ: condtable.TypeTemporal, want: true},
		"temporal before now":       {value: "2000-01-01", bound: condtable.Boundary{Value: "now", Symbol: "<"}, typ: condtable.TypeTemporal, want: true},
		"temporal unparseable":      {value: "someday", bound: condtable.Boundary{Value: "now", Symbol: "<"}, typ: condtable.TypeTemporal, want: false},
		"untyped numbers":           {value: 10, bound: condtable.Boundary{Value: 5, Symbol: ">"}, want: true},
		"untyped numeric strings":   {value: "10", bound: condtable.Boundary{Value: "5", Symbol: ">"}, want: true},
		"untyped strings equal":     {value: "abc", bound: condtable.Boundary{Value: "abc", Symbol: "="}, want: true},
		"untyped strings not equal": {value: "abc", bound: condtable.Boundary{Value: "abd", Symbol: "="}, want: false},
		"untyped mixed":             {value: "abc", bound: condtable.Boundary{Value: 5, Symbol: "="}, want: false},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := condtable.Satisfies(tt.value, tt.bound, tt.typ, tt.dateFormat)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSymbol(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    condtable.Symbol
		wantErr bool
	}{
		"glyph":          {input: ">=", want: condtable.SymbolGreaterEqual},
		"name":           {input: "LESS_EQUAL", want: condtable.SymbolLessEqual},
		"lowercase name": {input: "equal", want: condtable.SymbolEqual},
		"padded":         {input: " < ", want: condtable.SymbolLess},
		"unknown":        {input: "!=", wantErr: true},
		"empty":          {input: "", wantErr: true},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := condtable.ParseSymbol(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, condtable.ErrInvalidSymbol)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseValueType(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    condtable.ValueType
		wantErr bool
	}{
		"number":   {input: "NUMBER", want: condtable.TypeNumber},
		"numeric":  {input: "numeric", want: condtable.TypeNumber},
		"string":   {input: "String", want: condtable.TypeString},
		"date":     {input: "date", want: condtable.TypeDate},
		"temporal": {input: "TEMPORAL", want: condtable.TypeTemporal},
		"unknown":  {input: "BLOB", wantErr: true},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := condtable.ParseValueType(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, condtable.ErrInvalidValueType)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCellFormat(t *testing.T) {
	t.Parallel()
	assert.Equal(t, condtable.FormatThousands, condtable.ParseCellFormat("thousands"))
	assert.Equal(t, condtable.FormatIndian, condtable.ParseCellFormat("IN"))
	assert.Equal(t, condtable.FormatPercentage, condtable.ParseCellFormat("PERCENTAGE"))
	assert.Equal(t, condtable.FormatNone, condtable.ParseCellFormat("NONE"))
	assert.Equal(t, condtable.FormatNone, condtable.ParseCellFormat("bogus"))
}

func TestAlignment(t *testing.T) {
	t.Parallel()
	assert.Equal(t, condtable.AlignRight, condtable.ParseAlignment("Right"))
	assert.Equal(t, condtable.AlignCenter, condtable.ParseAlignment("center"))
	assert.Equal(t, condtable.AlignLeft, condtable.ParseAlignment(""))
	assert.Equal(t, "right", condtable.AlignRight.String())
	assert.Equal(t, "left", condtable.AlignLeft.String())
}

func TestRGBA(t *testing.T) {
	t.Parallel()
	c := condtable.RGBA{R: 255, G: 128, B: 0, A: 0.5}
	assert.Equal(t, "rgba(255,128,0,0.5)", c.CSS())
	assert.Equal(t, "#ff8000", c.Hex())
	assert.Equal(t, "rgba(255,255,255,0)", condtable.Transparent.CSS())
}
