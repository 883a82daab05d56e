package condtable_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bjaus/condtable"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		expr string
		want float64
	}{
		"precedence":        {expr: "2 + 3 * 4", want: 14},
		"parentheses":       {expr: "(2 + 3) * 4", want: 20},
		"division":          {expr: "8 / 2", want: 4},
		"left associative":  {expr: "10 - 4 - 3", want: 3},
		"chained division":  {expr: "100 / 10 / 5", want: 2},
		"decimals":          {expr: "2.5 * 2", want: 5},
		"nested":            {expr: "((1 + 2) * (3 + 4)) / 7", want: 3},
		"no spaces":         {expr: "1+2*3-4/2", want: 5},
		"single number":     {expr: "42", want: 42},
		"divide by zero":    {expr: "1 / 0", want: math.Inf(1)},
		"negative quotient": {expr: "0 - 1 / 0", want: math.Inf(-1)},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, condtable.Evaluate(tt.expr))
		})
	}
}

func TestEvaluateMalformed(t *testing.T) {
	t.Parallel()
	assert.True(t, math.IsNaN(condtable.Evaluate("")))
	assert.True(t, math.IsNaN(condtable.Evaluate("1 +")))
	assert.True(t, math.IsNaN(condtable.Evaluate("0 / 0")))
}

func TestEvaluateWith(t *testing.T) {
	t.Parallel()
	vars := map[string]float64{
		"revenue":      300,
		"units":        60,
		"gross margin": 50,
		"sum__num":     200,
	}
	tests := map[string]struct {
		expr string
		want float64
	}{
		"bare names":        {expr: "revenue / units", want: 5},
		"braced name":       {expr: "{gross margin} / {sum__num} * 100", want: 25},
		"mixed with number": {expr: "(revenue - 100) / 4", want: 50},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, condtable.EvaluateWith(tt.expr, vars))
		})
	}
	assert.True(t, math.IsNaN(condtable.EvaluateWith("missing * 2", vars)))
}

func TestCheckFormula(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		expr    string
		wantErr bool
	}{
		"valid":               {expr: "(a + 2) * {b c} / 4"},
		"valid number":        {expr: "3.5"},
		"trailing operator":   {expr: "1 +", wantErr: true},
		"leading operator":    {expr: "* 2", wantErr: true},
		"missing operator":    {expr: "1 2", wantErr: true},
		"unbalanced open":     {expr: "(1 + 2", wantErr: true},
		"unbalanced close":    {expr: "1 + 2)", wantErr: true},
		"empty parentheses":   {expr: "()", wantErr: true},
		"unknown operator":    {expr: "1 % 2", wantErr: true},
		"unterminated brace":  {expr: "{abc + 1", wantErr: true},
		"empty expression":    {expr: "", wantErr: true},
		"operand after paren": {expr: "(1) 2", wantErr: true},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := condtable.CheckFormula(tt.expr)
			if tt.wantErr {
				assert.ErrorIs(t, err, condtable.ErrInvalidFormula)
				return
			}
			assert.NoError(t, err)
		})
	}
}
