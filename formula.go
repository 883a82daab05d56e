package condtable

import (
	"fmt"
	"math"
	"strconv"
)

// Evaluate computes an infix arithmetic expression over + - * / and
// parentheses. Division follows IEEE-754. Malformed expressions are not
// reported; they produce whatever the reduction yields, often NaN. Use
// [CheckFormula] to validate expressions when rules are authored.
func Evaluate(expr string) float64 {
	return EvaluateWith(expr, nil)
}

// EvaluateWith is [Evaluate] with named operands. An identifier is either a
// bare name ([A-Za-z_][A-Za-z0-9_]*) or any text in braces, e.g.
// "{sum__num} / {count}". Names missing from vars evaluate to NaN.
func EvaluateWith(expr string, vars map[string]float64) float64 {
	var (
		values    []float64
		operators []byte
	)
	pop := func() float64 {
		if len(values) == 0 {
			return math.NaN()
		}
		v := values[len(values)-1]
		values = values[:len(values)-1]
		return v
	}
	reduce := func() {
		op := operators[len(operators)-1]
		operators = operators[:len(operators)-1]
		b := pop()
		a := pop()
		values = append(values, applyOp(a, b, op))
	}

	for i := 0; i < len(expr); i++ {
		ch := expr[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
		case ch == '(':
			operators = append(operators, ch)
		case isDigit(ch):
			end := scanNumber(expr, i)
			f, _ := strconv.ParseFloat(expr[i:end], 64)
			values = append(values, f)
			i = end - 1
		case ch == '{' || isIdentStart(ch):
			name, end := scanIdent(expr, i)
			v, ok := vars[name]
			if !ok {
				v = math.NaN()
			}
			values = append(values, v)
			i = end - 1
		case ch == ')':
			for len(operators) > 0 && operators[len(operators)-1] != '(' {
				reduce()
			}
			if len(operators) > 0 {
				operators = operators[:len(operators)-1]
			}
		default:
			for len(operators) > 0 && precedence(operators[len(operators)-1]) >= precedence(ch) {
				reduce()
			}
			operators = append(operators, ch)
		}
	}
	for len(operators) > 0 {
		reduce()
	}
	return pop()
}

// CheckFormula validates an expression without evaluating it: operands and
// operators must alternate, parentheses must balance and only + - * / are
// allowed. Identifiers are accepted as operands.
func CheckFormula(expr string) error {
	depth := 0
	expectOperand := true
	for i := 0; i < len(expr); i++ {
		ch := expr[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
		case ch == '(':
			if !expectOperand {
				return fmt.Errorf("%w: unexpected '(' at %d in %q", ErrInvalidFormula, i, expr)
			}
			depth++
		case ch == ')':
			if expectOperand {
				return fmt.Errorf("%w: unexpected ')' at %d in %q", ErrInvalidFormula, i, expr)
			}
			if depth == 0 {
				return fmt.Errorf("%w: unbalanced ')' at %d in %q", ErrInvalidFormula, i, expr)
			}
			depth--
		case isDigit(ch), ch == '{', isIdentStart(ch):
			if !expectOperand {
				return fmt.Errorf("%w: missing operator at %d in %q", ErrInvalidFormula, i, expr)
			}
			var end int
			if isDigit(ch) {
				end = scanNumber(expr, i)
			} else {
				var name string
				name, end = scanIdent(expr, i)
				if name == "" || (ch == '{' && expr[end-1] != '}') {
					return fmt.Errorf("%w: bad identifier at %d in %q", ErrInvalidFormula, i, expr)
				}
			}
			i = end - 1
			expectOperand = false
		case precedence(ch) > 0:
			if expectOperand {
				return fmt.Errorf("%w: missing operand before %q at %d in %q", ErrInvalidFormula, ch, i, expr)
			}
			expectOperand = true
		default:
			return fmt.Errorf("%w: unknown operator %q at %d in %q", ErrInvalidFormula, ch, i, expr)
		}
	}
	if expectOperand {
		return fmt.Errorf("%w: incomplete expression %q", ErrInvalidFormula, expr)
	}
	if depth != 0 {
		return fmt.Errorf("%w: unbalanced '(' in %q", ErrInvalidFormula, expr)
	}
	return nil
}

func precedence(op byte) int {
	switch op {
	case '+', '-':
		return 1
	case '*', '/':
		return 2
	default:
		return 0
	}
}

func applyOp(a, b float64, op byte) float64 {
	switch op {
	case '+':
		return a + b
	case '-':
		return a - b
	case '*':
		return a * b
	case '/':
		return a / b
	default:
		return 0
	}
}

// scanNumber returns the end of the numeric literal starting at i. A literal
// is a run of digits with at most one decimal point.
func scanNumber(s string, i int) int {
	dot := false
	for i < len(s) {
		switch {
		case isDigit(s[i]):
		case s[i] == '.' && !dot:
			dot = true
		default:
			return i
		}
		i++
	}
	return i
}

// scanIdent returns the identifier starting at i and the index just past it.
func scanIdent(s string, i int) (string, int) {
	if s[i] == '{' {
		for j := i + 1; j < len(s); j++ {
			if s[j] == '}' {
				return s[i+1 : j], j + 1
			}
		}
		return s[i+1:], len(s)
	}
	j := i + 1
	for j < len(s) && (isIdentStart(s[j]) || isDigit(s[j])) {
		j++
	}
	return s[i:j], j
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
