package condtable

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrInvalidTemplate   = errors.New("invalid template")
	ErrInvalidFormula    = errors.New("invalid formula")
	ErrUnknownColumn     = errors.New("unknown column")
	ErrInvalidSymbol     = errors.New("invalid symbol")
	ErrInvalidValueType  = errors.New("invalid value type")
	ErrInvalidRules      = errors.New("invalid rules")
)

// ValueType is the declared type of a column's values.
type ValueType string

const (
	TypeNumber   ValueType = "NUMBER"
	TypeString   ValueType = "STRING"
	TypeDate     ValueType = "DATE"
	TypeTemporal ValueType = "TEMPORAL"
)

// String returns the type name.
func (t ValueType) String() string { return string(t) }

// ParseValueType parses a value type name. Matching is case-insensitive and
// "NUMERIC" is accepted as an alias of NUMBER.
func ParseValueType(s string) (ValueType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NUMBER", "NUMERIC":
		return TypeNumber, nil
	case "STRING":
		return TypeString, nil
	case "DATE":
		return TypeDate, nil
	case "TEMPORAL":
		return TypeTemporal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidValueType, s)
	}
}

// Column describes one column of the result set. Key is the identity; Label
// is only used for display.
type Column struct {
	Key      string    `json:"key" yaml:"key" mapstructure:"key"`
	Label    string    `json:"label" yaml:"label" mapstructure:"label"`
	Type     ValueType `json:"type" yaml:"type" mapstructure:"type"`
	IsMetric bool      `json:"isMetric" yaml:"isMetric" mapstructure:"isMetric"`
}

// DisplayLabel returns Label, or Key when no label is set.
func (c Column) DisplayLabel() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Key
}

// Row maps column keys to primitive values: numbers, strings, epoch
// milliseconds or nil. Rows are never modified.
type Row map[string]any

// Symbol is a comparison operator used by a Boundary.
type Symbol string

const (
	SymbolGreater      Symbol = ">"
	SymbolGreaterEqual Symbol = ">="
	SymbolLess         Symbol = "<"
	SymbolLessEqual    Symbol = "<="
	SymbolEqual        Symbol = "="
)

var symbolNames = map[string]Symbol{
	">":             SymbolGreater,
	"GREATER":       SymbolGreater,
	">=":            SymbolGreaterEqual,
	"GREATER_EQUAL": SymbolGreaterEqual,
	"<":             SymbolLess,
	"LESS":          SymbolLess,
	"<=":            SymbolLessEqual,
	"LESS_EQUAL":    SymbolLessEqual,
	"=":             SymbolEqual,
	"EQUAL":         SymbolEqual,
}

// ParseSymbol accepts either the operator glyph or its name (GREATER,
// GREATER_EQUAL, LESS, LESS_EQUAL, EQUAL).
func ParseSymbol(s string) (Symbol, error) {
	if sym, ok := symbolNames[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return sym, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSymbol, s)
}

// canonical returns the glyph form of s, or "" when s is not a known symbol.
func (s Symbol) canonical() Symbol {
	sym, err := ParseSymbol(string(s))
	if err != nil {
		return ""
	}
	return sym
}

// CellFormat is the value transform a rule applies before display.
type CellFormat string

const (
	FormatNone       CellFormat = ""
	FormatThousands  CellFormat = "THOUSANDS"
	FormatIndian     CellFormat = "IN" // lakh/crore grouping: 12,34,567
	FormatPercentage CellFormat = "PERCENTAGE"
	FormatImage      CellFormat = "IMAGE"
	FormatDate       CellFormat = "DATE"
)

// ParseCellFormat parses a cell format name. "NONE" and the empty string
// both mean no transform. Unknown names are reported as FormatNone.
func ParseCellFormat(s string) CellFormat {
	switch f := CellFormat(strings.ToUpper(strings.TrimSpace(s))); f {
	case FormatThousands, FormatIndian, FormatPercentage, FormatImage, FormatDate:
		return f
	default:
		return FormatNone
	}
}

// Alignment controls column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// String returns the CSS-style name of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// ParseAlignment maps "left", "center" and "right" to an Alignment. Anything
// else is left aligned.
func ParseAlignment(s string) Alignment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center":
		return AlignCenter
	case "right":
		return AlignRight
	default:
		return AlignLeft
	}
}

// RGBA is a background color. A is the opacity in [0, 1].
type RGBA struct {
	R, G, B uint8
	A       float64
}

// Transparent is the background of cells no range matched.
var Transparent = RGBA{R: 255, G: 255, B: 255, A: 0}

// CSS renders the color as an rgba() expression.
func (c RGBA) CSS() string {
	return "rgba(" + strconv.Itoa(int(c.R)) + "," + strconv.Itoa(int(c.G)) + "," +
		strconv.Itoa(int(c.B)) + "," + strconv.FormatFloat(c.A, 'f', -1, 64) + ")"
}

// Hex renders the color as #rrggbb, ignoring opacity.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Boundary is one side of a Range. A falsy Value (nil, zero, empty string,
// false, NaN) means the boundary is absent.
type Boundary struct {
	Value  any
	Symbol Symbol
}

// Range is a pair of optional boundaries and the color applied when both
// present boundaries are satisfied.
type Range struct {
	Lower *Boundary
	Upper *Boundary
	Color RGBA
}

// Rule is the conditional-formatting configuration owned by one column.
type Rule struct {
	Column            string
	Alignment         Alignment
	Format            CellFormat
	DateFormat        string // strftime directives, e.g. "%d/%m/%Y"
	ShowTotal         bool
	TotalFormula      string
	DisableSortBy     bool
	DisableFilters    bool // leave the column out of the global filter
	ThumbnailHeight   int
	ThumbnailWidth    int
	RemarkColumn      string
	ConditionalColumn string // column hidden from display, used only by rules
	Ranges            []Range
}

// Group declares a header spanning the listed child columns.
type Group struct {
	Label    string       `json:"column" yaml:"column" mapstructure:"column"`
	Children []GroupChild `json:"children" yaml:"children" mapstructure:"children"`
}

// GroupChild references a column by key.
type GroupChild struct {
	ColumnKey string `json:"childKey" yaml:"childKey" mapstructure:"childKey"`
}
