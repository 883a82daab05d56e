package condtable

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// ruleDoc is the authored shape of a rule. Fields a form builder may emit
// as either strings or numbers are decoded loosely.
type ruleDoc struct {
	Column            string     `json:"column" yaml:"column"`
	Alignment         string     `json:"alignment" yaml:"alignment"`
	Format            string     `json:"format" yaml:"format"`
	DateFormat        string     `json:"dateFormat" yaml:"dateFormat"`
	ShowTotal         any        `json:"showTotal" yaml:"showTotal"`
	TotalFormula      string     `json:"totalFormula" yaml:"totalFormula"`
	DisableFilters    any        `json:"disableFilters" yaml:"disableFilters"`
	DisableSortBy     any        `json:"disableSortBy" yaml:"disableSortBy"`
	ConditionalColumn string     `json:"conditionalColumn" yaml:"conditionalColumn"`
	ThumbnailHeight   any        `json:"thumbnailHeight" yaml:"thumbnailHeight"`
	ThumbnailWidth    any        `json:"thumbnailWidth" yaml:"thumbnailWidth"`
	RemarkColumn      string     `json:"remarkColumn" yaml:"remarkColumn"`
	Conditions        []rangeDoc `json:"conditions" yaml:"conditions"`
}

type rangeDoc struct {
	InitialValue  any      `json:"initialValue" yaml:"initialValue"`
	InitialSymbol string   `json:"initialSymbol" yaml:"initialSymbol"`
	FinalValue    any      `json:"finalValue" yaml:"finalValue"`
	FinalSymbol   string   `json:"finalSymbol" yaml:"finalSymbol"`
	Color         colorDoc `json:"color" yaml:"color"`
}

type colorDoc struct {
	R any `json:"r" yaml:"r"`
	G any `json:"g" yaml:"g"`
	B any `json:"b" yaml:"b"`
	A any `json:"a" yaml:"a"`
}

// LoadRules decodes a rule list in the authoring format, as JSON or YAML:
//
//	- column: revenue
//	  format: THOUSANDS
//	  showTotal: true
//	  conditions:
//	    - initialValue: 1000
//	      initialSymbol: ">="
//	      color: {r: 0, g: 200, b: 0, a: 0.4}
//
// Only syntax errors are reported. A range whose color cannot be read is
// dropped so it never matches.
func LoadRules(r io.Reader, f Format) ([]Rule, error) {
	var docs []ruleDoc
	switch f {
	case JSON:
		if err := json.NewDecoder(r).Decode(&docs); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRules, err)
		}
	case YAML:
		if err := yaml.NewDecoder(r).Decode(&docs); err != nil && err != io.EOF {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRules, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	rules := make([]Rule, 0, len(docs))
	for _, d := range docs {
		rules = append(rules, d.rule())
	}
	return rules, nil
}

// ParseRulesJSON decodes a rule list held in a JSON string, the form used
// when rules are pasted into a single text field. An empty string yields no
// rules.
func ParseRulesJSON(s string) ([]Rule, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return LoadRules(strings.NewReader(s), JSON)
}

// LoadGroups decodes header group declarations as JSON or YAML.
func LoadGroups(r io.Reader, f Format) ([]Group, error) {
	var groups []Group
	switch f {
	case JSON:
		if err := json.NewDecoder(r).Decode(&groups); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRules, err)
		}
	case YAML:
		if err := yaml.NewDecoder(r).Decode(&groups); err != nil && err != io.EOF {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRules, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	return groups, nil
}

func (d ruleDoc) rule() Rule {
	r := Rule{
		Column:            d.Column,
		Alignment:         ParseAlignment(d.Alignment),
		Format:            ParseCellFormat(d.Format),
		DateFormat:        d.DateFormat,
		ShowTotal:         cast.ToBool(d.ShowTotal),
		TotalFormula:      d.TotalFormula,
		DisableFilters:    cast.ToBool(d.DisableFilters),
		DisableSortBy:     cast.ToBool(d.DisableSortBy),
		ConditionalColumn: d.ConditionalColumn,
		ThumbnailHeight:   cast.ToInt(d.ThumbnailHeight),
		ThumbnailWidth:    cast.ToInt(d.ThumbnailWidth),
		RemarkColumn:      d.RemarkColumn,
	}
	for _, c := range d.Conditions {
		color, ok := c.Color.rgba()
		if !ok {
			continue
		}
		r.Ranges = append(r.Ranges, Range{
			Lower: boundary(c.InitialValue, c.InitialSymbol),
			Upper: boundary(c.FinalValue, c.FinalSymbol),
			Color: color,
		})
	}
	return r
}

func boundary(value any, symbol string) *Boundary {
	if value == nil && symbol == "" {
		return nil
	}
	return &Boundary{Value: value, Symbol: Symbol(symbol)}
}

func (c colorDoc) rgba() (RGBA, bool) {
	r, errR := cast.ToFloat64E(c.R)
	g, errG := cast.ToFloat64E(c.G)
	b, errB := cast.ToFloat64E(c.B)
	if errR != nil || errG != nil || errB != nil || c.R == nil || c.G == nil || c.B == nil {
		return RGBA{}, false
	}
	a := 1.0
	if c.A != nil {
		v, err := cast.ToFloat64E(c.A)
		if err != nil {
			return RGBA{}, false
		}
		a = min(max(v, 0), 1)
	}
	return RGBA{R: channel(r), G: channel(g), B: channel(b), A: a}, true
}

func channel(f float64) uint8 {
	return uint8(min(max(f, 0), 255))
}
