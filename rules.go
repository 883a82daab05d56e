package condtable

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// Default thumbnail size for image cells.
const (
	DefaultThumbnailHeight = 50
	DefaultThumbnailWidth  = 50
)

// Style is the visual styling of a cell.
type Style struct {
	Background RGBA
}

// ImageParams describes how an image cell is shown.
type ImageParams struct {
	Height       int
	Width        int
	RemarkColumn string
	URLs         []string
}

// Cell is the presentation of one value.
type Cell struct {
	Key     string
	Raw     any
	Display string
	Style   Style
	Align   Alignment
	Class   string // "text-left", "text-center" or "text-right"
	IsImage bool
	Image   ImageParams
}

// RuleSet indexes rules by column so each cell is formatted with a single
// lookup. The zero value formats every cell with defaults.
type RuleSet struct {
	rules []Rule
	byKey map[string]*Rule
	types map[string]ValueType
	now   func() time.Time
	log   *zap.Logger
}

// RuleSetOption configures a RuleSet.
type RuleSetOption func(*RuleSet)

// WithRuleLogger sets the logger used to report rules that could not be
// applied. The default discards everything.
func WithRuleLogger(l *zap.Logger) RuleSetOption {
	return func(rs *RuleSet) {
		if l != nil {
			rs.log = l
		}
	}
}

// WithRuleClock sets the clock used to resolve "now" in date boundaries.
func WithRuleClock(now func() time.Time) RuleSetOption {
	return func(rs *RuleSet) {
		if now != nil {
			rs.now = now
		}
	}
}

// NewRuleSet builds the column-to-rule index. When several rules name the
// same column the last one wins. Column types drive how range boundaries are
// compared; columns not listed compare numerically with a string fallback.
func NewRuleSet(rules []Rule, columns []Column, opts ...RuleSetOption) *RuleSet {
	rs := &RuleSet{
		rules: append([]Rule(nil), rules...),
		byKey: make(map[string]*Rule, len(rules)),
		types: make(map[string]ValueType, len(columns)),
		now:   time.Now,
		log:   zap.NewNop(),
	}
	for i := range rs.rules {
		rs.byKey[rs.rules[i].Column] = &rs.rules[i]
	}
	for _, c := range columns {
		rs.types[c.Key] = c.Type
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// Rules returns a copy of the rule list.
func (rs *RuleSet) Rules() []Rule {
	if rs == nil {
		return nil
	}
	return append([]Rule(nil), rs.rules...)
}

// Rule returns the rule owning column key.
func (rs *RuleSet) Rule(key string) (Rule, bool) {
	if rs == nil || rs.byKey == nil {
		return Rule{}, false
	}
	r, ok := rs.byKey[key]
	if !ok {
		return Rule{}, false
	}
	return *r, true
}

// ShowsTotals reports whether any rule opts into the totals row.
func (rs *RuleSet) ShowsTotals() bool {
	if rs == nil {
		return false
	}
	for _, r := range rs.rules {
		if r.ShowTotal {
			return true
		}
	}
	return false
}

// SortDisabled reports whether the rule for key disables sorting.
func (rs *RuleSet) SortDisabled(key string) bool {
	r, ok := rs.Rule(key)
	return ok && r.DisableSortBy
}

// HiddenColumns lists the conditional columns named by rules, in rule order
// and without duplicates.
func (rs *RuleSet) HiddenColumns() []string {
	if rs == nil {
		return nil
	}
	var hidden []string
	seen := make(map[string]bool)
	for _, r := range rs.rules {
		if r.ConditionalColumn != "" && !seen[r.ConditionalColumn] {
			seen[r.ConditionalColumn] = true
			hidden = append(hidden, r.ConditionalColumn)
		}
	}
	return hidden
}

// Format produces the presentation of raw in column key. It never fails:
// a rule that cannot be applied leaves the cell with default styling.
func (rs *RuleSet) Format(key string, raw any, totalRow bool) Cell {
	cell := Cell{
		Key:     key,
		Raw:     raw,
		Display: stringify(raw),
		Style:   Style{Background: Transparent},
		Align:   AlignLeft,
		Class:   "text-left",
	}
	rule, ok := rs.Rule(key)
	if !ok {
		return cell
	}

	cell.Align = rule.Alignment
	cell.Class = "text-" + rule.Alignment.String()
	cell.Image = ImageParams{
		Height:       DefaultThumbnailHeight,
		Width:        DefaultThumbnailWidth,
		RemarkColumn: rule.RemarkColumn,
	}
	if rule.ThumbnailHeight > 0 {
		cell.Image.Height = rule.ThumbnailHeight
	}
	if rule.ThumbnailWidth > 0 {
		cell.Image.Width = rule.ThumbnailWidth
	}

	// compared is the value ranges are checked against; some formats
	// substitute zero for missing values.
	compared := raw
	switch rule.Format {
	case FormatThousands, FormatIndian:
		if falsy(raw) {
			compared = 0
			cell.Display = "0"
		} else if rule.Format == FormatIndian {
			cell.Display = groupIndian(stringify(raw))
		} else {
			cell.Display = groupThousands(stringify(raw))
		}
	case FormatPercentage:
		if _, ok := numberOf(raw); !ok {
			compared = 0
		}
		if falsy(raw) {
			cell.Display = "0%"
		} else {
			cell.Display = stringify(raw) + "%"
		}
	case FormatDate:
		cell.Display = formatDate(raw, rule.DateFormat)
	case FormatImage:
		cell.IsImage = true
		cell.Image.URLs = splitURLs(stringify(raw))
	}

	if color, ok := rs.match(rule, compared); ok {
		cell.Style.Background = color
	}

	if totalRow && !rule.ShowTotal {
		cell.Display = ""
	}
	return cell
}

// match returns the color of the first range satisfied by value. Later
// ranges are never consulted once one matches.
func (rs *RuleSet) match(rule Rule, value any) (RGBA, bool) {
	now := rs.now()
	t := rs.types[rule.Column]
	for i, rg := range rule.Ranges {
		lower, upper := boundaryPresent(rg.Lower), boundaryPresent(rg.Upper)
		if !lower && !upper {
			rs.log.Debug("range has no bounds",
				zap.String("column", rule.Column), zap.Int("range", i))
			continue
		}
		if lower && !satisfiesAt(now, value, *rg.Lower, t, rule.DateFormat) {
			continue
		}
		if upper && !satisfiesAt(now, value, *rg.Upper, t, rule.DateFormat) {
			continue
		}
		return rg.Color, true
	}
	return RGBA{}, false
}

func splitURLs(s string) []string {
	var urls []string
	for _, u := range strings.Split(s, ",") {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
