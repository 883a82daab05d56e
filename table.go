package condtable

import (
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Serial number column added by [WithSerialNumbers].
const (
	SerialKey   = "sno"
	SerialLabel = "S.No"
)

// fallbackPageSize is used when pagination is off and there are no rows.
const fallbackPageSize = 10

// Table owns the interaction state of one rendered table: sort, global
// filter, pagination and dashboard filters. Every method completes its state
// transition before returning and is safe for concurrent use.
type Table struct {
	mu  sync.Mutex
	cfg Config
	log *zap.Logger
	now func() time.Time

	source  []Column
	columns []Column
	input   []Row
	rows    []Row
	rules   []Rule
	groups  []Group
	ruleSet *RuleSet

	sortKey    string
	sortDir    SortDirection
	filterText string
	pageIndex  int
	pageSize   int
	pinned     bool
	lastSize   int

	filters        map[string][]any
	onFilterChange func(map[string][]any)

	generation uint64
	memo       *memo
	visible    []Row
}

// New creates a Table over columns and rows. Neither slice is modified.
func New(columns []Column, rows []Row, opts ...Option) *Table {
	t := &Table{
		cfg:      DefaultConfig(),
		log:      zap.NewNop(),
		now:      time.Now,
		source:   append([]Column(nil), columns...),
		input:    rows,
		filters:  map[string][]any{},
		memo:     newMemo(),
		lastSize: fallbackPageSize,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.rebuild()
	return t
}

// rebuild derives columns, rows and rules from the inputs. Callers hold mu.
func (t *Table) rebuild() {
	t.columns, t.rows = withSerialNumbers(t.source, t.input, t.cfg.SerialNumbers)
	t.ruleSet = NewRuleSet(t.rules, t.columns, WithRuleLogger(t.log), WithRuleClock(t.now))
	t.generation++
	if !t.pinned {
		t.pageSize = AutoPageSize(len(t.rows), len(t.columns))
	}
	if t.sortKey != "" && !t.hasColumn(t.sortKey) {
		t.sortKey, t.sortDir = "", SortNone
	}
	t.refresh()
}

// refresh reruns filter and sort. Callers hold mu.
func (t *Table) refresh() {
	rows := FilterRows(t.rows, t.filterKeys(), t.filterText)
	if col, ok := t.column(t.sortKey); ok && t.sortDir != SortNone {
		rows = SortRows(rows, col, t.sortDir)
	}
	t.visible = rows
	if n := len(t.rows); n > 0 {
		t.lastSize = n
	}
	t.pageIndex = t.paging().index
}

func (t *Table) paging() paging {
	return paginate(t.pageSize, len(t.rows), len(t.visible), t.pageIndex, t.lastSize)
}

func (t *Table) column(key string) (Column, bool) {
	if key == "" {
		return Column{}, false
	}
	for _, c := range t.columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

func (t *Table) hasColumn(key string) bool {
	_, ok := t.column(key)
	return ok
}

// visibleColumns excludes columns hidden by conditional rules.
func (t *Table) visibleColumns() []Column {
	hidden := t.ruleSet.HiddenColumns()
	if len(hidden) == 0 {
		return t.columns
	}
	out := make([]Column, 0, len(t.columns))
	for _, c := range t.columns {
		if !slices.Contains(hidden, c.Key) {
			out = append(out, c)
		}
	}
	return out
}

// filterKeys lists the displayed columns the global filter searches.
// Columns whose rule disables filtering are skipped.
func (t *Table) filterKeys() []string {
	cols := t.visibleColumns()
	keys := make([]string, 0, len(cols))
	for _, c := range cols {
		if rule, ok := t.ruleSet.Rule(c.Key); ok && rule.DisableFilters {
			continue
		}
		keys = append(keys, c.Key)
	}
	return keys
}

// ToggleSort cycles the sort on key: ascending, descending, unsorted (or
// descending first when configured). Sorting a different column starts a new
// cycle. Unknown columns and columns whose rule disables sorting are
// ignored.
func (t *Table) ToggleSort(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.hasColumn(key) || t.ruleSet.SortDisabled(key) {
		t.log.Debug("sort request ignored", zap.String("column", key))
		return
	}
	first, second := SortAscending, SortDescending
	if t.cfg.SortDescFirst {
		first, second = SortDescending, SortAscending
	}
	switch {
	case t.sortKey != key || t.sortDir == SortNone:
		t.sortKey, t.sortDir = key, first
	case t.sortDir == first:
		t.sortDir = second
	default:
		t.sortKey, t.sortDir = "", SortNone
	}
	t.pageIndex = 0
	t.refresh()
	t.log.Debug("sort changed", zap.String("column", t.sortKey), zap.Stringer("direction", t.sortDir))
}

// ClearSort removes any active sort.
func (t *Table) ClearSort() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sortKey, t.sortDir = "", SortNone
	t.refresh()
}

// SetFilter sets the global filter text and returns to the first page. An
// empty query shows every row.
func (t *Table) SetFilter(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.filterText = text
	t.pageIndex = 0
	t.refresh()
	t.log.Debug("filter changed", zap.String("query", text), zap.Int("matches", len(t.visible)))
}

// GotoPage moves to page index, clamped to the available pages.
func (t *Table) GotoPage(index int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pageIndex = index
	t.pageIndex = t.paging().index
}

// SetPageSize pins the page size; 0 shows all rows. The page is chosen so
// the first row of the current page stays visible.
func (t *Table) SetPageSize(size int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if size < 0 {
		size = 0
	}
	top := t.pageIndex * t.paging().size
	t.pageSize, t.pinned = size, true
	p := t.paging()
	t.pageIndex = top / p.size
	t.pageIndex = t.paging().index
}

// SetRows replaces the data. An automatic page size is derived again, and
// a page size pinned at 0 follows the new row count.
func (t *Table) SetRows(rows []Row) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.input = rows
	t.rebuild()
}

// SetColumns replaces the column descriptors.
func (t *Table) SetColumns(columns []Column) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.source = append([]Column(nil), columns...)
	t.rebuild()
}

// SetRules replaces the formatting rules.
func (t *Table) SetRules(rules []Rule) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rules = append([]Rule(nil), rules...)
	t.rebuild()
}

// SetGroups replaces the header group declarations.
func (t *Table) SetGroups(groups []Group) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.groups = append([]Group(nil), groups...)
}

// ToggleFilterValue adds value to the dashboard filter of column key, or
// removes it when already active, then notifies the filter callback.
func (t *Table) ToggleFilterValue(key string, value any) {
	t.mu.Lock()
	current := t.filters[key]
	if i := slices.IndexFunc(current, func(v any) bool { return sameValue(v, value) }); i >= 0 {
		t.filters[key] = slices.Delete(slices.Clone(current), i, i+1)
	} else {
		t.filters[key] = append(slices.Clone(current), value)
	}
	snapshot := cloneFilters(t.filters)
	fn := t.onFilterChange
	t.mu.Unlock()

	if fn != nil {
		fn(snapshot)
	}
}

// IsActiveFilterValue reports whether value is an active dashboard filter
// of column key.
func (t *Table) IsActiveFilterValue(key string, value any) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.ContainsFunc(t.filters[key], func(v any) bool { return sameValue(v, value) })
}

// Filters returns a copy of the dashboard filters.
func (t *Table) Filters() map[string][]any {
	t.mu.Lock()
	defer t.mu.Unlock()
	return cloneFilters(t.filters)
}

// State returns the current interaction state.
func (t *Table) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state()
}

func (t *Table) state() State {
	p := t.paging()
	return State{
		SortColumn:        t.sortKey,
		SortDirection:     t.sortDir,
		FilterText:        t.filterText,
		PageIndex:         p.index,
		PageSize:          t.pageSize,
		EffectivePageSize: p.size,
		PageCount:         p.count,
		RowCount:          len(t.rows),
		FilteredCount:     len(t.visible),
	}
}

// Columns returns the effective columns, including the serial number column
// when enabled.
func (t *Table) Columns() []Column {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Column(nil), t.columns...)
}

// HiddenColumns lists columns used only by rules and not displayed.
func (t *Table) HiddenColumns() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ruleSet.HiddenColumns()
}

// Rules returns the rule index the table formats with.
func (t *Table) Rules() *RuleSet {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ruleSet
}

// HeaderTree returns the header tree over the displayed columns.
func (t *Table) HeaderTree() HeaderTree {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.headerTree()
}

func (t *Table) headerTree() HeaderTree {
	tree := t.memo.headerTree(t.visibleColumns(), t.groups)
	nodes := slices.Clone(tree.Nodes)
	for i := range nodes {
		nodes[i].Columns = slices.Clone(nodes[i].Columns)
	}
	if t.cfg.FreezeFirstColumn && len(nodes) > 0 {
		nodes[0].Frozen = true
	}
	return HeaderTree{Nodes: nodes}
}

// Totals returns the column totals over every row, ignoring the filter.
func (t *Table) Totals() Totals {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.memo.aggregate(t.generation, t.rows, t.columns)
}

// PageSizeOptions lists the page sizes worth offering for the data.
func (t *Table) PageSizeOptions() []PageSizeOption {
	t.mu.Lock()
	defer t.mu.Unlock()
	return PageSizeOptions(len(t.rows))
}

// View is everything needed to draw the table once.
type View struct {
	Title   string
	Sticky  bool
	Search  bool
	Columns []Column
	Header  HeaderTree
	Rows    [][]Cell
	// Totals is nil unless at least one rule shows its total.
	Totals []Cell
	State  State
}

// View formats the current page. Rows are filtered, sorted and paginated;
// totals cover every row regardless of the filter. Columns without a rule
// are blank in the totals row. Columns follow the header tree, so the
// columns of a group sit together under it.
func (t *Table) View() View {
	t.mu.Lock()
	defer t.mu.Unlock()

	header := t.headerTree()
	cols := headerOrder(t.visibleColumns(), header)
	st := t.state()
	start := min(st.PageIndex*st.EffectivePageSize, len(t.visible))
	end := min(start+st.EffectivePageSize, len(t.visible))

	page := make([][]Cell, 0, end-start)
	for _, row := range t.visible[start:end] {
		cells := make([]Cell, len(cols))
		for i, c := range cols {
			cells[i] = t.ruleSet.Format(c.Key, row[c.Key], false)
		}
		page = append(page, cells)
	}

	var totals []Cell
	if t.ruleSet.ShowsTotals() {
		sums := t.memo.aggregate(t.generation, t.rows, t.columns)
		totals = make([]Cell, len(cols))
		for i, c := range cols {
			totals[i] = t.ruleSet.Format(c.Key, t.totalValue(c.Key, sums), true)
			if _, ruled := t.ruleSet.Rule(c.Key); !ruled {
				totals[i].Display = ""
			}
		}
	}

	return View{
		Title:   t.cfg.Title,
		Sticky:  t.cfg.Sticky,
		Search:  t.cfg.IncludeSearch,
		Columns: cols,
		Header:  header,
		Rows:    page,
		Totals:  totals,
		State:   st,
	}
}

// headerOrder lays columns out node by node, each node's columns in turn.
func headerOrder(columns []Column, header HeaderTree) []Column {
	byKey := make(map[string]Column, len(columns))
	for _, c := range columns {
		byKey[c.Key] = c
	}
	out := make([]Column, 0, len(columns))
	for _, n := range header.Nodes {
		for _, key := range n.Columns {
			if c, ok := byKey[key]; ok {
				out = append(out, c)
			}
		}
	}
	return out
}

// totalValue is the raw totals-row value of key: the column sum, or the
// result of the rule's total formula evaluated over all column sums.
func (t *Table) totalValue(key string, sums Totals) any {
	total, _ := sums.Get(key)
	rule, ok := t.ruleSet.Rule(key)
	if !ok || !rule.ShowTotal || rule.TotalFormula == "" {
		return total.Raw()
	}
	v := EvaluateWith(rule.TotalFormula, sums.Values())
	if isFinite(v) {
		return decimal.NewFromFloat(v).Round(2).InexactFloat64()
	}
	t.log.Debug("total formula produced no number",
		zap.String("column", key), zap.String("formula", rule.TotalFormula), zap.Float64("value", v))
	return v
}

// withSerialNumbers prepends the serial column and numbered copies of the
// rows. Data that already carries the column is left as is.
func withSerialNumbers(columns []Column, rows []Row, enabled bool) ([]Column, []Row) {
	if !enabled {
		return columns, rows
	}
	for _, c := range columns {
		if c.Key == SerialKey {
			return columns, rows
		}
	}
	cols := append([]Column{{Key: SerialKey, Label: SerialLabel, Type: TypeNumber}}, columns...)
	if len(rows) > 0 {
		if _, ok := rows[0][SerialKey]; ok {
			return cols, rows
		}
	}
	numbered := make([]Row, len(rows))
	for i, row := range rows {
		r := make(Row, len(row)+1)
		for k, v := range row {
			r[k] = v
		}
		r[SerialKey] = i + 1
		numbered[i] = r
	}
	return cols, numbered
}

func cloneFilters(in map[string][]any) map[string][]any {
	out := make(map[string][]any, len(in))
	for k, v := range in {
		out[k] = slices.Clone(v)
	}
	return out
}

// sameValue compares filter values by their displayed form so 1 and 1.0
// are the same value.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return stringify(a) == stringify(b)
}
