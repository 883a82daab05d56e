package condtable

import (
	"time"

	"go.uber.org/zap"
)

// Config holds the table settings a host passes alongside the data.
type Config struct {
	// PageSize pins the page size; nil derives it from data volume and 0
	// disables pagination.
	PageSize *int `json:"page_size,omitempty" yaml:"page_size,omitempty" mapstructure:"page_size"`
	// SortDescFirst makes the first sort toggle on a column descending.
	SortDescFirst bool `json:"sort_desc_first" yaml:"sort_desc_first" mapstructure:"sort_desc_first"`
	// IncludeSearch tells the presentation layer to offer the global filter.
	IncludeSearch bool `json:"include_search" yaml:"include_search" mapstructure:"include_search"`
	// Sticky keeps the header visible while scrolling.
	Sticky bool `json:"sticky" yaml:"sticky" mapstructure:"sticky"`
	// Title is shown above the table.
	Title string `json:"title" yaml:"title" mapstructure:"title"`
	// SerialNumbers prepends an "S.No" column numbering rows from 1.
	SerialNumbers bool `json:"include_sno" yaml:"include_sno" mapstructure:"include_sno"`
	// FreezeFirstColumn pins the first column while scrolling horizontally.
	FreezeFirstColumn bool `json:"freeze_first_column" yaml:"freeze_first_column" mapstructure:"freeze_first_column"`
}

// DefaultConfig returns the settings used when none are given.
func DefaultConfig() Config {
	return Config{Sticky: true}
}

// Option configures a Table.
type Option func(*Table)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(t *Table) {
		t.cfg = cfg
		if cfg.PageSize != nil {
			t.pageSize, t.pinned = *cfg.PageSize, true
		}
	}
}

// WithPageSize pins the page size. 0 shows every row on one page.
func WithPageSize(n int) Option {
	return func(t *Table) {
		t.cfg.PageSize = &n
		t.pageSize, t.pinned = n, true
	}
}

// WithRules sets the conditional formatting rules.
func WithRules(rules ...Rule) Option {
	return func(t *Table) { t.rules = append([]Rule(nil), rules...) }
}

// WithGroups sets the header group declarations.
func WithGroups(groups ...Group) Option {
	return func(t *Table) { t.groups = append([]Group(nil), groups...) }
}

// WithSortDescFirst makes the first toggle on a column sort descending.
func WithSortDescFirst() Option {
	return func(t *Table) { t.cfg.SortDescFirst = true }
}

// WithSearch enables the global filter input.
func WithSearch() Option {
	return func(t *Table) { t.cfg.IncludeSearch = true }
}

// WithSticky sets whether the header sticks while scrolling.
func WithSticky(sticky bool) Option {
	return func(t *Table) { t.cfg.Sticky = sticky }
}

// WithTitle sets the title shown above the table.
func WithTitle(title string) Option {
	return func(t *Table) { t.cfg.Title = title }
}

// WithSerialNumbers prepends an "S.No" column.
func WithSerialNumbers() Option {
	return func(t *Table) { t.cfg.SerialNumbers = true }
}

// WithFreezeFirstColumn pins the first column.
func WithFreezeFirstColumn() Option {
	return func(t *Table) { t.cfg.FreezeFirstColumn = true }
}

// WithFilters seeds the dashboard filter values per column.
func WithFilters(filters map[string][]any) Option {
	return func(t *Table) { t.filters = cloneFilters(filters) }
}

// OnFilterChange registers a callback invoked with a copy of the dashboard
// filters after every toggle.
func OnFilterChange(fn func(map[string][]any)) Option {
	return func(t *Table) { t.onFilterChange = fn }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(t *Table) {
		if l != nil {
			t.log = l
		}
	}
}

// WithClock sets the clock used for "now" in date rules.
func WithClock(now func() time.Time) Option {
	return func(t *Table) {
		if now != nil {
			t.now = now
		}
	}
}
