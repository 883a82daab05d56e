package condtable

import "fmt"

// SortDirection specifies the direction of sorting.
type SortDirection int

const (
	// SortNone indicates no sorting.
	SortNone SortDirection = iota
	// SortAscending indicates ascending sort order.
	SortAscending
	// SortDescending indicates descending sort order.
	SortDescending
)

// String returns the string representation of a SortDirection.
func (sd SortDirection) String() string {
	switch sd {
	case SortNone:
		return "None"
	case SortAscending:
		return "Ascending"
	case SortDescending:
		return "Descending"
	default:
		return fmt.Sprintf("Unknown(%d)", sd)
	}
}

// State is a snapshot of the interaction state of a Table.
type State struct {
	SortColumn    string
	SortDirection SortDirection
	FilterText    string
	PageIndex     int
	// PageSize is the configured size; 0 means no pagination.
	PageSize int
	// EffectivePageSize resolves PageSize 0 against the row count.
	EffectivePageSize int
	PageCount         int
	RowCount          int
	FilteredCount     int
}

// IsSorted reports whether a sort is active.
func (s State) IsSorted() bool {
	return s.SortColumn != "" && s.SortDirection != SortNone
}

// Paginated reports whether rows are split over pages.
func (s State) Paginated() bool {
	return s.PageSize > 0 && s.RowCount > 0
}

// Auto pagination kicks in above this many cells.
const (
	autoPageCellLimit = 5000
	autoPageSize      = 200
)

// AutoPageSize derives a page size from data volume: 200 when the table has
// more than 5000 cells, otherwise 0 (no pagination).
func AutoPageSize(rowCount, columnCount int) int {
	if rowCount*columnCount > autoPageCellLimit {
		return autoPageSize
	}
	return 0
}

// PageSizeOption is one entry of a page size selector. Size 0 shows all
// rows.
type PageSizeOption struct {
	Size  int
	Label string
}

var pageSizeOptions = []PageSizeOption{
	{Size: 0, Label: "All"},
	{Size: 10, Label: "10"},
	{Size: 20, Label: "20"},
	{Size: 50, Label: "50"},
	{Size: 100, Label: "100"},
	{Size: 200, Label: "200"},
}

// PageSizeOptions lists the selectable page sizes worth offering for
// rowCount rows: sizes up to twice the row count.
func PageSizeOptions(rowCount int) []PageSizeOption {
	var out []PageSizeOption
	for _, o := range pageSizeOptions {
		if o.Size <= 2*rowCount {
			out = append(out, o)
		}
	}
	return out
}

// paging resolves the effective page size, page count and clamped index.
type paging struct {
	size, count, index int
}

func paginate(pageSize, totalRows, visibleRows, pageIndex, fallback int) paging {
	size := pageSize
	if size <= 0 {
		size = totalRows
	}
	if size <= 0 {
		size = fallback
	}
	count := (visibleRows + size - 1) / size
	if count < 1 {
		count = 1
	}
	index := min(max(pageIndex, 0), count-1)
	return paging{size: size, count: count, index: index}
}
