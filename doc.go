// Package condtable formats tabular data for presentation: conditional cell
// coloring, value formatting, column totals, grouped headers and the sort,
// filter and paging state of an interactive table.
//
// The central entry point is [New], which takes the columns, the rows and a
// set of options and returns a [Table]. [Table.View] produces everything
// needed to draw one page: formatted [Cell] values, the [HeaderTree], the
// totals row and the current [State].
//
//	t := condtable.New(columns, rows,
//		condtable.WithRules(rules...),
//		condtable.WithGroups(groups...),
//	)
//	t.ToggleSort("revenue")
//	condtable.Export(os.Stdout, condtable.Terminal, t.View())
//
// # Rules
//
// A [Rule] configures one column. Its [Range] list is checked in order and
// the first range whose present boundaries are all satisfied colors the
// cell. A boundary with a falsy value (nil, 0, "", false) is absent:
//
//   - Number columns compare numerically with > >= < <= =
//   - String columns support only =
//   - Date and Temporal columns compare instants; "now" means the current time
//
// Rules also pick the display format: [FormatThousands], [FormatIndian],
// [FormatPercentage], [FormatDate] and [FormatImage]. Use [LoadRules] or
// [ParseRulesJSON] to decode rules in their authoring form, and [Validate]
// to report rules that name unknown columns or carry bad formulas.
//
// # Totals
//
// [Aggregate] sums every column over all rows, rounding to two decimals as
// it goes. A column holding any non-numeric value totals to the sentinel
// [NonNumericTotal]. A rule's TotalFormula replaces its column total with an
// arithmetic expression over the other totals, evaluated by [EvaluateWith]:
//
//	revenue / units * 100
//	{gross margin} - {cost}
//
// # Headers
//
// [BuildHeaderTree] turns flat columns and [Group] declarations into the
// two-row header. A column claimed by several groups belongs to the last.
//
// # Table state
//
// Sorting cycles ascending, descending, unsorted ([Table.ToggleSort]). The
// global filter keeps rows whose best [RankMatch] reaches [FilterThreshold].
// A page size of 0 shows every row; when no size is given it is derived
// from the data volume by [AutoPageSize].
//
// # Export
//
// [Export] writes a [View] as a terminal table, Markdown, HTML, CSV, TSV,
// JSON, JSONL, YAML or through a Go [text/template]. Use [ParseFormat] to
// convert a CLI flag string into a [Format].
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrUnsupportedFormat]: unknown format string
//   - [ErrInvalidTemplate]: invalid go-template syntax
//   - [ErrInvalidFormula]: malformed total formula
//   - [ErrUnknownColumn]: a rule or group names a column that does not exist
//   - [ErrInvalidSymbol]: a boundary carries an unknown comparison symbol
//   - [ErrInvalidValueType]: unknown column type name
//   - [ErrInvalidRules]: rules or groups could not be decoded
//
// Formatting, aggregation, header grouping and paging never fail.
package condtable
