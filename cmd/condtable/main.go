// Command condtable formats a JSON result set with conditional formatting
// rules and writes the chosen page as a table, Markdown, HTML or data.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bjaus/condtable"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type runFlags struct {
	config   string
	sort     string
	desc     bool
	filter   string
	page     int
	pageSize int
}

func newRootCmd() *cobra.Command {
	v := newViper()
	var f runFlags

	root := &cobra.Command{
		Use:   "condtable",
		Short: "Format tabular data with conditional formatting rules",
		Long: `condtable reads rows as a JSON array of objects, applies conditional
formatting rules, totals and header groups, and writes one page of the
result.

Example:
  condtable --data rows.json --rules rules.yaml --sort revenue --desc`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(v, f.config)
			if err != nil {
				return err
			}
			log, err := newLogger(s.Log.Level, s.Log.Development)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if cmd.Flags().Changed("page-size") {
				s.Table.PageSize = &f.pageSize
			}
			return run(cmd.OutOrStdout(), s, f, log)
		},
	}

	flags := root.Flags()
	flags.StringVarP(&f.config, "config", "c", "", "Path to a YAML or JSON config file")
	flags.StringP("data", "d", "-", "Path to the rows JSON file, - for stdin")
	flags.StringP("rules", "r", "", "Path to a rules file (.json, .yaml)")
	flags.String("groups", "", "Path to a header groups file (.json, .yaml)")
	flags.StringP("format", "o", string(condtable.Terminal), "Output format: table, markdown, html, csv, tsv, json, jsonl, yaml or go-template=<tmpl>")
	flags.String("border", "rounded", "Table border: rounded, none, ascii, heavy, double")
	flags.Bool("color", false, "Paint matched cell backgrounds with ANSI colors")
	flags.Bool("strict", false, "Fail when rules or groups reference unknown columns")
	flags.String("title", "", "Title shown above the table")
	flags.Bool("sno", false, "Prepend a serial number column")
	flags.Bool("sort-desc-first", false, "Sort descending on the first toggle")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.Bool("log-development", false, "Human-friendly development logging")

	flags.StringVar(&f.sort, "sort", "", "Column key to sort by")
	flags.BoolVar(&f.desc, "desc", false, "Sort descending")
	flags.StringVar(&f.filter, "filter", "", "Global filter text")
	flags.IntVar(&f.page, "page", 1, "Page number, starting at 1")
	flags.IntVar(&f.pageSize, "page-size", 0, "Rows per page, 0 for all (default: derived from data volume)")

	for key, name := range map[string]string{
		"data":                  "data",
		"rules":                 "rules",
		"groups_file":           "groups",
		"format":                "format",
		"border":                "border",
		"color":                 "color",
		"strict":                "strict",
		"table.title":           "title",
		"table.include_sno":     "sno",
		"table.sort_desc_first": "sort-desc-first",
		"log.level":             "log-level",
		"log.development":       "log-development",
	} {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}
	root.AddCommand(newFormatsCmd())
	return root
}

func run(w io.Writer, s settings, f runFlags, log *zap.Logger) error {
	format, err := condtable.ParseFormat(s.Format)
	if err != nil {
		return err
	}

	rows, err := readRows(s.Data)
	if err != nil {
		return err
	}
	rules, err := readRules(s.Rules)
	if err != nil {
		return err
	}
	groups := s.Groups
	if s.GroupsFile != "" {
		if groups, err = readGroups(s.GroupsFile); err != nil {
			return err
		}
	}
	columns := s.Columns
	if len(columns) == 0 {
		columns = inferColumns(rows)
		log.Debug("inferred columns", zap.Int("columns", len(columns)))
	}

	if err := condtable.Validate(columns, rules, groups); err != nil {
		if s.Strict {
			return err
		}
		log.Warn("rules reference problems", zap.Error(err))
	}

	t := condtable.New(columns, rows,
		condtable.WithConfig(s.Table),
		condtable.WithRules(rules...),
		condtable.WithGroups(groups...),
		condtable.WithLogger(log),
	)
	if f.sort != "" {
		if err := applySort(t, f.sort, f.desc); err != nil {
			return err
		}
	}
	if f.filter != "" {
		t.SetFilter(f.filter)
	}
	t.GotoPage(f.page - 1)

	st := t.State()
	log.Info("exporting",
		zap.String("format", format.String()),
		zap.Int("rows", st.RowCount),
		zap.Int("filtered", st.FilteredCount),
		zap.Int("page", st.PageIndex+1),
		zap.Int("pages", st.PageCount),
	)
	return condtable.Export(w, format, t.View(),
		condtable.WithBorder(condtable.ParseBorderStyle(s.Border)),
		condtable.WithColor(s.Color),
		condtable.WithIndent("  "),
	)
}

// applySort toggles key until the table is sorted in the wanted direction.
func applySort(t *condtable.Table, key string, desc bool) error {
	want := condtable.SortAscending
	if desc {
		want = condtable.SortDescending
	}
	for i := 0; i < 3; i++ {
		t.ToggleSort(key)
		st := t.State()
		if st.SortColumn == key && st.SortDirection == want {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot sort by %q", condtable.ErrUnknownColumn, key)
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported output formats",
		Run: func(cmd *cobra.Command, _ []string) {
			for _, f := range condtable.Formats() {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "go-template=<tmpl>")
		},
	}
}
