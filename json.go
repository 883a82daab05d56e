package condtable

import (
	"io"

	"github.com/goccy/go-json"
)

// document is the structured export of a View.
type document struct {
	Title   string              `json:"title,omitempty" yaml:"title,omitempty"`
	Columns []string            `json:"columns" yaml:"columns"`
	Rows    []map[string]string `json:"rows" yaml:"rows"`
	Totals  map[string]string   `json:"totals,omitempty" yaml:"totals,omitempty"`
	Page    pageDoc             `json:"page" yaml:"page"`
}

type pageDoc struct {
	Index    int `json:"index" yaml:"index"`
	Count    int `json:"count" yaml:"count"`
	Size     int `json:"size" yaml:"size"`
	Rows     int `json:"rows" yaml:"rows"`
	Filtered int `json:"filtered" yaml:"filtered"`
}

func newDocument(v View) document {
	d := document{
		Title:   v.Title,
		Columns: make([]string, len(v.Columns)),
		Rows:    make([]map[string]string, 0, len(v.Rows)),
		Page: pageDoc{
			Index:    v.State.PageIndex,
			Count:    v.State.PageCount,
			Size:     v.State.EffectivePageSize,
			Rows:     v.State.RowCount,
			Filtered: v.State.FilteredCount,
		},
	}
	for i, c := range v.Columns {
		d.Columns[i] = c.Key
	}
	for _, row := range v.Rows {
		d.Rows = append(d.Rows, record(row))
	}
	if v.Totals != nil {
		d.Totals = record(v.Totals)
	}
	return d
}

func writeJSON(w io.Writer, v View, cfg exportConfig) error {
	enc := json.NewEncoder(w)
	if cfg.indent != "" {
		enc.SetIndent("", cfg.indent)
	}
	return enc.Encode(newDocument(v))
}
