package condtable

import (
	"io"

	"github.com/goccy/go-json"
)

// writeJSONL writes one object per row of the page. The totals row is not
// written.
func writeJSONL(w io.Writer, v View, cfg exportConfig) error {
	enc := json.NewEncoder(w)
	if cfg.indent != "" {
		enc.SetIndent("", cfg.indent)
	}
	for _, row := range v.Rows {
		if err := enc.Encode(record(row)); err != nil {
			return err
		}
	}
	return nil
}
