package condtable

import (
	"encoding/csv"
	"io"
)

func writeCSV(w io.Writer, g grid, cfg exportConfig) error {
	cw := csv.NewWriter(w)
	cw.Comma = cfg.delimiter
	if err := cw.Write(g.header); err != nil {
		return err
	}
	for _, row := range g.rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	if g.footer != nil {
		if err := cw.Write(g.footer); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
