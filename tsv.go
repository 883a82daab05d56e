package condtable

import (
	"fmt"
	"io"
	"strings"
)

// tsvEscaper keeps a cell on one line and in one field.
var tsvEscaper = strings.NewReplacer("\t", " ", "\n", " ", "\r", "")

func writeTSV(w io.Writer, g grid) error {
	lines := append([][]string{g.header}, g.rows...)
	if g.footer != nil {
		lines = append(lines, g.footer)
	}
	for _, cells := range lines {
		escaped := make([]string, len(cells))
		for i, c := range cells {
			escaped[i] = tsvEscaper.Replace(c)
		}
		if _, err := fmt.Fprintln(w, strings.Join(escaped, "\t")); err != nil {
			return err
		}
	}
	return nil
}
