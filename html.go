package condtable

import (
	"fmt"
	"html"
	"io"
)

func writeHTML(w io.Writer, g grid) error {
	if _, err := fmt.Fprintln(w, "<table>"); err != nil {
		return err
	}

	if g.title != "" {
		if _, err := fmt.Fprintf(w, "  <caption>%s</caption>\n", html.EscapeString(g.title)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "  <thead>"); err != nil {
		return err
	}
	if len(g.groups) > 0 {
		if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
			return err
		}
		for _, s := range g.groups {
			if _, err := fmt.Fprintf(w, "      <th colspan=\"%d\">%s</th>\n", s.width, html.EscapeString(s.label)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "    </tr>"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
		return err
	}
	for i, col := range g.header {
		if _, err := fmt.Fprintf(w, "      <th%s>%s</th>\n", classAttr(g.classes, i), html.EscapeString(col)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "    </tr>"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "  </thead>"); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "  <tbody>"); err != nil {
		return err
	}
	for i, row := range g.rows {
		if err := writeHTMLRow(w, row, g.colors[i], g.classes); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "  </tbody>"); err != nil {
		return err
	}

	if g.footer != nil {
		if _, err := fmt.Fprintln(w, "  <tfoot>"); err != nil {
			return err
		}
		if err := writeHTMLRow(w, g.footer, g.fcolors, g.classes); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, "  </tfoot>"); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, "</table>")
	return err
}

func writeHTMLRow(w io.Writer, cells []string, colors []RGBA, classes []string) error {
	if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
		return err
	}
	for i, cell := range cells {
		attrs := classAttr(classes, i) + backgroundStyle(colorAt(colors, i))
		if _, err := fmt.Fprintf(w, "      <td%s>%s</td>\n", attrs, html.EscapeString(cell)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "    </tr>")
	return err
}

func classAttr(classes []string, col int) string {
	if col >= len(classes) || classes[col] == "" {
		return ""
	}
	return ` class="` + classes[col] + `"`
}

// backgroundStyle is empty for cells no range colored.
func backgroundStyle(c RGBA) string {
	if c.A <= 0 {
		return ""
	}
	return ` style="background-color: ` + c.CSS() + `"`
}
