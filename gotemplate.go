package condtable

import (
	"fmt"
	"io"
	"text/template"
)

// writeGoTemplate executes tmpl once per row of the page against a map from
// column key to displayed value.
func writeGoTemplate(w io.Writer, tmplStr string, v View) error {
	tmpl, err := template.New("").Option("missingkey=zero").Parse(tmplStr)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTemplate, err)
	}
	for _, row := range v.Rows {
		if err := tmpl.Execute(w, record(row)); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
