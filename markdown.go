package condtable

import (
	"fmt"
	"io"
	"strings"
)

// writeMarkdown writes a pipe table. Markdown has a single header row, so a
// grouped column's label is prefixed with its group's label.
func writeMarkdown(w io.Writer, g grid) error {
	numCols := len(g.header)
	if numCols == 0 {
		return nil
	}
	header := groupedLabels(g)

	source := g.rows
	if g.footer != nil {
		source = append(source[:len(source):len(source)], g.footer)
	}
	rows := make([][]string, len(source))
	for i, cells := range source {
		rows[i] = make([]string, len(cells))
		for j, cell := range cells {
			rows[i][j] = escapeMarkdown(cell)
		}
	}

	// Calculate column widths (minimum 3 for alignment markers).
	widths := computeWidths(numCols, header, rows, nil)
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}
	aligns := extendAligns(g.aligns, numCols)

	if g.title != "" {
		if _, err := fmt.Fprintf(w, "**%s**\n\n", escapeMarkdown(g.title)); err != nil {
			return err
		}
	}
	if err := writeMarkdownRow(w, header, widths, aligns); err != nil {
		return err
	}

	sep := make([]string, numCols)
	for i, width := range widths {
		switch aligns[i] {
		case AlignRight:
			sep[i] = strings.Repeat("-", width-1) + ":"
		case AlignCenter:
			sep[i] = ":" + strings.Repeat("-", width-2) + ":"
		default:
			sep[i] = strings.Repeat("-", width)
		}
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}

	for _, row := range rows {
		if err := writeMarkdownRow(w, row, widths, aligns); err != nil {
			return err
		}
	}
	return nil
}

func groupedLabels(g grid) []string {
	header := make([]string, len(g.header))
	for i, h := range g.header {
		header[i] = escapeMarkdown(h)
	}
	col := 0
	for _, s := range g.groups {
		end := min(col+s.width, len(header))
		if s.label != "" {
			for i := col; i < end; i++ {
				header[i] = escapeMarkdown(s.label) + " / " + header[i]
			}
		}
		col = end
	}
	return header
}

func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func writeMarkdownRow(w io.Writer, cells []string, widths []int, aligns []Alignment) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = alignCell(cell, width, aligns[i])
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}
