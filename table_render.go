package condtable

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
	BorderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	BorderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
}

// Width taken by the separator between two cells.
const (
	borderedGap = 3 // " │ "
	plainGap    = 2
)

func writeTable(w io.Writer, g grid, cfg exportConfig) error {
	if len(g.header) == 0 {
		return nil
	}
	widths := computeWidths(len(g.header), g.header, g.rows, g.footer)
	aligns := extendAligns(g.aligns, len(widths))
	p := newPainter(w, cfg.color)

	if cfg.border == BorderNone {
		fitSpans(widths, g.groups, plainGap)
		return renderPlainTable(w, g, widths, aligns, p)
	}
	fitSpans(widths, g.groups, borderedGap)
	if tw := runewidth.StringWidth(g.title); g.title != "" && tw > tableInnerWidth(widths)-2 {
		widths[len(widths)-1] += tw - (tableInnerWidth(widths) - 2)
	}
	bc, ok := borderSets[cfg.border]
	if !ok {
		bc = borderSets[BorderRounded]
	}
	return renderBorderedTable(w, g, widths, aligns, bc, p)
}

func computeWidths(numCols int, header []string, rows [][]string, footer []string) []int {
	widths := make([]int, numCols)
	for i, h := range header {
		if w := runewidth.StringWidth(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); i < numCols && w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i, cell := range footer {
		if w := runewidth.StringWidth(cell); i < numCols && w > widths[i] {
			widths[i] = w
		}
	}
	return widths
}

func extendAligns(aligns []Alignment, numCols int) []Alignment {
	if len(aligns) >= numCols {
		return aligns[:numCols]
	}
	extended := make([]Alignment, numCols)
	copy(extended, aligns)
	return extended
}

// spanWidth is the text width of a merged cell covering n columns from col.
func spanWidth(widths []int, col, n, gap int) int {
	total := 0
	for _, w := range widths[col : col+n] {
		total += w
	}
	return total + gap*(n-1)
}

// fitSpans widens the last column under each group label that does not fit.
func fitSpans(widths []int, spans []span, gap int) {
	col := 0
	for _, s := range spans {
		end := min(col+s.width, len(widths))
		if end <= col {
			return
		}
		if need := runewidth.StringWidth(s.label) - spanWidth(widths, col, end-col, gap); need > 0 {
			widths[end-1] += need
		}
		col = end
	}
}

// spanCuts reports, for each boundary between adjacent columns, whether a
// group boundary falls there. Without groups every boundary is a cut.
func spanCuts(numCols int, spans []span) []bool {
	cuts := make([]bool, max(numCols-1, 0))
	if len(spans) == 0 {
		for i := range cuts {
			cuts[i] = true
		}
		return cuts
	}
	col := 0
	for _, s := range spans {
		col += s.width
		if col-1 >= 0 && col-1 < len(cuts) {
			cuts[col-1] = true
		}
	}
	return cuts
}

// --- Plain table (BorderNone) ---

func renderPlainTable(w io.Writer, g grid, widths []int, aligns []Alignment, p painter) error {
	if len(g.groups) > 0 {
		if err := writePlainSpans(w, g.groups, widths); err != nil {
			return err
		}
	}
	if err := writePlainRow(w, g.header, nil, widths, aligns, p); err != nil {
		return err
	}
	if err := writePlainSep(w, widths); err != nil {
		return err
	}
	for i, row := range g.rows {
		if err := writePlainRow(w, row, g.colors[i], widths, aligns, p); err != nil {
			return err
		}
	}
	if len(g.footer) > 0 {
		if err := writePlainSep(w, widths); err != nil {
			return err
		}
		if err := writePlainRow(w, g.footer, g.fcolors, widths, aligns, p); err != nil {
			return err
		}
	}
	return nil
}

func writePlainSpans(w io.Writer, spans []span, widths []int) error {
	var parts []string
	col := 0
	for _, s := range spans {
		end := min(col+s.width, len(widths))
		if end <= col {
			break
		}
		parts = append(parts, alignCell(s.label, spanWidth(widths, col, end-col, plainGap), AlignCenter))
		col = end
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	return err
}

func writePlainSep(w io.Writer, widths []int) error {
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	_, err := fmt.Fprintln(w, strings.Join(sep, "  "))
	return err
}

func writePlainRow(w io.Writer, cells []string, colors []RGBA, widths []int, aligns []Alignment, p painter) error {
	parts := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = p.paint(alignCell(cell, width, aligns[i]), colorAt(colors, i))
	}
	line := strings.TrimRight(strings.Join(parts, "  "), " ")
	_, err := fmt.Fprintln(w, line)
	return err
}

// --- Bordered table ---

func renderBorderedTable(w io.Writer, g grid, widths []int, aligns []Alignment, bc borderChars, p painter) error {
	cuts := spanCuts(len(widths), g.groups)
	openTee := func(i int) string {
		if cuts[i] {
			return bc.topTee
		}
		return bc.horizontal
	}

	if g.title != "" {
		// Full-width top border (no column separators).
		if err := drawHLine(w, widths, bc.topLeft, bc.horizontal, bc.topRight, fixed(bc.horizontal)); err != nil {
			return err
		}
		inner := tableInnerWidth(widths) - 2 // subtract 1-space padding on each side
		padded := alignCell(g.title, inner, AlignCenter)
		if _, err := fmt.Fprintf(w, "%s %s %s\n", bc.vertical, padded, bc.vertical); err != nil {
			return err
		}
		// Transition to columns.
		if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.rightTee, openTee); err != nil {
			return err
		}
	} else {
		if err := drawHLine(w, widths, bc.topLeft, bc.horizontal, bc.topRight, openTee); err != nil {
			return err
		}
	}

	if len(g.groups) > 0 {
		if err := drawSpanRow(w, g.groups, widths, bc.vertical); err != nil {
			return err
		}
		below := func(i int) string {
			if cuts[i] {
				return bc.cross
			}
			return bc.topTee
		}
		if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.rightTee, below); err != nil {
			return err
		}
	}

	if err := drawBorderedRow(w, g.header, nil, widths, aligns, bc.vertical, p); err != nil {
		return err
	}
	if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.rightTee, fixed(bc.cross)); err != nil {
		return err
	}

	for i, row := range g.rows {
		if err := drawBorderedRow(w, row, g.colors[i], widths, aligns, bc.vertical, p); err != nil {
			return err
		}
	}

	if len(g.footer) > 0 {
		if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.rightTee, fixed(bc.cross)); err != nil {
			return err
		}
		if err := drawBorderedRow(w, g.footer, g.fcolors, widths, aligns, bc.vertical, p); err != nil {
			return err
		}
	}

	return drawHLine(w, widths, bc.bottomLeft, bc.horizontal, bc.bottomRight, fixed(bc.bottomTee))
}

// tableInnerWidth returns the total character width between the outer vertical
// borders of a bordered table. Each cell contributes its width plus 2 (one
// space of padding on each side), and cells are separated by a single vertical
// border character.
func tableInnerWidth(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w + 2
	}
	if len(widths) > 1 {
		n += len(widths) - 1
	}
	return n
}

func fixed(s string) func(int) string {
	return func(int) string { return s }
}

// drawHLine draws a horizontal rule. mid picks the joint drawn after
// column i.
func drawHLine(w io.Writer, widths []int, left, fill, right string, mid func(i int) string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid(i))
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawSpanRow(w io.Writer, spans []span, widths []int, vert string) error {
	var sb strings.Builder
	sb.WriteString(vert)
	col := 0
	for _, s := range spans {
		end := min(col+s.width, len(widths))
		if end <= col {
			break
		}
		sb.WriteString(" ")
		sb.WriteString(alignCell(s.label, spanWidth(widths, col, end-col, borderedGap), AlignCenter))
		sb.WriteString(" ")
		sb.WriteString(vert)
		col = end
	}
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawBorderedRow(w io.Writer, cells []string, colors []RGBA, widths []int, aligns []Alignment, vert string, p painter) error {
	var sb strings.Builder
	sb.WriteString(vert)
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		sb.WriteString(p.paint(" "+alignCell(cell, width, aligns[i])+" ", colorAt(colors, i)))
		if i < len(widths)-1 {
			sb.WriteString(vert)
		}
	}
	sb.WriteString(vert)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", pad)
	}
}

// --- Cell backgrounds ---

// painter renders matched backgrounds as ANSI colors. The zero value paints
// nothing.
type painter struct {
	r *lipgloss.Renderer
}

func newPainter(w io.Writer, on bool) painter {
	if !on {
		return painter{}
	}
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.TrueColor)
	return painter{r: r}
}

func (p painter) paint(s string, c RGBA) string {
	if p.r == nil || c.A <= 0 {
		return s
	}
	return p.r.NewStyle().Background(lipgloss.Color(overWhite(c).Hex())).Render(s)
}

// overWhite flattens a translucent color onto a white page.
func overWhite(c RGBA) RGBA {
	a := min(max(c.A, 0), 1)
	blend := func(v uint8) uint8 {
		return uint8(float64(v)*a + 255*(1-a) + 0.5)
	}
	return RGBA{R: blend(c.R), G: blend(c.G), B: blend(c.B), A: 1}
}

func colorAt(colors []RGBA, i int) RGBA {
	if i < len(colors) {
		return colors[i]
	}
	return Transparent
}
