package condtable

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Format represents an export format.
type Format string

const (
	JSON     Format = "json"
	YAML     Format = "yaml"
	CSV      Format = "csv"
	Terminal Format = "table"
	Markdown Format = "markdown"
	TSV      Format = "tsv"
	JSONL    Format = "jsonl"
	HTML     Format = "html"
)

const goTemplatePrefix = "go-template="

var formats = []Format{JSON, YAML, CSV, Terminal, Markdown, TSV, JSONL, HTML}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported static format names.
// GoTemplate is not included because it is parameterized.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// GoTemplate returns a Format that renders each row of the page using a Go
// text/template. The template sees a map from column key to displayed value.
func GoTemplate(tmpl string) Format {
	return Format(goTemplatePrefix + tmpl)
}

// ParseFormat parses a format string. Recognizes all static formats and
// go-template=<tmpl> strings.
func ParseFormat(s string) (Format, error) {
	if strings.HasPrefix(s, goTemplatePrefix) {
		return Format(s), nil
	}
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatForPath picks JSON or YAML from a file name's extension.
func FormatForPath(path string) (Format, error) {
	switch {
	case strings.HasSuffix(path, ".json"):
		return JSON, nil
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// BorderStyle controls table border characters.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BorderNone                       // No borders, space-separated columns
	BorderASCII                      // +-+|
	BorderHeavy                      // ┏━┓┗┛┃┳┻┣┫╋
	BorderDouble                     // ╔═╗╚╝║╦╩╠╣╬
)

// ParseBorderStyle maps "rounded", "none", "ascii", "heavy" and "double" to
// a BorderStyle. Anything else is rounded.
func ParseBorderStyle(s string) BorderStyle {
	switch strings.ToLower(s) {
	case "none":
		return BorderNone
	case "ascii":
		return BorderASCII
	case "heavy":
		return BorderHeavy
	case "double":
		return BorderDouble
	default:
		return BorderRounded
	}
}

// ExportOption configures Export.
type ExportOption func(*exportConfig)

type exportConfig struct {
	border    BorderStyle
	color     bool
	indent    string
	delimiter rune
}

// WithBorder sets the border style of the terminal table.
// Default: BorderRounded.
func WithBorder(b BorderStyle) ExportOption {
	return func(c *exportConfig) { c.border = b }
}

// WithColor paints matched cell backgrounds with ANSI colors in the
// terminal table. Default: off.
func WithColor(on bool) ExportOption {
	return func(c *exportConfig) { c.color = on }
}

// WithIndent sets JSON and YAML indentation. Default: compact JSON and the
// YAML encoder's own indent.
func WithIndent(indent string) ExportOption {
	return func(c *exportConfig) { c.indent = indent }
}

// WithDelimiter sets the CSV field delimiter. Default: comma.
func WithDelimiter(r rune) ExportOption {
	return func(c *exportConfig) { c.delimiter = r }
}

// Export writes v to w in format f. Only the page held by v is written,
// followed by the totals row when v has one.
func Export(w io.Writer, f Format, v View, opts ...ExportOption) error {
	cfg := exportConfig{border: BorderRounded, delimiter: ','}
	for _, opt := range opts {
		opt(&cfg)
	}
	switch f {
	case JSON:
		return writeJSON(w, v, cfg)
	case YAML:
		return writeYAML(w, v, cfg)
	case CSV:
		return writeCSV(w, newGrid(v), cfg)
	case Terminal:
		return writeTable(w, newGrid(v), cfg)
	case Markdown:
		return writeMarkdown(w, newGrid(v))
	case TSV:
		return writeTSV(w, newGrid(v))
	case JSONL:
		return writeJSONL(w, v, cfg)
	case HTML:
		return writeHTML(w, newGrid(v))
	default:
		if tmpl, ok := strings.CutPrefix(string(f), goTemplatePrefix); ok {
			return writeGoTemplate(w, tmpl, v)
		}
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Marshal exports v and returns the bytes.
func Marshal(f Format, v View, opts ...ExportOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := Export(&buf, f, v, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// span is one cell of the group header row.
type span struct {
	label string
	width int // columns covered
}

// grid is a View flattened to strings for the text formats.
type grid struct {
	title   string
	groups  []span
	header  []string
	aligns  []Alignment
	rows    [][]string
	colors  [][]RGBA
	footer  []string
	fcolors []RGBA
	classes []string
}

func newGrid(v View) grid {
	g := grid{
		title:   v.Title,
		header:  make([]string, len(v.Columns)),
		aligns:  make([]Alignment, len(v.Columns)),
		classes: make([]string, len(v.Columns)),
	}
	for i, c := range v.Columns {
		g.header[i] = c.DisplayLabel()
		g.classes[i] = "text-left"
	}
	if v.Header.Grouped() {
		for _, n := range v.Header.Nodes {
			label := n.Label
			if n.Leaf {
				label = ""
			}
			g.groups = append(g.groups, span{label: label, width: n.Span})
		}
	}

	// Alignment is per column; take it from the first formatted row.
	sample := v.Totals
	if len(v.Rows) > 0 {
		sample = v.Rows[0]
	}
	for i, cell := range sample {
		if i < len(g.aligns) {
			g.aligns[i] = cell.Align
			g.classes[i] = cell.Class
		}
	}

	for _, row := range v.Rows {
		text := make([]string, len(row))
		colors := make([]RGBA, len(row))
		for i, cell := range row {
			text[i] = cell.Display
			colors[i] = cell.Style.Background
		}
		g.rows = append(g.rows, text)
		g.colors = append(g.colors, colors)
	}
	if v.Totals != nil {
		g.footer = make([]string, len(v.Totals))
		g.fcolors = make([]RGBA, len(v.Totals))
		for i, cell := range v.Totals {
			g.footer[i] = cell.Display
			g.fcolors[i] = cell.Style.Background
		}
	}
	return g
}

// record maps column keys to displayed values for one row of cells.
func record(cells []Cell) map[string]string {
	m := make(map[string]string, len(cells))
	for _, cell := range cells {
		m[cell.Key] = cell.Display
	}
	return m
}
