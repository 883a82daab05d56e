package condtable

// HeaderNode is one cell of the top header row. A leaf covers a single
// ungrouped column; a group node covers every column resolved to its label.
type HeaderNode struct {
	Label   string
	Span    int
	Columns []string
	Leaf    bool
	Frozen  bool
}

// HeaderTree is the two-level header: the nodes of the top row, each
// owning one or more columns of the bottom row.
type HeaderTree struct {
	Nodes []HeaderNode
}

// Grouped reports whether any group node resolved. Without one, a single
// header row is enough.
func (h HeaderTree) Grouped() bool {
	for _, n := range h.Nodes {
		if !n.Leaf {
			return true
		}
	}
	return false
}

// BuildHeaderTree resolves group declarations against columns.
//
// Declarations are scanned in order and a column claimed by several groups
// belongs to the last one. Declarations sharing a label merge. Children
// naming unknown columns are ignored. Nodes come out in column order: a
// group appears at its first resolved column and spans the count of its
// resolved columns, whether or not they are adjacent.
func BuildHeaderTree(columns []Column, groups []Group) HeaderTree {
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c.Key] = true
	}

	owner := make(map[string]string)
	for _, g := range groups {
		for _, child := range g.Children {
			if child.ColumnKey != "" && known[child.ColumnKey] {
				owner[child.ColumnKey] = g.Label
			}
		}
	}

	nodes := make([]HeaderNode, 0, len(columns))
	at := make(map[string]int)
	for _, c := range columns {
		label, grouped := owner[c.Key]
		if !grouped {
			nodes = append(nodes, HeaderNode{
				Label:   c.DisplayLabel(),
				Span:    1,
				Columns: []string{c.Key},
				Leaf:    true,
			})
			continue
		}
		if i, ok := at[label]; ok {
			nodes[i].Columns = append(nodes[i].Columns, c.Key)
			nodes[i].Span = len(nodes[i].Columns)
			continue
		}
		at[label] = len(nodes)
		nodes = append(nodes, HeaderNode{
			Label:   label,
			Span:    1,
			Columns: []string{c.Key},
		})
	}
	return HeaderTree{Nodes: nodes}
}
