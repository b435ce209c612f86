package layout

import (
	"docmark/pkg/text"
)

// naturalWidth is the width of a node set without wrapping.
func naturalWidth(n Node, m text.Metrics) float64 {
	switch n := n.(type) {
	case *TextNode:
		return text.NaturalWidth(n.Run, n.Style, m)
	case *ImageNode:
		if n.MaxWidth != nil && !n.MaxWidth.Percent && n.MaxWidth.Value < n.Width {
			return n.MaxWidth.Value
		}
		return n.Width
	case *TableNode:
		return n.Table.NaturalWidth(m)
	case *ListNode:
		return n.List.NaturalWidth(m)
	}
	return 0
}

func nodesNaturalWidth(nodes []Node, m text.Metrics) float64 {
	var w float64
	for _, n := range nodes {
		if nw := naturalWidth(n, m); nw > w {
			w = nw
		}
	}
	return w
}

// NaturalWidth is the sum of the natural column widths. It is computed
// once per table.
func (t *Table) NaturalWidth(m text.Metrics) float64 {
	if t.natural != nil {
		return *t.natural
	}
	var w float64
	for _, n := range t.naturalColumns(m) {
		w += n
	}
	t.natural = &w
	return w
}

// naturalColumns returns the widest natural cell width of each column,
// padding included.
func (t *Table) naturalColumns(m text.Metrics) []float64 {
	cols := make([]float64, t.Columns())
	for _, row := range t.Rows {
		for i, cell := range row.Cells {
			w := nodesNaturalWidth(cell.Nodes, m) + 2*cell.Options.Padding
			if w > cols[i] {
				cols[i] = w
			}
		}
	}
	return cols
}

// columns collects the width hints and natural widths of every column.
// An absolute hint wins over a percentage; the first hint found per
// column counts.
func (t *Table) columns(total float64, m text.Metrics) []Column {
	natural := t.naturalColumns(m)
	cols := make([]Column, len(natural))
	percent := make([]bool, len(natural))
	for i := range cols {
		cols[i].Natural = natural[i]
	}
	for _, row := range t.Rows {
		for i, cell := range row.Cells {
			if cell.Width == nil {
				continue
			}
			if !cell.Width.Percent && (!cols[i].Fixed || percent[i]) {
				cols[i].Fixed, cols[i].Width, percent[i] = true, cell.Width.Value, false
			} else if cell.Width.Percent && !cols[i].Fixed {
				cols[i].Fixed, cols[i].Width, percent[i] = true, cell.Width.Resolve(total), true
			}
		}
	}
	return cols
}

// NaturalWidth is the prefix column plus the widest item set without wrapping.
func (l *List) NaturalWidth(m text.Metrics) float64 {
	var w float64
	for _, item := range l.Items {
		if iw := nodesNaturalWidth(item.Nodes, m); iw > w {
			w = iw
		}
	}
	return l.indent(m) + w
}

// PrefixWidth is the width of the prefix column: the configured bullet
// width, or the widest prefix plus padding on both sides.
func (l *List) PrefixWidth(m text.Metrics) float64 {
	if l.Options.BulletWidth > 0 {
		return l.Options.BulletWidth
	}
	var w float64
	for _, item := range l.Items {
		if pw := m.Advance(item.Prefix, l.Style); pw > w {
			w = pw
		}
	}
	return w + 2*l.Options.BulletPadding
}

// indent is the offset of item content from the left edge of the list.
func (l *List) indent(m text.Metrics) float64 {
	return l.Options.BulletMargin + l.PrefixWidth(m) + l.Options.ContentMargin
}
