package layout

import (
	"fmt"
	"strings"

	tp "github.com/xlab/treeprint"
)

// Dump prints the structure of a sequence of nodes as a tree.
func Dump(title string, nodes []Node) string {
	printer := tp.New()
	dumpNodes(printer.AddBranch(title), nodes)
	return printer.String()
}

func dumpNodes(printer tp.Tree, nodes []Node) {
	for _, node := range nodes {
		switch n := node.(type) {
		case *TextNode:
			printer.AddNode(fmt.Sprintf("text %q", abbreviate(n.Run.String(), 40)))
		case *ImageNode:
			printer.AddNode(fmt.Sprintf("image %.0fx%.0f", n.Width, n.Height))
		case *TableNode:
			dumpTable(printer, n.Table)
		case *ListNode:
			dumpList(printer, n.List)
		}
	}
}

func dumpTable(printer tp.Tree, t *Table) {
	branch := printer.AddBranch(fmt.Sprintf("table %d×%d", len(t.Rows), t.Columns()))
	for i, row := range t.Rows {
		rb := branch.AddBranch(fmt.Sprintf("row %d", i+1))
		for j, cell := range row.Cells {
			kind := "td"
			if cell.Header {
				kind = "th"
			}
			label := fmt.Sprintf("%s %d", kind, j+1)
			if cell.Width != nil {
				if cell.Width.Percent {
					label += fmt.Sprintf(" width=%g%%", cell.Width.Value)
				} else {
					label += fmt.Sprintf(" width=%gpt", cell.Width.Value)
				}
			}
			dumpNodes(rb.AddBranch(label), cell.Nodes)
		}
	}
}

func dumpList(printer tp.Tree, l *List) {
	branch := printer.AddBranch(fmt.Sprintf("%s list", l.Kind))
	for _, item := range l.Items {
		dumpNodes(branch.AddBranch(item.Prefix), item.Nodes)
	}
}

func abbreviate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", "⏎")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
