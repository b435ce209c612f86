package layout

import (
	"image"
	"strconv"

	"docmark/pkg/css"
	"docmark/pkg/options"
	"docmark/pkg/text"
)

// Node is a unit of content owned by a Cell or ListItem: one of
// *TextNode, *ImageNode, *TableNode or *ListNode.
type Node interface {
	isNode()
}

// TextNode is a formatted run set in a resolved style.
type TextNode struct {
	Run   text.Run
	Style text.Style
}

// ImageNode is a decoded image with its intrinsic size in points.
// MaxWidth, if set, limits the drawn width.
type ImageNode struct {
	Image         image.Image
	Width, Height float64
	MaxWidth      *css.Length
}

// TableNode is a table nested in a cell or list item.
type TableNode struct {
	Table *Table
}

// ListNode is a list nested in a cell or list item.
type ListNode struct {
	List *List
}

func (*TextNode) isNode()  {}
func (*ImageNode) isNode() {}
func (*TableNode) isNode() {}
func (*ListNode) isNode()  {}

// Cell is a table data or header cell.
type Cell struct {
	Nodes   []Node
	Width   *css.Length
	Header  bool
	Options options.CellOptions
}

type Row struct {
	Cells []*Cell
}

// Table is a matrix of cells. Rows may have different lengths; short rows
// are padded with empty cells when drawn.
type Table struct {
	Rows    []*Row
	Options options.TableOptions
	// Empty cells use these options.
	CellOptions options.CellOptions

	natural *float64
}

// Columns returns the number of columns, the length of the longest row.
func (t *Table) Columns() int {
	n := 0
	for _, row := range t.Rows {
		if len(row.Cells) > n {
			n = len(row.Cells)
		}
	}
	return n
}

// IsEmpty reports whether the table has no rows or only rows without cells.
func (t *Table) IsEmpty() bool {
	return t.Columns() == 0
}

type ListKind int

const (
	Unordered ListKind = iota
	Ordered
)

func (k ListKind) String() string {
	if k == Ordered {
		return "ordered"
	}
	return "unordered"
}

// List is an ordered or unordered list. Prefixes are drawn in Style.
type List struct {
	Kind    ListKind
	Items   []*ListItem
	Options options.ListOptions
	Style   text.Style

	counter int
}

// ListItem is one item of a list with its prefix fixed at creation.
type ListItem struct {
	Prefix string
	Nodes  []Node
}

// NewList creates an empty list whose counter starts at 1.
func NewList(kind ListKind, opts options.ListOptions, st text.Style) *List {
	return &List{Kind: kind, Options: opts, Style: st, counter: 1}
}

// AddItem appends an item with the next prefix: the bullet for unordered
// lists, "N." for ordered ones.
func (l *List) AddItem() *ListItem {
	item := &ListItem{Prefix: l.Options.Bullet}
	if l.Kind == Ordered {
		item.Prefix = strconv.Itoa(l.counter) + "."
		l.counter++
	}
	l.Items = append(l.Items, item)
	return item
}

// IsEmpty reports whether no item has renderable content.
func (l *List) IsEmpty() bool {
	for _, item := range l.Items {
		if len(item.Nodes) > 0 {
			return false
		}
	}
	return true
}
