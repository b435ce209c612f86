package html

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// ElementKind is the role of an element in document assembly.
type ElementKind int

const (
	Unknown ElementKind = iota
	Paragraph
	Division
	Heading
	ListContainer
	ListItem
	TableContainer
	Row
	Cell
	InlineBold
	InlineItalic
	InlineUnderline
	Link
	Image
	Rule
	LineBreak
)

var kindNames = [...]string{
	"unknown", "paragraph", "division", "heading", "list", "list-item", "table",
	"row", "cell", "bold", "italic", "underline", "link", "image", "rule", "line-break",
}

func (k ElementKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Element is a classified tag. Level is set for headings (1..6), Ordered
// for list containers and Header for cells.
type Element struct {
	Kind    ElementKind
	Level   int
	Ordered bool
	Header  bool
}

// Classify maps a tag name to its element. Unknown tags yield Unknown.
func Classify(tag string) Element {
	switch atom.Lookup([]byte(strings.ToLower(tag))) {
	case atom.P:
		return Element{Kind: Paragraph}
	case atom.Div:
		return Element{Kind: Division}
	case atom.H1:
		return Element{Kind: Heading, Level: 1}
	case atom.H2:
		return Element{Kind: Heading, Level: 2}
	case atom.H3:
		return Element{Kind: Heading, Level: 3}
	case atom.H4:
		return Element{Kind: Heading, Level: 4}
	case atom.H5:
		return Element{Kind: Heading, Level: 5}
	case atom.H6:
		return Element{Kind: Heading, Level: 6}
	case atom.Ul:
		return Element{Kind: ListContainer}
	case atom.Ol:
		return Element{Kind: ListContainer, Ordered: true}
	case atom.Li:
		return Element{Kind: ListItem}
	case atom.Table:
		return Element{Kind: TableContainer}
	case atom.Tr:
		return Element{Kind: Row}
	case atom.Td:
		return Element{Kind: Cell}
	case atom.Th:
		return Element{Kind: Cell, Header: true}
	case atom.B, atom.Strong:
		return Element{Kind: InlineBold}
	case atom.I, atom.Em:
		return Element{Kind: InlineItalic}
	case atom.U:
		return Element{Kind: InlineUnderline}
	case atom.A:
		return Element{Kind: Link}
	case atom.Img:
		return Element{Kind: Image}
	case atom.Hr:
		return Element{Kind: Rule}
	case atom.Br:
		return Element{Kind: LineBreak}
	}
	return Element{Kind: Unknown}
}
