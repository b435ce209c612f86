package engine

import (
	"fmt"

	"docmark/pkg/css"
	"docmark/pkg/layout"
	"docmark/pkg/options"
)

func (e *Engine) startTable() error {
	if err := e.flush(); err != nil {
		return err
	}
	e.push(&container{
		kind: tableContainer,
		table: &layout.Table{
			Options:     e.res.Table(),
			CellOptions: e.res.Cell(false, nil),
		},
	})
	return nil
}

// startRow appends a row to the innermost table, closing a cell left open.
func (e *Engine) startRow() error {
	i := e.innermost(tableContainer)
	if i < 0 {
		return nil
	}
	if err := e.closeAbove(i); err != nil {
		return err
	}
	t := e.stack[i].table
	t.Rows = append(t.Rows, &layout.Row{})
	return nil
}

func (e *Engine) endRow() error {
	i := e.innermost(tableContainer)
	if i < 0 {
		return nil
	}
	return e.closeAbove(i)
}

// startCell opens a data or header cell in the last row of the innermost
// table. A row is created when the table has none.
func (e *Engine) startCell(header bool, attr map[string]string) error {
	i := e.innermost(tableContainer)
	if i < 0 {
		return nil
	}
	if err := e.closeAbove(i); err != nil {
		return err
	}
	t := e.stack[i].table
	if len(t.Rows) == 0 {
		t.Rows = append(t.Rows, &layout.Row{})
	}
	row := t.Rows[len(t.Rows)-1]
	cell := newCell(e.res, header, attr)
	row.Cells = append(row.Cells, cell)
	e.push(&container{kind: cellContainer, cell: cell})
	return nil
}

// newCell creates a cell from its tag attributes. The style attribute
// carries the width hint and inline overrides; legacy width and align
// attributes are honored when the style does not set them.
func newCell(res *options.Resolver, header bool, attr map[string]string) *layout.Cell {
	var inline *css.Style
	if s, ok := attr["style"]; ok {
		inline = css.ParseInlineStyle(s)
	}
	if a, ok := attr["align"]; ok {
		if inline == nil {
			inline = css.NewStyle()
		}
		if _, set := inline.Get("text-align"); !set {
			inline.Set("text-align", a)
		}
	}
	cell := &layout.Cell{Header: header, Options: res.Cell(header, inline)}
	if w, ok := inline.GetLength("width"); ok {
		cell.Width = &w
	} else if w, ok := css.ParseLength(attr["width"]); ok {
		cell.Width = &w
	}
	return cell
}

// lastCell returns the last cell of t, creating a row and cell as needed.
func lastCell(t *layout.Table, co options.CellOptions) *layout.Cell {
	if len(t.Rows) == 0 {
		t.Rows = append(t.Rows, &layout.Row{})
	}
	row := t.Rows[len(t.Rows)-1]
	if len(row.Cells) == 0 {
		row.Cells = append(row.Cells, &layout.Cell{Options: co})
	}
	return row.Cells[len(row.Cells)-1]
}

// endTable closes the table on top of the stack. Tables without cells are
// dropped.
func (e *Engine) endTable() error {
	t := e.pop().table
	if t.IsEmpty() {
		tracer().Debugf("dropping empty table")
		return nil
	}
	return e.attach(&layout.TableNode{Table: t})
}

// drawTable draws a top-level table across the frame. A table that does
// not fit is replaced by its placeholder.
func (e *Engine) drawTable(n *layout.TableNode) error {
	e.applyMargin()
	res, err := layout.DrawTable(e.frame, n.Table)
	if err != nil {
		return fmt.Errorf("drawing table: %w", err)
	}
	if res.Outcome == layout.DoesNotFit {
		tracer().Infof("table does not fit into %.1fpt, using placeholder", e.frame.Width)
		if err := e.placeholder(n.Table.Options.TooLarge); err != nil {
			return err
		}
	} else {
		e.document = append(e.document, n)
	}
	e.put(e.res.Text().MarginBottom)
	return nil
}
