package layout

import (
	"docmark/pkg/render"
	"docmark/pkg/text"
)

// ColumnWidths resolves the column widths of t for the given total width.
func (t *Table) ColumnWidths(total float64, m text.Metrics) []float64 {
	return ColumnWidths(t.columns(total, m), total, t.Options.MinColumnWidth)
}

// drawTable draws the rows of t top-down. Cell content is drawn first into
// one recorder per cell, so that the row height is known before backgrounds
// and borders are drawn.
func drawTable(s render.Sink, t *Table, x, y, width float64) (float64, error) {
	m := s.Metrics()
	widths := t.ColumnWidths(width, m)
	top := y
	empty := &Cell{Options: t.CellOptions}
	for _, row := range t.Rows {
		if len(row.Cells) == 0 {
			continue
		}
		contents := make([]*render.Recorder, len(widths))
		var rowHeight float64
		for i, w := range widths {
			cell := empty
			if i < len(row.Cells) {
				cell = row.Cells[i]
			}
			pad := cell.Options.Padding
			inner := w - 2*pad
			if inner <= 0 {
				return 0, render.ErrCannotFit
			}
			contents[i] = render.NewRecorder(m)
			h, err := drawNodes(contents[i], cell.Nodes, cell.Options.Style, x+sumOf(widths[:i])+pad, y+pad, inner)
			if err != nil {
				return 0, err
			}
			if h+2*pad > rowHeight {
				rowHeight = h + 2*pad
			}
		}
		cx := x
		for i, w := range widths {
			cell := empty
			if i < len(row.Cells) {
				cell = row.Cells[i]
			}
			if bg := cell.Options.Background; bg != nil {
				s.FillRect(cx, y, w, rowHeight, *bg)
			}
			if cell.Options.BorderWidth > 0 {
				s.StrokeRect(cx, y, w, rowHeight, cell.Options.BorderWidth, cell.Options.BorderColor)
			}
			contents[i].Replay(s)
			cx += w
		}
		y += rowHeight
	}
	return y - top, nil
}
