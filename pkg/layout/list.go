package layout

import (
	"math"

	"docmark/pkg/render"
	"docmark/pkg/text"
)

// drawList draws every item of l: first its prefix at bullet margin plus
// padding, then its content indented by the list's indent.
func drawList(s render.Sink, l *List, x, y, width float64) (float64, error) {
	m := s.Metrics()
	indent := l.indent(m)
	contentWidth := width - indent
	if contentWidth <= 0 {
		return 0, render.ErrCannotFit
	}
	prefixX := x + l.Options.BulletMargin + l.Options.BulletPadding
	top := y
	for _, item := range l.Items {
		prefix, err := text.Layout(text.Plain(item.Prefix), math.Inf(1), l.Style, m)
		if err != nil {
			return 0, err
		}
		render.DrawBlock(s, prefix, prefixX, y)
		h, err := drawNodes(s, item.Nodes, l.Style, x+indent, y, contentWidth)
		if err != nil {
			return 0, err
		}
		y += math.Max(h, prefix.Height)
	}
	return y - top, nil
}
