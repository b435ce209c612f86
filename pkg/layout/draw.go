package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"

	"docmark/pkg/render"
	"docmark/pkg/text"
)

// tracer traces with key 'docmark.layout'.
func tracer() tracing.Trace {
	return tracing.Select("docmark.layout")
}

// Outcome tells whether a table or list was drawn.
type Outcome int

const (
	Drawn Outcome = iota
	DoesNotFit
)

func (o Outcome) String() string {
	if o == DoesNotFit {
		return "does not fit"
	}
	return "drawn"
}

// Result is the outcome of drawing a table or list, with the height used.
// A subtree that does not fit has drawn nothing.
type Result struct {
	Outcome Outcome
	Height  float64
}

// DrawTable draws t into the frame at its cursor, using the full frame
// width, and advances the cursor. Nothing is drawn if any part of the
// table cannot fit.
func DrawTable(f *render.Frame, t *Table) (Result, error) {
	return transaction(f, func(s render.Sink) (float64, error) {
		return drawTable(s, t, f.X, f.Y, f.Width)
	})
}

// DrawList draws l into the frame at its cursor and advances the cursor.
// Nothing is drawn if any part of the list cannot fit.
func DrawList(f *render.Frame, l *List) (Result, error) {
	return transaction(f, func(s render.Sink) (float64, error) {
		return drawList(s, l, f.X, f.Y, f.Width)
	})
}

// transaction records draw and replays it onto the frame's sink only when
// it completes.
func transaction(f *render.Frame, draw func(render.Sink) (float64, error)) (Result, error) {
	rec := render.NewRecorder(f.Sink.Metrics())
	h, err := draw(rec)
	if errors.Is(err, render.ErrCannotFit) {
		return Result{Outcome: DoesNotFit}, nil
	} else if err != nil {
		return Result{}, err
	}
	rec.Replay(f.Sink)
	f.MoveDown(h)
	return Result{Outcome: Drawn, Height: h}, nil
}

// nested draws a nested table or list into a recorder. If it does not fit,
// the placeholder is set in its place. If even the placeholder cannot fit,
// ErrCannotFit escalates to the enclosing boundary.
func nested(s render.Sink, x, y, width float64, placeholder string, st text.Style,
	draw func(render.Sink) (float64, error)) (float64, error) {
	//
	rec := render.NewRecorder(s.Metrics())
	h, err := draw(rec)
	if err == nil {
		rec.Replay(s)
		return h, nil
	}
	if !errors.Is(err, render.ErrCannotFit) {
		return 0, err
	}
	tracer().Infof("nested content does not fit into %.1fpt, using placeholder %q", width, placeholder)
	return drawText(s, text.Plain(placeholder), st, x, y, width)
}

func drawText(s render.Sink, run text.Run, st text.Style, x, y, width float64) (float64, error) {
	block, err := text.Layout(run, width, st, s.Metrics())
	if err != nil {
		return 0, err
	}
	render.DrawBlock(s, block, x, y)
	return block.Height, nil
}

// drawNodes stacks content nodes top-down in a column of the given width
// and returns their total height. st is the style of placeholders.
func drawNodes(s render.Sink, nodes []Node, st text.Style, x, y, width float64) (float64, error) {
	top := y
	for _, node := range nodes {
		var h float64
		var err error
		switch n := node.(type) {
		case *TextNode:
			h, err = drawText(s, n.Run, n.Style, x, y, width)
		case *ImageNode:
			h, err = drawImage(s, n, x, y, width)
		case *TableNode:
			h, err = nested(s, x, y, width, n.Table.Options.NestedTooLarge, st, func(rec render.Sink) (float64, error) {
				return drawTable(rec, n.Table, x, y, width)
			})
		case *ListNode:
			h, err = nested(s, x, y, width, n.List.Options.TooLarge, st, func(rec render.Sink) (float64, error) {
				return drawList(rec, n.List, x, y, width)
			})
		default:
			err = fmt.Errorf("unknown content node %T", node)
		}
		if err != nil {
			return 0, err
		}
		y += h
	}
	return y - top, nil
}

// drawImage scales an image to the smallest of its width hint, its
// intrinsic width and the available width.
func drawImage(s render.Sink, n *ImageNode, x, y, width float64) (float64, error) {
	if n.Width <= 0 || n.Height <= 0 {
		return 0, nil
	}
	if width <= 0 {
		return 0, render.ErrCannotFit
	}
	w := math.Min(n.Width, width)
	if n.MaxWidth != nil {
		w = math.Min(w, n.MaxWidth.Resolve(width))
	}
	if w <= 0 {
		return 0, nil
	}
	h := w * n.Height / n.Width
	s.DrawImage(n.Image, x, y, w, h)
	return h, nil
}
