package render

import (
	"image"

	"docmark/pkg/css"
	"docmark/pkg/text"
)

type OpKind int

const (
	OpText OpKind = iota
	OpLine
	OpRect
	OpFill
	OpImage
)

func (k OpKind) String() string {
	switch k {
	case OpText:
		return "text"
	case OpLine:
		return "line"
	case OpRect:
		return "rect"
	case OpFill:
		return "fill"
	case OpImage:
		return "image"
	}
	return "unknown"
}

// Op is one recorded drawing call. For lines, (X, Y)-(X2, Y2) are the end
// points; for everything else X, Y, W, H is the box.
type Op struct {
	Kind      OpKind
	X, Y      float64
	X2, Y2    float64
	W, H      float64
	LineWidth float64
	Color     css.Color
	Fragment  text.Fragment
	Image     image.Image
}

// Recorder is a Sink keeping a display list. Layout draws tables and lists
// into a recorder first and replays it onto the parent sink only if the
// whole subtree fits.
type Recorder struct {
	metrics text.Metrics
	Ops     []Op
}

func NewRecorder(m text.Metrics) *Recorder {
	return &Recorder{metrics: m}
}

func (r *Recorder) Metrics() text.Metrics {
	return r.metrics
}

func (r *Recorder) DrawText(x, y float64, f text.Fragment) {
	r.Ops = append(r.Ops, Op{Kind: OpText, X: x, Y: y, W: f.Width, Fragment: f, Color: f.Style.Color})
}

func (r *Recorder) StrokeLine(x1, y1, x2, y2, lineWidth float64, c css.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, X: x1, Y: y1, X2: x2, Y2: y2, LineWidth: lineWidth, Color: c})
}

func (r *Recorder) StrokeRect(x, y, w, h, lineWidth float64, c css.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpRect, X: x, Y: y, W: w, H: h, LineWidth: lineWidth, Color: c})
}

func (r *Recorder) FillRect(x, y, w, h float64, c css.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) DrawImage(img image.Image, x, y, w, h float64) {
	r.Ops = append(r.Ops, Op{Kind: OpImage, X: x, Y: y, W: w, H: h, Image: img})
}

// Replay issues the recorded calls on s, in order.
func (r *Recorder) Replay(s Sink) {
	for _, op := range r.Ops {
		switch op.Kind {
		case OpText:
			s.DrawText(op.X, op.Y, op.Fragment)
		case OpLine:
			s.StrokeLine(op.X, op.Y, op.X2, op.Y2, op.LineWidth, op.Color)
		case OpRect:
			s.StrokeRect(op.X, op.Y, op.W, op.H, op.LineWidth, op.Color)
		case OpFill:
			s.FillRect(op.X, op.Y, op.W, op.H, op.Color)
		case OpImage:
			s.DrawImage(op.Image, op.X, op.Y, op.W, op.H)
		}
	}
}

// Reset drops all recorded calls.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Count returns the number of recorded calls of kind k.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Texts returns the recorded text fragments in drawing order.
func (r *Recorder) Texts() []string {
	var texts []string
	for _, op := range r.Ops {
		if op.Kind == OpText {
			texts = append(texts, op.Fragment.Text)
		}
	}
	return texts
}

// TextOps returns the recorded text calls.
func (r *Recorder) TextOps() []Op {
	var ops []Op
	for _, op := range r.Ops {
		if op.Kind == OpText {
			ops = append(ops, op)
		}
	}
	return ops
}

// Bottom returns the largest y touched by any recorded call.
func (r *Recorder) Bottom() float64 {
	var bottom float64
	for _, op := range r.Ops {
		y := op.Y + op.H
		if op.Kind == OpLine && op.Y2 > op.Y {
			y = op.Y2
		}
		if op.Kind == OpText {
			y = op.Y
		}
		if y > bottom {
			bottom = y
		}
	}
	return bottom
}
