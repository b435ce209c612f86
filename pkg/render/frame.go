package render

import (
	"image"

	"docmark/pkg/css"
	"docmark/pkg/text"
)

// Frame is a column of the page with a vertical cursor. Content is
// stacked top-down starting at the cursor.
type Frame struct {
	Sink  Sink
	X     float64
	Width float64
	Y     float64
}

// NewFrame creates a frame of the given width with the cursor at y.
func NewFrame(s Sink, x, y, width float64) *Frame {
	return &Frame{Sink: s, X: x, Y: y, Width: width}
}

func (f *Frame) MoveDown(dy float64) {
	f.Y += dy
}

// Text sets run into the frame width at the cursor and advances the cursor.
func (f *Frame) Text(run text.Run, st text.Style) error {
	block, err := text.Layout(run, f.Width, st, f.Sink.Metrics())
	if err != nil {
		return err
	}
	DrawBlock(f.Sink, block, f.X, f.Y)
	f.Y += block.Height
	return nil
}

// Rule strokes a horizontal line across the frame at the cursor.
func (f *Frame) Rule(lineWidth float64, c css.Color) {
	f.Sink.StrokeLine(f.X, f.Y, f.X+f.Width, f.Y, lineWidth, c)
}

// Image draws img at the cursor, scaled to width and keeping its aspect
// ratio, and advances the cursor.
func (f *Frame) Image(img image.Image, width float64) error {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil
	}
	if width > f.Width || width <= 0 {
		return ErrCannotFit
	}
	height := width * float64(b.Dy()) / float64(b.Dx())
	f.Sink.DrawImage(img, f.X, f.Y, width, height)
	f.Y += height
	return nil
}
