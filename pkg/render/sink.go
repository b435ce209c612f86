package render

import (
	"image"

	"github.com/npillmayer/schuko/tracing"

	"docmark/pkg/css"
	"docmark/pkg/text"
)

// tracer traces with key 'docmark.render'.
func tracer() tracing.Trace {
	return tracing.Select("docmark.render")
}

// ErrCannotFit signals content that cannot be drawn into its space.
// It is the same value as text.ErrCannotFit.
var ErrCannotFit = text.ErrCannotFit

// Sink receives positioned drawing calls. Coordinates are in points,
// y grows downwards. Text is placed on its baseline.
type Sink interface {
	DrawText(x, y float64, f text.Fragment)
	StrokeLine(x1, y1, x2, y2, lineWidth float64, c css.Color)
	StrokeRect(x, y, w, h, lineWidth float64, c css.Color)
	FillRect(x, y, w, h float64, c css.Color)
	DrawImage(img image.Image, x, y, w, h float64)
	Metrics() text.Metrics
}

// DrawBlock draws a laid out text block with its top left corner at (x, y).
func DrawBlock(s Sink, b text.Block, x, y float64) {
	for i, line := range b.Lines {
		if i > 0 {
			y += b.Leading
		}
		baseline := y + line.Ascent
		for _, f := range line.Fragments {
			s.DrawText(x+f.X, baseline, f)
		}
		y += line.Height
	}
}
