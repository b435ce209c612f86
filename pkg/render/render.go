package render

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"

	"docmark/pkg/css"
	"docmark/pkg/text"
)

// Canvas is a raster Sink drawing onto a single page.
type Canvas struct {
	context *gg.Context
	metrics *text.FaceMetrics
	scale   float64
}

// NewCanvas creates a white page of width × height points. The raster is
// scale pixels per point.
func NewCanvas(width, height, scale float64, m *text.FaceMetrics) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	if m == nil {
		m = text.NewFaceMetrics(nil)
	}
	w := int(math.Ceil(width * scale))
	h := int(math.Ceil(height * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.Scale(scale, scale)
	tracer().Debugf("canvas %dx%d px, scale %.2f", w, h, scale)
	return &Canvas{context: dc, metrics: m, scale: scale}
}

func (c *Canvas) Metrics() text.Metrics {
	return c.metrics
}

func (c *Canvas) setColor(col css.Color) {
	c.context.SetRGB(col.RGB())
}

func (c *Canvas) DrawText(x, y float64, f text.Fragment) {
	face, err := c.metrics.Face(f.Style)
	if err != nil {
		tracer().Errorf("no font face for %q: %v", f.Style.Font, err)
		return
	}
	c.context.SetFontFace(face)
	c.setColor(f.Style.Color)
	c.context.DrawString(f.Text, x, y)

	if f.Underline || f.Link != "" {
		thickness := f.Style.Size / 12.0
		if thickness < 0.5 {
			thickness = 0.5
		}
		underlineY := y + f.Style.Size*0.1
		c.context.SetLineWidth(thickness)
		c.context.DrawLine(x, underlineY, x+f.Width, underlineY)
		c.context.Stroke()
	}
}

func (c *Canvas) StrokeLine(x1, y1, x2, y2, lineWidth float64, col css.Color) {
	if lineWidth <= 0 {
		return
	}
	c.setColor(col)
	c.context.SetLineWidth(lineWidth)
	c.context.DrawLine(x1, y1, x2, y2)
	c.context.Stroke()
}

func (c *Canvas) StrokeRect(x, y, w, h, lineWidth float64, col css.Color) {
	if lineWidth <= 0 {
		return
	}
	c.setColor(col)
	c.context.SetLineWidth(lineWidth)
	c.context.DrawRectangle(x, y, w, h)
	c.context.Stroke()
}

func (c *Canvas) FillRect(x, y, w, h float64, col css.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	c.setColor(col)
	c.context.DrawRectangle(x, y, w, h)
	c.context.Fill()
}

// DrawImage resamples img to its target pixel size and draws it.
func (c *Canvas) DrawImage(img image.Image, x, y, w, h float64) {
	pw := uint(math.Round(w * c.scale))
	ph := uint(math.Round(h * c.scale))
	if pw == 0 || ph == 0 {
		return
	}
	scaled := resize.Resize(pw, ph, img, resize.Bilinear)
	c.context.Push()
	c.context.Identity()
	c.context.DrawImage(scaled, int(math.Round(x*c.scale)), int(math.Round(y*c.scale)))
	c.context.Pop()
}

// Image returns the page raster.
func (c *Canvas) Image() image.Image {
	return c.context.Image()
}

// At returns the color of the pixel at point (x, y).
func (c *Canvas) At(x, y float64) color.Color {
	return c.context.Image().At(int(x*c.scale), int(y*c.scale))
}

func (c *Canvas) SavePNG(filename string) error {
	return c.context.SavePNG(filename)
}
