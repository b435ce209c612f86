package engine

import (
	"context"
	"fmt"
	"math"

	"docmark/pkg/html"
	"docmark/pkg/images"
	"docmark/pkg/options"
	"docmark/pkg/render"
	"docmark/pkg/text"
)

// Renderer renders documents onto raster pages whose height fits the
// content.
type Renderer struct {
	Width  float64 // page width in points
	Margin float64 // page margin in points
	Scale  float64 // pixels per point

	engine  *Engine
	metrics *text.FaceMetrics
}

// NewRenderer creates a renderer for A4-wide pages. If fonts is nil the
// bundled Go fonts are used.
func NewRenderer(opts options.Options, loader images.Loader, fonts *text.Fonts) *Renderer {
	return &Renderer{
		Width:   595,
		Margin:  36,
		Scale:   1,
		engine:  New(opts, loader),
		metrics: text.NewFaceMetrics(fonts),
	}
}

// Engine returns the engine of the renderer, e.g. to inspect the last
// document.
func (r *Renderer) Engine() *Engine {
	return r.engine
}

// Render builds the document into a display list first, then sizes a
// page to it and replays the drawing.
func (r *Renderer) Render(ctx context.Context, events []html.Event) (*render.Canvas, error) {
	inner := r.Width - 2*r.Margin
	if inner <= 0 {
		return nil, fmt.Errorf("page width %.1fpt leaves no room inside margins of %.1fpt", r.Width, r.Margin)
	}
	rec := render.NewRecorder(r.metrics)
	frame := render.NewFrame(rec, r.Margin, r.Margin, inner)
	if err := r.engine.Build(ctx, events, frame); err != nil {
		return nil, err
	}
	height := math.Max(frame.Y, rec.Bottom()) + r.Margin
	tracer().Infof("rendering %d drawing operations onto %.0f×%.0fpt", len(rec.Ops), r.Width, height)
	canvas := render.NewCanvas(r.Width, height, r.Scale, r.metrics)
	rec.Replay(canvas)
	return canvas, nil
}
