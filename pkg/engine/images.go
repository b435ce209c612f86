package engine

import (
	"errors"
	"fmt"
	"math"

	"docmark/pkg/css"
	"docmark/pkg/images"
	"docmark/pkg/layout"
	"docmark/pkg/render"
)

// image loads the source of an <img> and places it. Images that cannot
// be loaded are replaced by the image placeholder text.
func (e *Engine) image(attr map[string]string) error {
	src := attr["src"]
	if src == "" || e.loader == nil {
		e.runs.text(e.res.ImagePlaceholder())
		return nil
	}
	img, err := e.loader.Load(e.ctx, src)
	if err != nil {
		if ctxErr := e.ctx.Err(); ctxErr != nil {
			return fmt.Errorf("loading image: %w", ctxErr)
		}
		tracer().Infof("cannot load image %q: %v", abbreviate(src), err)
		e.runs.text(e.res.ImagePlaceholder())
		return nil
	}
	w, h := images.Dimensions(img)
	node := &layout.ImageNode{Image: img, Width: w, Height: h}
	if inline, ok := attr["style"]; ok {
		if l, ok := css.ParseInlineStyle(inline).GetLength("width"); ok {
			node.MaxWidth = &l
		}
	}
	if node.MaxWidth == nil {
		if l, ok := css.ParseLength(attr["width"]); ok {
			node.MaxWidth = &l
		}
	}
	if err := e.flush(); err != nil {
		return err
	}
	return e.attach(node)
}

// drawImage draws a top-level image scaled to the smallest of its width
// hint, its intrinsic width and the frame width.
func (e *Engine) drawImage(n *layout.ImageNode) error {
	if n.Width <= 0 || n.Height <= 0 {
		return nil
	}
	e.applyMargin()
	w := math.Min(n.Width, e.frame.Width)
	if n.MaxWidth != nil {
		w = math.Min(w, n.MaxWidth.Resolve(e.frame.Width))
	}
	if err := e.frame.Image(n.Image, w); err != nil {
		if !errors.Is(err, render.ErrCannotFit) {
			return fmt.Errorf("drawing image: %w", err)
		}
		tracer().Infof("image of width %.1fpt does not fit, using placeholder", w)
		if err := e.placeholder(e.res.ImagePlaceholder()); err != nil {
			return err
		}
	} else {
		e.document = append(e.document, n)
	}
	e.put(e.res.Text().MarginBottom)
	return nil
}
