package visualtest

import (
	"context"
	"fmt"
	"image"
	"strings"

	"docmark/pkg/engine"
	"docmark/pkg/html"
	"docmark/pkg/images"
	"docmark/pkg/options"
	"docmark/pkg/resource"
)

// Render renders markup onto a page of the given width in points. Images
// are resolved relative to base, which may be empty.
func Render(markup string, width float64, opts options.Options, base string) (image.Image, error) {
	events, err := html.Tokenize(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	r := engine.NewRenderer(opts, images.NewImageCache(resource.NewFetcher(base)), nil)
	r.Width = width
	canvas, err := r.Render(context.Background(), events)
	if err != nil {
		return nil, fmt.Errorf("rendering markup: %w", err)
	}
	return canvas.Image(), nil
}

// RenderToFile renders markup and saves the page as PNG, e.g. to create
// a reference image after an intended change in rendering.
func RenderToFile(markup, path string, width float64, opts options.Options, base string) error {
	img, err := Render(markup, width, opts, base)
	if err != nil {
		return err
	}
	return SavePNG(img, path)
}
