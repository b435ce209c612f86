package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"docmark/pkg/engine"
	"docmark/pkg/html"
	"docmark/pkg/images"
	"docmark/pkg/options"
	"docmark/pkg/resource"
)

func main() {
	opts := flag.String("config", "", "options file (.yaml, .yml or .toml)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: docview [flags] <file>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	var user options.Options
	if *opts != "" {
		var err error
		if user, err = options.Load(*opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	r := engine.NewRenderer(user, images.NewImageCache(resource.NewFetcher(filepath.Dir(path))), nil)

	a := app.New()
	w := a.NewWindow("docview - " + filepath.Base(path))
	w.Resize(fyne.NewSize(float32(r.Width)+40, 800))

	page := canvas.NewImageFromImage(nil)
	page.FillMode = canvas.ImageFillOriginal
	status := widget.NewLabel("")

	v := &viewer{r: r, path: path}
	show := func(msg string) {
		fyne.Do(func() { status.SetText(msg) })
	}
	reload := func() {
		status.SetText("Rendering " + path + "...")
		go func() {
			img, blocks, err := v.render(context.Background())
			if err != nil {
				show("Error: " + err.Error())
				return
			}
			fyne.Do(func() {
				page.Image = img
				page.Refresh()
				status.SetText(fmt.Sprintf("%s: %d blocks", path, blocks))
			})
		}()
	}
	reloadButton := widget.NewButton("Reload", reload)

	bottom := container.NewBorder(nil, nil, nil, reloadButton, status)
	w.SetContent(container.NewBorder(nil, bottom, nil, nil, container.NewScroll(page)))
	reload()
	w.ShowAndRun()
}

// viewer renders the file at path. Reloads may overlap; renders are
// serialized since the renderer's engine runs one build at a time.
type viewer struct {
	mu   sync.Mutex
	r    *engine.Renderer
	path string
}

// render reads and renders the file, returning the page and the number of
// top-level blocks.
func (v *viewer) render(ctx context.Context) (image.Image, int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	body, err := os.ReadFile(v.path)
	if err != nil {
		return nil, 0, err
	}
	events, err := html.Tokenize(bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	c, err := v.r.Render(ctx, events)
	if err != nil {
		return nil, 0, fmt.Errorf("rendering %s: %w", v.path, err)
	}
	return c.Image(), len(v.r.Engine().Document()), nil
}
