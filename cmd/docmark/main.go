package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"docmark/pkg/engine"
	"docmark/pkg/html"
	"docmark/pkg/images"
	"docmark/pkg/layout"
	"docmark/pkg/options"
	"docmark/pkg/render"
	"docmark/pkg/resource"
	stdnet "docmark/std/net"
)

var traceKeys = []string{"docmark.engine", "docmark.layout", "docmark.images", "docmark.render"}

type config struct {
	width    float64
	scale    float64
	options  string
	markdown bool
}

func main() {
	output := flag.String("o", "output.png", "output PNG file path")
	width := flag.Float64("width", 595, "page width in points")
	scale := flag.Float64("scale", 1, "pixels per point")
	opts := flag.String("config", "", "options file (.yaml, .yml or .toml)")
	markdown := flag.Bool("markdown", false, "read the input as Markdown")
	tree := flag.Bool("tree", false, "print the document structure")
	trace := flag.Bool("trace", false, "trace at debug level")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: docmark [flags] <file or url>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	if *trace {
		for _, key := range traceKeys {
			tracing.Select(key).SetTraceLevel(tracing.LevelDebug)
		}
	}
	input := flag.Arg(0)
	cfg := config{
		width:    *width,
		scale:    *scale,
		options:  *opts,
		markdown: *markdown || isMarkdown(input),
	}

	canvas, r, err := renderDocument(context.Background(), input, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *tree {
		fmt.Println(layout.Dump(input, r.Engine().Document()))
	}
	if err := canvas.SavePNG(*output); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving PNG: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Saved to %s\n", *output)
}

func isMarkdown(input string) bool {
	ext := strings.ToLower(filepath.Ext(input))
	return ext == ".md" || ext == ".markdown"
}

// renderDocument reads input from a file or URL and renders it onto a page.
// Images are resolved relative to the input.
func renderDocument(ctx context.Context, input string, cfg config) (*render.Canvas, *engine.Renderer, error) {
	var user options.Options
	if cfg.options != "" {
		var err error
		if user, err = options.Load(cfg.options); err != nil {
			return nil, nil, err
		}
	}

	var body []byte
	var err error
	base := input
	if stdnet.IsNetworkURL(input) {
		body, _, err = stdnet.Fetch(ctx, input)
	} else {
		body, err = os.ReadFile(input)
		base = filepath.Dir(input)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", input, err)
	}

	var events []html.Event
	if cfg.markdown {
		events, err = html.FromMarkdown(body)
	} else {
		events, err = html.Tokenize(bytes.NewReader(body))
	}
	if err != nil {
		return nil, nil, err
	}

	loader := images.NewImageCache(resource.NewFetcher(base))
	r := engine.NewRenderer(user, loader, nil)
	if cfg.width > 0 {
		r.Width = cfg.width
	}
	if cfg.scale > 0 {
		r.Scale = cfg.scale
	}
	canvas, err := r.Render(ctx, events)
	if err != nil {
		return nil, nil, fmt.Errorf("rendering %s: %w", input, err)
	}
	return canvas, r, nil
}
