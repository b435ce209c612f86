package images

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"docmark/pkg/resource"
)

// tracer traces with key 'docmark.images'.
func tracer() tracing.Trace {
	return tracing.Select("docmark.images")
}

// Loader decodes image sources (data URIs, paths, URLs).
type Loader interface {
	Load(ctx context.Context, src string) (image.Image, error)
}

// ImageCache is a Loader caching decoded images by source. It is safe for
// concurrent use and may be shared between builds.
type ImageCache struct {
	fetcher resource.Fetcher
	cache   map[string]image.Image
	mu      sync.RWMutex
}

// NewImageCache creates a cache loading through fetcher.
// A nil fetcher can only decode data URIs.
func NewImageCache(fetcher resource.Fetcher) *ImageCache {
	return &ImageCache{fetcher: fetcher, cache: make(map[string]image.Image)}
}

// Load returns the decoded image for src.
func (c *ImageCache) Load(ctx context.Context, src string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.cache[src]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	var data []byte
	var contentType string
	var err error
	switch {
	case resource.IsDataURI(src):
		data, contentType, err = resource.DecodeDataURI(src)
	case c.fetcher != nil:
		data, contentType, err = c.fetcher.Fetch(ctx, src)
	default:
		err = fmt.Errorf("no fetcher for image %q", src)
	}
	if err != nil {
		return nil, err
	}
	img, err := Decode(data, contentType)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("decoded image %dx%d from %.40s", img.Bounds().Dx(), img.Bounds().Dy(), src)

	c.mu.Lock()
	c.cache[src] = img
	c.mu.Unlock()
	return img, nil
}

// Decode decodes raster images in any registered format and rasterizes SVG.
func Decode(data []byte, contentType string) (image.Image, error) {
	if isSVG(data, contentType) {
		return decodeSVG(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

func isSVG(data []byte, contentType string) bool {
	if strings.Contains(strings.ToLower(contentType), "svg") {
		return true
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(head, []byte("<svg"))
}

// decodeSVG rasterizes an SVG document at its view box size.
func decodeSVG(data []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parsing svg: %w", err)
	}
	w, h := int(math.Ceil(icon.ViewBox.W)), int(math.Ceil(icon.ViewBox.H))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("svg has empty view box")
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return rgba, nil
}

// Dimensions returns the intrinsic size of img in points, one pixel
// being one point.
func Dimensions(img image.Image) (width, height float64) {
	bounds := img.Bounds()
	return float64(bounds.Dx()), float64(bounds.Dy())
}
