package visualtest

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Result is the outcome of comparing two rasters.
type Result struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // largest channel difference, 0-255
	Diff            *image.RGBA
}

// Options configure a comparison.
type Options struct {
	// Tolerance is the largest channel difference (0-255) still counted
	// as equal.
	Tolerance int
	// MaxDifferentPercent lets a comparison pass with up to this share of
	// differing pixels.
	MaxDifferentPercent float64
	// WithDiff requests a diff image with differing pixels in red.
	WithDiff bool
}

// DefaultOptions allow small anti-aliasing differences.
func DefaultOptions() Options {
	return Options{Tolerance: 2}
}

// Compare compares two rasters pixel by pixel. Rasters of different
// size never match.
func Compare(actual, expected image.Image, opts Options) (Result, error) {
	ab, eb := actual.Bounds(), expected.Bounds()
	if ab.Size() != eb.Size() {
		return Result{}, fmt.Errorf("raster sizes differ: actual %v, expected %v", ab.Size(), eb.Size())
	}
	res := Result{Match: true, TotalPixels: ab.Dx() * ab.Dy()}
	if opts.WithDiff {
		res.Diff = image.NewRGBA(image.Rect(0, 0, ab.Dx(), ab.Dy()))
	}
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			a := actual.At(ab.Min.X+x, ab.Min.Y+y)
			d := difference(a, expected.At(eb.Min.X+x, eb.Min.Y+y))
			if d > res.MaxDifference {
				res.MaxDifference = d
			}
			if d > opts.Tolerance {
				res.Match = false
				res.DifferentPixels++
				if res.Diff != nil {
					res.Diff.Set(x, y, color.RGBA{R: 255, A: 255})
				}
			} else if res.Diff != nil {
				res.Diff.Set(x, y, color.GrayModel.Convert(a))
			}
		}
	}
	if !res.Match && opts.MaxDifferentPercent > 0 && res.TotalPixels > 0 {
		if float64(res.DifferentPixels)/float64(res.TotalPixels)*100 <= opts.MaxDifferentPercent {
			res.Match = true
		}
	}
	return res, nil
}

// difference returns the largest 8-bit channel difference of two colors.
func difference(a, b color.Color) int {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	d := 0
	for _, pair := range [4][2]uint32{{ar, br}, {ag, bg}, {ab, bb}, {aa, ba}} {
		x, y := int(pair[0]>>8), int(pair[1]>>8)
		if x-y > d {
			d = x - y
		} else if y-x > d {
			d = y - x
		}
	}
	return d
}

// LoadPNG reads a PNG file.
func LoadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
