package css

import (
	"strconv"
	"strings"
)

// Style holds the declarations of a single inline style attribute.
type Style struct {
	Properties map[string]string
}

func NewStyle() *Style {
	return &Style{Properties: make(map[string]string)}
}

func (s *Style) Get(property string) (string, bool) {
	if s == nil {
		return "", false
	}
	val, ok := s.Properties[property]
	return val, ok
}

func (s *Style) Set(property, value string) {
	s.Properties[property] = value
}

// ParseInlineStyle parses the value of a style attribute ("width: 3cm; color: red").
// Malformed declarations are skipped.
func ParseInlineStyle(styleAttr string) *Style {
	style := NewStyle()
	declarations := strings.Split(styleAttr, ";")
	for _, decl := range declarations {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		property := strings.TrimSpace(strings.ToLower(parts[0]))
		value := strings.TrimSpace(parts[1])
		if property == "" || value == "" {
			continue
		}
		style.Set(property, value)
	}
	return style
}

// Length is either an absolute length in points or a percentage of
// some reference width.
type Length struct {
	Value   float64
	Percent bool
}

// Points returns an absolute length of v points.
func Points(v float64) Length {
	return Length{Value: v}
}

// Percentage returns a length relative to a reference width.
func Percentage(p float64) Length {
	return Length{Value: p, Percent: true}
}

// Resolve converts the length to points. Percentages are taken of total.
func (l Length) Resolve(total float64) float64 {
	if l.Percent {
		return l.Value / 100 * total
	}
	return l.Value
}

// unitPoints maps a length unit to its size in PostScript points.
var unitPoints = map[string]float64{
	"pt": 1,
	"px": 0.75,
	"pc": 12,
	"in": 72,
	"cm": 72 / 2.54,
	"mm": 72 / 25.4,
}

// ParseLength parses a length value such as "100px", "3cm", "12" or "40%".
// Unitless numbers are points.
func ParseLength(val string) (Length, bool) {
	val = strings.ToLower(strings.TrimSpace(val))
	if val == "" {
		return Length{}, false
	}
	if strings.HasSuffix(val, "%") {
		num, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(val, "%")), 64)
		if err != nil {
			return Length{}, false
		}
		return Percentage(num), true
	}
	factor := 1.0
	if len(val) > 2 {
		if f, ok := unitPoints[val[len(val)-2:]]; ok {
			factor = f
			val = strings.TrimSpace(val[:len(val)-2])
		}
	}
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return Length{}, false
	}
	return Points(num * factor), true
}

func (s *Style) GetLength(property string) (Length, bool) {
	val, ok := s.Get(property)
	if !ok {
		return Length{}, false
	}
	return ParseLength(val)
}

// GetFontSize returns the font-size in points, if declared as an absolute length.
func (s *Style) GetFontSize() (float64, bool) {
	l, ok := s.GetLength("font-size")
	if !ok || l.Percent {
		return 0, false
	}
	return l.Value, true
}

type Color struct {
	R, G, B uint8
}

// RGB returns the color components scaled to [0, 1].
func (c Color) RGB() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

// Hex returns the color as six hex digits without a leading '#'.
func (c Color) Hex() string {
	const digits = "0123456789ABCDEF"
	b := []byte{
		digits[c.R>>4], digits[c.R&0xf],
		digits[c.G>>4], digits[c.G&0xf],
		digits[c.B>>4], digits[c.B&0xf],
	}
	return string(b)
}

var namedColors = map[string]Color{
	"red":     {255, 0, 0},
	"green":   {0, 128, 0},
	"blue":    {0, 0, 255},
	"yellow":  {255, 255, 0},
	"cyan":    {0, 255, 255},
	"magenta": {255, 0, 255},
	"white":   {255, 255, 255},
	"black":   {0, 0, 0},
	"gray":    {128, 128, 128},
	"grey":    {128, 128, 128},
	"orange":  {255, 165, 0},
	"purple":  {128, 0, 128},
	"navy":    {0, 0, 128},
	"teal":    {0, 128, 128},
	"silver":  {192, 192, 192},
}

// ParseColor parses a named color or a hex color. Hex colors may be written
// with or without '#' and in the short three digit form ("#f00", "FF0000").
func ParseColor(colorStr string) (Color, bool) {
	colorStr = strings.ToLower(strings.TrimSpace(colorStr))
	if color, ok := namedColors[colorStr]; ok {
		return color, true
	}
	hex := strings.TrimPrefix(colorStr, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
}

// GetColor returns a color-valued property.
func (s *Style) GetColor(property string) (Color, bool) {
	if colorStr, ok := s.Get(property); ok {
		return ParseColor(colorStr)
	}
	return Color{}, false
}

// TextAlign represents the text-align property value
type TextAlign string

const (
	TextAlignLeft   TextAlign = "left"
	TextAlignCenter TextAlign = "center"
	TextAlignRight  TextAlign = "right"
)

// ParseTextAlign maps an alignment keyword, defaulting to left.
func ParseTextAlign(align string) TextAlign {
	switch strings.ToLower(strings.TrimSpace(align)) {
	case "center":
		return TextAlignCenter
	case "right":
		return TextAlignRight
	}
	return TextAlignLeft
}

// GetTextAlign returns the text-align value and whether it was declared.
func (s *Style) GetTextAlign() (TextAlign, bool) {
	if align, ok := s.Get("text-align"); ok {
		return ParseTextAlign(align), true
	}
	return TextAlignLeft, false
}
