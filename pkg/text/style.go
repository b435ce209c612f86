package text

import (
	"strings"

	"docmark/pkg/css"
)

// Style is a fully resolved text style. Sizes are in points.
type Style struct {
	Font    string
	Size    float64
	Bold    bool
	Italic  bool
	Leading float64
	Color   css.Color
	Align   css.TextAlign
}

// WithEmphasis returns a copy of s with bold and italic added.
func (s Style) WithEmphasis(bold, italic bool) Style {
	s.Bold = s.Bold || bold
	s.Italic = s.Italic || italic
	return s
}

// FontStyle returns the style keyword of s ("normal", "bold", "italic", "bold_italic").
func (s Style) FontStyle() string {
	switch {
	case s.Bold && s.Italic:
		return "bold_italic"
	case s.Bold:
		return "bold"
	case s.Italic:
		return "italic"
	}
	return "normal"
}

// ParseFontStyle maps a style keyword to bold/italic flags.
// Unknown keywords are treated as normal.
func ParseFontStyle(style string) (bold, italic bool) {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "bold":
		return true, false
	case "italic", "oblique":
		return false, true
	case "bold_italic", "bolditalic", "bold-italic":
		return true, true
	}
	return false, false
}
