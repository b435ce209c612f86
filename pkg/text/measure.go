package text

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Extents are the vertical metrics of a font at a given size, in points.
type Extents struct {
	Ascent  float64
	Descent float64
	LineGap float64
}

// LineHeight is the distance between two baselines without leading.
func (e Extents) LineHeight() float64 {
	return e.Ascent + e.Descent + e.LineGap
}

// Metrics measures text. It is the engine's only view of fonts.
type Metrics interface {
	// Advance returns the width of s set in style st.
	Advance(s string, st Style) float64
	// Extents returns the vertical metrics of st.
	Extents(st Style) Extents
}

// FixedMetrics is a font-less Metrics where every rune advances by
// Ratio × size. Ascent and descent are 0.8 and 0.2 of the size.
// It makes geometry predictable in tests.
type FixedMetrics struct {
	Ratio float64
}

func (m FixedMetrics) Advance(s string, st Style) float64 {
	ratio := m.Ratio
	if ratio == 0 {
		ratio = 0.5
	}
	return float64(utf8.RuneCountInString(s)) * st.Size * ratio
}

func (m FixedMetrics) Extents(st Style) Extents {
	return Extents{Ascent: 0.8 * st.Size, Descent: 0.2 * st.Size}
}

// FaceMetrics measures text with real font faces from a Fonts registry.
type FaceMetrics struct {
	fonts *Fonts
	mu    sync.Mutex
	faces map[faceKey]font.Face
}

type faceKey struct {
	family string
	bold   bool
	italic bool
	size   float64
}

// NewFaceMetrics creates a Metrics backed by fonts. If fonts is nil the
// bundled Go fonts are used.
func NewFaceMetrics(fonts *Fonts) *FaceMetrics {
	if fonts == nil {
		fonts = DefaultFonts()
	}
	return &FaceMetrics{fonts: fonts, faces: make(map[faceKey]font.Face)}
}

// Face returns the cached font face for st.
func (m *FaceMetrics) Face(st Style) (font.Face, error) {
	key := faceKey{family: m.fonts.Family(st.Font), bold: st.Bold, italic: st.Italic, size: st.Size}
	m.mu.Lock()
	defer m.mu.Unlock()
	if face, ok := m.faces[key]; ok {
		return face, nil
	}
	f, err := m.fonts.Font(key.family, st.Bold, st.Italic)
	if err != nil {
		return nil, err
	}
	if st.Size <= 0 {
		return nil, fmt.Errorf("invalid font size %v", st.Size)
	}
	// 72 DPI makes one pixel one point.
	face := truetype.NewFace(f, &truetype.Options{Size: st.Size, DPI: 72, Hinting: font.HintingNone})
	m.faces[key] = face
	return face, nil
}

func (m *FaceMetrics) Advance(s string, st Style) float64 {
	face, err := m.Face(st)
	if err != nil {
		// fall back to a rough estimate, as for missing font files
		return FixedMetrics{Ratio: 0.6}.Advance(s, st)
	}
	return toFloat(font.MeasureString(face, s))
}

func (m *FaceMetrics) Extents(st Style) Extents {
	face, err := m.Face(st)
	if err != nil {
		return FixedMetrics{}.Extents(st)
	}
	fm := face.Metrics()
	e := Extents{Ascent: toFloat(fm.Ascent), Descent: toFloat(fm.Descent)}
	if gap := toFloat(fm.Height) - e.Ascent - e.Descent; gap > 0 {
		e.LineGap = gap
	}
	return e
}

func toFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
