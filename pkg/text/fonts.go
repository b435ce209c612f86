package text

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// FontConfig holds the font data of one family, one entry per style.
// Entries are raw TrueType bytes.
type FontConfig struct {
	Regular    []byte
	Bold       []byte
	Italic     []byte
	BoldItalic []byte
}

// data returns the font bytes for the given style combination, falling
// back to the nearest available style.
func (fc FontConfig) data(bold, italic bool) []byte {
	if bold && italic && fc.BoldItalic != nil {
		return fc.BoldItalic
	}
	if bold && fc.Bold != nil {
		return fc.Bold
	}
	if italic && fc.Italic != nil {
		return fc.Italic
	}
	return fc.Regular
}

// LoadFontConfig reads a family from TrueType files. Empty paths are skipped.
func LoadFontConfig(regular, bold, italic, boldItalic string) (FontConfig, error) {
	var fc FontConfig
	for _, f := range []struct {
		path string
		dst  *[]byte
	}{{regular, &fc.Regular}, {bold, &fc.Bold}, {italic, &fc.Italic}, {boldItalic, &fc.BoldItalic}} {
		if f.path == "" {
			continue
		}
		data, err := os.ReadFile(f.path)
		if err != nil {
			return FontConfig{}, fmt.Errorf("reading font: %w", err)
		}
		*f.dst = data
	}
	if fc.Regular == nil {
		return FontConfig{}, fmt.Errorf("font family needs a regular face")
	}
	return fc, nil
}

// Fonts is a registry of font families addressed by name.
type Fonts struct {
	mu       sync.Mutex
	families map[string]FontConfig
	aliases  map[string]string
	parsed   map[fontKey]*truetype.Font
}

type fontKey struct {
	family       string
	bold, italic bool
}

const (
	FamilySans = "sans"
	FamilyMono = "mono"
)

// DefaultFonts returns a registry holding the bundled Go fonts.
// Common PDF base font names are aliased to them.
func DefaultFonts() *Fonts {
	fonts := &Fonts{
		families: make(map[string]FontConfig),
		aliases:  make(map[string]string),
		parsed:   make(map[fontKey]*truetype.Font),
	}
	fonts.Register(FamilySans, FontConfig{
		Regular:    goregular.TTF,
		Bold:       gobold.TTF,
		Italic:     goitalic.TTF,
		BoldItalic: gobolditalic.TTF,
	})
	fonts.Register(FamilyMono, FontConfig{
		Regular:    gomono.TTF,
		Bold:       gomonobold.TTF,
		Italic:     gomonoitalic.TTF,
		BoldItalic: gomonobolditalic.TTF,
	})
	for _, name := range []string{"helvetica", "arial", "go", "sans-serif", "times", "times-roman"} {
		fonts.aliases[name] = FamilySans
	}
	for _, name := range []string{"courier", "monospace", "go mono"} {
		fonts.aliases[name] = FamilyMono
	}
	return fonts
}

// Register adds or replaces a family.
func (f *Fonts) Register(name string, fc FontConfig) {
	f.mu.Lock()
	defer f.mu.Unlock()
	name = strings.ToLower(name)
	f.families[name] = fc
	for k := range f.parsed {
		if k.family == name {
			delete(f.parsed, k)
		}
	}
}

// Family resolves a font name to a registered family. Unknown names
// resolve to the sans family.
func (f *Fonts) Family(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	name = strings.ToLower(strings.TrimSpace(name))
	if _, ok := f.families[name]; ok {
		return name
	}
	if alias, ok := f.aliases[name]; ok {
		return alias
	}
	return FamilySans
}

// Font returns the parsed font of a family in the given style.
func (f *Fonts) Font(family string, bold, italic bool) (*truetype.Font, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := fontKey{family: family, bold: bold, italic: italic}
	if font, ok := f.parsed[key]; ok {
		return font, nil
	}
	fc, ok := f.families[family]
	if !ok {
		return nil, fmt.Errorf("unknown font family %q", family)
	}
	font, err := truetype.Parse(fc.data(bold, italic))
	if err != nil {
		return nil, fmt.Errorf("parsing font %q: %w", family, err)
	}
	f.parsed[key] = font
	return font, nil
}
