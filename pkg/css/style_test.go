package css

import (
	"math"
	"testing"
)

func TestParseInlineStyle_SingleProperty(t *testing.T) {
	style := ParseInlineStyle("color: red")
	value, ok := style.Get("color")
	if !ok || value != "red" {
		t.Error("expected color='red'")
	}
}

func TestParseInlineStyle_MultipleProperties(t *testing.T) {
	style := ParseInlineStyle("Color: red; width: 100px;; bogus")
	color, _ := style.Get("color")
	width, _ := style.Get("width")
	if color != "red" || width != "100px" {
		t.Error("expected both properties to parse")
	}
	if len(style.Properties) != 2 {
		t.Errorf("expected malformed declarations to be skipped, got %v", style.Properties)
	}
}

func TestGetLength_Units(t *testing.T) {
	tests := map[string]float64{
		"100px":  75,
		"12pt":   12,
		"12":     12,
		"1in":    72,
		"2.54cm": 72,
		"25.4mm": 72,
		"1pc":    12,
	}
	for in, want := range tests {
		l, ok := ParseLength(in)
		if !ok || l.Percent || math.Abs(l.Value-want) > 1e-9 {
			t.Errorf("%s: expected %v pt, got %+v (ok=%v)", in, want, l, ok)
		}
	}
}

func TestGetLength_Percentage(t *testing.T) {
	style := ParseInlineStyle("width: 40%")
	width, ok := style.GetLength("width")
	if !ok || !width.Percent || width.Value != 40 {
		t.Fatalf("expected 40%%, got %+v", width)
	}
	if w := width.Resolve(500); w != 200 {
		t.Errorf("expected 200 of 500, got %v", w)
	}
}

func TestGetLength_Invalid(t *testing.T) {
	for _, in := range []string{"", "wide", "%", "cm"} {
		if _, ok := ParseLength(in); ok {
			t.Errorf("%q: expected parse failure", in)
		}
	}
	var style *Style
	if _, ok := style.GetLength("width"); ok {
		t.Error("expected nil style to have no width")
	}
}

func TestParseColor_BasicColors(t *testing.T) {
	tests := map[string]Color{
		"red":     {255, 0, 0},
		"blue":    {0, 0, 255},
		"green":   {0, 128, 0},
		"#f00":    {255, 0, 0},
		"DDDDDD":  {221, 221, 221},
		"#00ff80": {0, 255, 128},
	}
	for name, expected := range tests {
		color, ok := ParseColor(name)
		if !ok || color != expected {
			t.Errorf("color %s: expected %+v, got %+v", name, expected, color)
		}
	}
	if _, ok := ParseColor("#12"); ok {
		t.Error("expected short hex to fail")
	}
}

func TestColor_Hex(t *testing.T) {
	c := Color{R: 0xDD, G: 0x0A, B: 0xFF}
	if c.Hex() != "DD0AFF" {
		t.Errorf("expected DD0AFF, got %s", c.Hex())
	}
}

func TestGetTextAlign(t *testing.T) {
	style := ParseInlineStyle("text-align: Center")
	if a, ok := style.GetTextAlign(); !ok || a != TextAlignCenter {
		t.Errorf("expected center, got %v", a)
	}
	if a, ok := NewStyle().GetTextAlign(); ok || a != TextAlignLeft {
		t.Errorf("expected undeclared left, got %v", a)
	}
}

func TestGetFontSize(t *testing.T) {
	if size, ok := ParseInlineStyle("font-size: 16px").GetFontSize(); !ok || size != 12 {
		t.Errorf("expected 12pt, got %v", size)
	}
	if _, ok := ParseInlineStyle("font-size: 120%").GetFontSize(); ok {
		t.Error("expected relative font size to be ignored")
	}
}
