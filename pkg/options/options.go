// Package options holds the layered document configuration.
//
// Options are written by users (or loaded from YAML/TOML files) as sparse
// layers where every value is optional. A Resolver merges the layers
// (global defaults < per-kind overrides < per-instance inline overrides)
// into plain values for the engine.
package options

// Text configures body text. It is also the base of every heading.
type Text struct {
	Size         *float64 `yaml:"size" toml:"size"`
	Font         *string  `yaml:"font" toml:"font"`
	Style        *string  `yaml:"style" toml:"style"`
	Leading      *float64 `yaml:"leading" toml:"leading"`
	MarginBottom *float64 `yaml:"margin_bottom" toml:"margin_bottom"`
	InlineFormat *bool    `yaml:"inline_format" toml:"inline_format"`
	Color        *string  `yaml:"color" toml:"color"`
	Align        *string  `yaml:"align" toml:"align"`
}

// Heading overrides text options for one heading level.
type Heading struct {
	Text      `yaml:",inline"`
	MarginTop *float64 `yaml:"margin_top" toml:"margin_top"`
}

type Bullet struct {
	Char    *string  `yaml:"char" toml:"char"`
	Margin  *float64 `yaml:"margin" toml:"margin"`
	Padding *float64 `yaml:"padding" toml:"padding"`
	Width   *float64 `yaml:"width" toml:"width"`
}

type Content struct {
	Margin *float64 `yaml:"margin" toml:"margin"`
}

type Placeholder struct {
	TooLarge       *string `yaml:"too_large" toml:"too_large"`
	NestedTooLarge *string `yaml:"nested_too_large" toml:"nested_too_large"`
}

type List struct {
	VerticalMargin *float64    `yaml:"vertical_margin" toml:"vertical_margin"`
	Bullet         Bullet      `yaml:"bullet" toml:"bullet"`
	Content        Content     `yaml:"content" toml:"content"`
	Placeholder    Placeholder `yaml:"placeholder" toml:"placeholder"`
}

// Cell configures table cells. Header cells use the same keys; header
// values fall back to the cell values.
type Cell struct {
	Font            *string  `yaml:"font" toml:"font"`
	Size            *float64 `yaml:"size" toml:"size"`
	Style           *string  `yaml:"style" toml:"style"`
	FontStyle       *string  `yaml:"font_style" toml:"font_style"`
	TextColor       *string  `yaml:"text_color" toml:"text_color"`
	BackgroundColor *string  `yaml:"background_color" toml:"background_color"`
	BorderWidth     *float64 `yaml:"border_width" toml:"border_width"`
	BorderColor     *string  `yaml:"border_color" toml:"border_color"`
	Padding         *float64 `yaml:"padding" toml:"padding"`
	Align           *string  `yaml:"align" toml:"align"`
}

type Table struct {
	Cell           Cell        `yaml:"cell" toml:"cell"`
	Header         Cell        `yaml:"header" toml:"header"`
	MinColumnWidth *float64    `yaml:"min_column_width" toml:"min_column_width"`
	Placeholder    Placeholder `yaml:"placeholder" toml:"placeholder"`
}

type Image struct {
	Placeholder *string `yaml:"placeholder" toml:"placeholder"`
}

// Options is one configuration layer.
type Options struct {
	Text     Text    `yaml:"text" toml:"text"`
	Heading1 Heading `yaml:"heading1" toml:"heading1"`
	Heading2 Heading `yaml:"heading2" toml:"heading2"`
	Heading3 Heading `yaml:"heading3" toml:"heading3"`
	Heading4 Heading `yaml:"heading4" toml:"heading4"`
	Heading5 Heading `yaml:"heading5" toml:"heading5"`
	Heading6 Heading `yaml:"heading6" toml:"heading6"`
	List     List    `yaml:"list" toml:"list"`
	Table    Table   `yaml:"table" toml:"table"`
	Image    Image   `yaml:"image" toml:"image"`
}

// HeadingLayer returns the heading overrides for level 1..6.
func (o *Options) HeadingLayer(level int) *Heading {
	switch level {
	case 1:
		return &o.Heading1
	case 2:
		return &o.Heading2
	case 3:
		return &o.Heading3
	case 4:
		return &o.Heading4
	case 5:
		return &o.Heading5
	case 6:
		return &o.Heading6
	}
	return nil
}

// Merge returns base with every value set in over replacing the one in base.
func Merge(base, over Options) Options {
	out := Options{
		Text:  mergeText(base.Text, over.Text),
		List:  mergeList(base.List, over.List),
		Table: mergeTable(base.Table, over.Table),
		Image: Image{Placeholder: pick(base.Image.Placeholder, over.Image.Placeholder)},
	}
	for level := 1; level <= 6; level++ {
		b, o := base.HeadingLayer(level), over.HeadingLayer(level)
		*out.HeadingLayer(level) = Heading{
			Text:      mergeText(b.Text, o.Text),
			MarginTop: pick(b.MarginTop, o.MarginTop),
		}
	}
	return out
}

func pick[T any](base, over *T) *T {
	if over != nil {
		return over
	}
	return base
}

func mergeText(b, o Text) Text {
	return Text{
		Size:         pick(b.Size, o.Size),
		Font:         pick(b.Font, o.Font),
		Style:        pick(b.Style, o.Style),
		Leading:      pick(b.Leading, o.Leading),
		MarginBottom: pick(b.MarginBottom, o.MarginBottom),
		InlineFormat: pick(b.InlineFormat, o.InlineFormat),
		Color:        pick(b.Color, o.Color),
		Align:        pick(b.Align, o.Align),
	}
}

func mergeList(b, o List) List {
	return List{
		VerticalMargin: pick(b.VerticalMargin, o.VerticalMargin),
		Bullet: Bullet{
			Char:    pick(b.Bullet.Char, o.Bullet.Char),
			Margin:  pick(b.Bullet.Margin, o.Bullet.Margin),
			Padding: pick(b.Bullet.Padding, o.Bullet.Padding),
			Width:   pick(b.Bullet.Width, o.Bullet.Width),
		},
		Content:     Content{Margin: pick(b.Content.Margin, o.Content.Margin)},
		Placeholder: mergePlaceholder(b.Placeholder, o.Placeholder),
	}
}

func mergeTable(b, o Table) Table {
	return Table{
		Cell:           mergeCell(b.Cell, o.Cell),
		Header:         mergeCell(b.Header, o.Header),
		MinColumnWidth: pick(b.MinColumnWidth, o.MinColumnWidth),
		Placeholder:    mergePlaceholder(b.Placeholder, o.Placeholder),
	}
}

func mergeCell(b, o Cell) Cell {
	return Cell{
		Font:            pick(b.Font, o.Font),
		Size:            pick(b.Size, o.Size),
		Style:           pick(b.Style, o.Style),
		FontStyle:       pick(b.FontStyle, o.FontStyle),
		TextColor:       pick(b.TextColor, o.TextColor),
		BackgroundColor: pick(b.BackgroundColor, o.BackgroundColor),
		BorderWidth:     pick(b.BorderWidth, o.BorderWidth),
		BorderColor:     pick(b.BorderColor, o.BorderColor),
		Padding:         pick(b.Padding, o.Padding),
		Align:           pick(b.Align, o.Align),
	}
}

func mergePlaceholder(b, o Placeholder) Placeholder {
	return Placeholder{
		TooLarge:       pick(b.TooLarge, o.TooLarge),
		NestedTooLarge: pick(b.NestedTooLarge, o.NestedTooLarge),
	}
}

// Float returns a pointer to v, for building option layers in code.
func Float(v float64) *float64 { return &v }

// String returns a pointer to s.
func String(s string) *string { return &s }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }
