package options

import (
	"docmark/pkg/css"
	"docmark/pkg/text"
)

// Defaults is the bottom configuration layer. Heading levels have no
// layer of their own: they scale the text size, and unless margin_top or
// margin_bottom is configured they keep half their size above and a
// quarter below. Set both to 0 for headings flush with the text.
func Defaults() Options {
	return Options{
		Text: Text{
			Size:         Float(12),
			Font:         String("Helvetica"),
			Style:        String("normal"),
			Leading:      Float(0),
			InlineFormat: Bool(true),
			Color:        String("000000"),
			Align:        String("left"),
		},
		List: List{
			VerticalMargin: Float(5),
			Bullet: Bullet{
				Char:    String("•"),
				Margin:  Float(10),
				Padding: Float(1),
			},
			Content:     Content{Margin: Float(10)},
			Placeholder: Placeholder{TooLarge: String("[list content too large]")},
		},
		Table: Table{
			Cell: Cell{
				Padding:     Float(5),
				BorderWidth: Float(1),
				BorderColor: String("000000"),
			},
			Header: Cell{
				FontStyle:       String("bold"),
				BackgroundColor: String("DDDDDD"),
			},
			MinColumnWidth: Float(72 / 2.54),
			Placeholder: Placeholder{
				TooLarge:       String("[table content too large]"),
				NestedTooLarge: String("[nested table content too large]"),
			},
		},
		Image: Image{Placeholder: String("[unsupported image]")},
	}
}

// TextOptions are resolved body text options.
type TextOptions struct {
	Style        text.Style
	MarginBottom float64
	InlineFormat bool
}

// HeadingOptions are resolved options of one heading level.
type HeadingOptions struct {
	Style        text.Style
	MarginTop    float64
	MarginBottom float64
}

// ListOptions are resolved list geometry options. BulletWidth is zero
// when the prefix column is sized from the widest prefix.
type ListOptions struct {
	VerticalMargin float64
	Bullet         string
	BulletMargin   float64
	BulletPadding  float64
	BulletWidth    float64
	ContentMargin  float64
	TooLarge       string
}

// CellOptions are resolved options of a table cell.
type CellOptions struct {
	Style       text.Style
	Background  *css.Color
	BorderWidth float64
	BorderColor css.Color
	Padding     float64
}

type TableOptions struct {
	MinColumnWidth float64
	TooLarge       string
	NestedTooLarge string
}

// Resolver resolves layered options into plain values. Resolved values
// are memoized per heading level and cell kind. A Resolver belongs to a
// single document build.
type Resolver struct {
	opts     Options
	metrics  text.Metrics
	text     TextOptions
	headings [7]*HeadingOptions
	cells    map[bool]CellOptions
}

// NewResolver merges user over the defaults. Metrics are needed for
// defaults that depend on the font, like the text bottom margin.
func NewResolver(user Options, m text.Metrics) *Resolver {
	r := &Resolver{
		opts:    Merge(Defaults(), user),
		metrics: m,
		cells:   make(map[bool]CellOptions),
	}
	t := r.opts.Text
	r.text = TextOptions{
		Style:        styleOf(t, text.Style{}),
		InlineFormat: *t.InlineFormat,
	}
	if t.MarginBottom != nil {
		r.text.MarginBottom = *t.MarginBottom
	} else {
		e := m.Extents(r.text.Style)
		r.text.MarginBottom = e.LineGap + e.Descent + r.text.Style.Leading
	}
	return r
}

// Options returns the merged option layers.
func (r *Resolver) Options() Options {
	return r.opts
}

func (r *Resolver) Metrics() text.Metrics {
	return r.metrics
}

func (r *Resolver) Text() TextOptions {
	return r.text
}

// Heading returns the options of heading level 1..6. Heading size is the
// text size scaled by 2.5 - 0.25 × level unless the level sets a size.
func (r *Resolver) Heading(level int) HeadingOptions {
	if level < 1 {
		level = 1
	} else if level > 6 {
		level = 6
	}
	if h := r.headings[level]; h != nil {
		return *h
	}
	base := r.text.Style
	base.Size *= 2.5 - 0.25*float64(level)
	layer := r.opts.HeadingLayer(level)
	h := &HeadingOptions{Style: styleOf(layer.Text, base)}
	h.MarginTop = 0.5 * h.Style.Size
	if layer.MarginTop != nil {
		h.MarginTop = *layer.MarginTop
	}
	h.MarginBottom = 0.25 * h.Style.Size
	if layer.MarginBottom != nil {
		h.MarginBottom = *layer.MarginBottom
	}
	r.headings[level] = h
	return *h
}

func (r *Resolver) List() ListOptions {
	l := r.opts.List
	lo := ListOptions{
		VerticalMargin: *l.VerticalMargin,
		Bullet:         *l.Bullet.Char,
		BulletMargin:   *l.Bullet.Margin,
		BulletPadding:  *l.Bullet.Padding,
		ContentMargin:  *l.Content.Margin,
		TooLarge:       *l.Placeholder.TooLarge,
	}
	if l.Bullet.Width != nil {
		lo.BulletWidth = *l.Bullet.Width
	}
	return lo
}

func (r *Resolver) Table() TableOptions {
	t := r.opts.Table
	return TableOptions{
		MinColumnWidth: *t.MinColumnWidth,
		TooLarge:       *t.Placeholder.TooLarge,
		NestedTooLarge: *t.Placeholder.NestedTooLarge,
	}
}

func (r *Resolver) ImagePlaceholder() string {
	return *r.opts.Image.Placeholder
}

// Cell returns the options of a data or header cell. Inline declarations
// of the cell's style attribute take precedence over the configured ones.
func (r *Resolver) Cell(header bool, inline *css.Style) CellOptions {
	co, ok := r.cells[header]
	if !ok {
		layer := r.opts.Table.Cell
		if header {
			layer = mergeCell(layer, r.opts.Table.Header)
		}
		co = r.resolveCell(layer)
		r.cells[header] = co
	}
	if inline == nil {
		return co
	}
	if c, ok := inline.GetColor("color"); ok {
		co.Style.Color = c
	}
	if c, ok := inline.GetColor("background-color"); ok {
		co.Background = &c
	}
	if size, ok := inline.GetFontSize(); ok {
		co.Style.Size = size
	}
	if a, ok := inline.GetTextAlign(); ok {
		co.Style.Align = a
	}
	return co
}

func (r *Resolver) resolveCell(c Cell) CellOptions {
	st := r.text.Style
	if c.Font != nil {
		st.Font = *c.Font
	}
	if c.Size != nil {
		st.Size = *c.Size
	}
	style := c.Style
	if c.FontStyle != nil {
		style = c.FontStyle
	}
	if style != nil {
		st.Bold, st.Italic = text.ParseFontStyle(*style)
	}
	if c.TextColor != nil {
		if col, ok := css.ParseColor(*c.TextColor); ok {
			st.Color = col
		}
	}
	if c.Align != nil {
		st.Align = css.ParseTextAlign(*c.Align)
	}
	co := CellOptions{
		Style:       st,
		BorderWidth: *c.BorderWidth,
		Padding:     *c.Padding,
	}
	if c.BorderColor != nil {
		co.BorderColor, _ = css.ParseColor(*c.BorderColor)
	}
	if c.BackgroundColor != nil {
		if col, ok := css.ParseColor(*c.BackgroundColor); ok {
			co.Background = &col
		}
	}
	return co
}

// styleOf applies the values set in t to base.
func styleOf(t Text, base text.Style) text.Style {
	st := base
	if t.Font != nil {
		st.Font = *t.Font
	}
	if t.Size != nil {
		st.Size = *t.Size
	}
	if t.Style != nil {
		st.Bold, st.Italic = text.ParseFontStyle(*t.Style)
	}
	if t.Leading != nil {
		st.Leading = *t.Leading
	}
	if t.Color != nil {
		if col, ok := css.ParseColor(*t.Color); ok {
			st.Color = col
		}
	}
	if t.Align != nil {
		st.Align = css.ParseTextAlign(*t.Align)
	}
	return st
}
