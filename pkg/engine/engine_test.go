package engine

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmark/pkg/html"
	"docmark/pkg/images"
	"docmark/pkg/layout"
	"docmark/pkg/options"
	"docmark/pkg/render"
	"docmark/pkg/text"
)

// With FixedMetrics and the default 12pt text every rune is 6pt wide,
// every line 12pt high with an ascent of 9.6pt, and the text bottom
// margin is 2.4pt.

func build(t *testing.T, user options.Options, loader images.Loader, markup string) (*render.Recorder, *render.Frame, *Engine) {
	t.Helper()
	rec := render.NewRecorder(text.FixedMetrics{})
	frame := render.NewFrame(rec, 0, 0, 400)
	e := New(user, loader)
	require.NoError(t, e.Build(context.Background(), html.TokenizeString(markup), frame))
	return rec, frame, e
}

func textOp(t *testing.T, rec *render.Recorder, s string) render.Op {
	t.Helper()
	for _, op := range rec.TextOps() {
		if op.Fragment.Text == s {
			return op
		}
	}
	t.Fatalf("no text %q drawn, have %v", s, rec.Texts())
	return render.Op{}
}

func count(texts []string, s string) int {
	n := 0
	for _, t := range texts {
		if t == s {
			n++
		}
	}
	return n
}

func TestBuild_UnorderedList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "docmark.engine")
	defer teardown()
	//
	rec, frame, _ := build(t, options.Options{}, nil,
		"hello<ul><li>first</li><li>second</li><li>third</li></ul>world")
	assert.Equal(t, []string{"hello", "•", "first", "•", "second", "•", "third", "world"}, rec.Texts())
	assert.InDelta(t, 28, textOp(t, rec, "third").X, 1e-9)
	// the list starts after its vertical margin and is followed by the
	// vertical margin plus the text bottom margin
	assert.InDelta(t, 12+5+9.6, textOp(t, rec, "first").Y, 1e-9)
	world := textOp(t, rec, "world")
	assert.InDelta(t, 0, world.X, 1e-9)
	assert.InDelta(t, 12+5+36+7.4+9.6, world.Y, 1e-9)
	assert.InDelta(t, 12+5+36+7.4+12, frame.Y, 1e-9)
}

func TestBuild_ConfiguredBullet(t *testing.T) {
	user := options.Options{}
	user.List.Bullet.Char = options.String("*")
	rec, _, _ := build(t, user, nil, "<ul><li>a</li><li>b</li><li>c</li><li>d</li></ul>")
	assert.Equal(t, 4, count(rec.Texts(), "*"))
	assert.Zero(t, count(rec.Texts(), "•"))
}

func TestBuild_OrderedListsRestart(t *testing.T) {
	rec, _, _ := build(t, options.Options{}, nil,
		"<ol><li>a</li><li>b<ol><li>c</li><li>d</li></ol></li></ol><ol><li>e</li></ol>")
	assert.Equal(t, []string{"1.", "a", "2.", "b", "1.", "c", "2.", "d", "1.", "e"}, rec.Texts())
}

func TestBuild_ListDirectlyInList(t *testing.T) {
	rec, _, _ := build(t, options.Options{}, nil, "<ul><ul><li>Bla</li></ul></ul>")
	assert.ElementsMatch(t, []string{"•", "•", "Bla"}, rec.Texts())
}

func TestBuild_SublistBetweenItems(t *testing.T) {
	rec, _, _ := build(t, options.Options{}, nil,
		"<ul><li>first</li><ol><li>sub</li></ol><li>second</li></ul>")
	// the sublist belongs to the preceding item
	assert.Equal(t, []string{"•", "first", "1.", "sub", "•", "second"}, rec.Texts())
	// outer indent 28, inner indent 10 + "1." 12 + 2 + 10
	assert.InDelta(t, 62, textOp(t, rec, "sub").X, 1e-9)
}

func TestBuild_UnclosedItems(t *testing.T) {
	rec, _, _ := build(t, options.Options{}, nil, "<ul><li>one<li>two")
	assert.Equal(t, []string{"•", "one", "•", "two"}, rec.Texts())
}

func TestBuild_ItemOutsideList(t *testing.T) {
	rec, _, _ := build(t, options.Options{}, nil, "<li>Hello</li>rest")
	assert.Equal(t, []string{"Hellorest"}, rec.Texts())
}

func TestBuild_EmptyStructuresDrawNothing(t *testing.T) {
	for _, markup := range []string{
		"<table></table>",
		"<ul></ul>",
		"<table><tr></tr><tr></tr></table>",
		"<ol><li> </li><li></li></ol>",
		"<p>  </p><div>\n</div>",
	} {
		rec, frame, _ := build(t, options.Options{}, nil, markup)
		assert.Empty(t, rec.Ops, markup)
		assert.Zero(t, frame.Y, markup)
	}
}

func TestBuild_WhitespaceCellDrawsBorders(t *testing.T) {
	rec, frame, _ := build(t, options.Options{}, nil, "<table><tr><td>  \n </td></tr></table>")
	assert.Empty(t, rec.Texts())
	assert.Equal(t, 1, rec.Count(render.OpRect))
	assert.InDelta(t, 10, frame.Y, 1e-9)
}

func TestBuild_IsRepeatable(t *testing.T) {
	markup := `<h2>Report</h2><p>Some <b>bold</b> text</p>
		<table><tr><th>a</th><th style="width: 30%">b</th></tr>
		<tr><td><ul><li>x</li><li>y<table><tr><td>deep</td></tr></table></li></ul></td><td>z</td></tr></table>
		<ol><li>one</li><li>two</li></ol><hr>end`
	events := html.TokenizeString(markup)
	e := New(options.Options{}, nil)
	var runs [2]*render.Recorder
	for i := range runs {
		runs[i] = render.NewRecorder(text.FixedMetrics{})
		require.NoError(t, e.Build(context.Background(), events, render.NewFrame(runs[i], 0, 0, 400)))
	}
	require.NotEmpty(t, runs[0].Ops)
	assert.Equal(t, runs[0].Ops, runs[1].Ops)
}

func TestBuild_StateIsResetBetweenBuilds(t *testing.T) {
	e := New(options.Options{}, nil)
	first := render.NewRecorder(text.FixedMetrics{})
	require.NoError(t, e.Build(context.Background(), html.TokenizeString("<ul><li><b>x"), render.NewFrame(first, 0, 0, 400)))
	second := render.NewRecorder(text.FixedMetrics{})
	require.NoError(t, e.Build(context.Background(), html.TokenizeString("y"), render.NewFrame(second, 0, 0, 400)))
	require.Equal(t, []string{"y"}, second.Texts())
	op := second.TextOps()[0]
	assert.False(t, op.Fragment.Style.Bold)
	assert.InDelta(t, 0, op.X, 1e-9)
}

func TestBuild_ImpossibleListMargins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "docmark.engine")
	defer teardown()
	//
	user := options.Options{}
	user.Text.Size = options.Float(40)
	user.List.Bullet.Margin = options.Float(400)
	user.List.Content.Margin = options.Float(500)
	rec, _, _ := build(t, user, nil, "<ul><li>first waytolargeitemwithsolongstrings</li><li>second</li></ul>")
	assert.Equal(t, "[list content too large]", strings.Join(rec.Texts(), " "))
	assert.Zero(t, count(rec.Texts(), "•"))
	assert.Zero(t, rec.Count(render.OpRect))
}

func TestBuild_ImpossibleTablePadding(t *testing.T) {
	user := options.Options{}
	user.Table.Cell.Padding = options.Float(300)
	rec, _, _ := build(t, user, nil, "<table><tr><td>a</td><td>b</td></tr></table>after")
	assert.Equal(t, []string{"[table content too large]", "after"}, rec.Texts())
	assert.Zero(t, rec.Count(render.OpRect))
	assert.Zero(t, rec.Count(render.OpFill))
}

func TestBuild_NestedTablePlaceholderStaysInCell(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "docmark.engine")
	defer teardown()
	//
	// a 375pt font cannot fit a single rune into the inner cell
	rec, _, e := build(t, options.Options{}, nil, `<table><tr>
		<td style="width: 50%"><table><tr><td style="font-size: 500px">x</td></tr></table></td>
		<td style="width: 50%">other</td></tr></table>`)
	texts := strings.Join(rec.Texts(), " ")
	assert.Contains(t, texts, "[nested table content too large]")
	assert.Contains(t, texts, "other")
	assert.NotContains(t, rec.Texts(), "x")
	assert.Equal(t, 2, rec.Count(render.OpRect))
	require.Len(t, e.Document(), 1)
	assert.IsType(t, &layout.TableNode{}, e.Document()[0])
}

func TestBuild_NestedListPlaceholderStaysInCell(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "docmark.engine")
	defer teardown()
	//
	// a 268pt list indent leaves no room in a 190pt cell
	user := options.Options{}
	user.List.Bullet.Margin = options.Float(250)
	rec, _, _ := build(t, user, nil, `<table><tr>
		<td style="width: 50%"><ul><li>x</li></ul></td>
		<td style="width: 50%">other</td></tr></table>after`)
	assert.Equal(t, []string{"[list content too large]", "other", "after"}, rec.Texts())
	assert.Equal(t, 2, rec.Count(render.OpRect))
}

func TestBuild_NestedListPlaceholderStaysInItem(t *testing.T) {
	// the outer list keeps 182pt for content, the inner list needs a
	// 218pt indent
	user := options.Options{}
	user.List.Bullet.Margin = options.Float(200)
	rec, _, _ := build(t, user, nil,
		"<ul><li>a<ul><li>b</li></ul></li><li>c</li></ul>after")
	assert.Equal(t, []string{"•", "a", "[list content too large]", "•", "c", "after"}, rec.Texts())
	assert.Equal(t, textOp(t, rec, "a").X, textOp(t, rec, "[list content too large]").X)
}

func TestBuild_TableStructure(t *testing.T) {
	rec, _, e := build(t, options.Options{}, nil,
		`<table><tr><td>a<ul><li>b</td></tr><tr><th align="right">h</th><td>c</td></tr></table>after`)
	assert.Equal(t, []string{"a", "•", "b", "h", "c", "after"}, rec.Texts())
	// 2 rows of 2 columns, the first row padded
	assert.Equal(t, 4, rec.Count(render.OpRect))
	assert.Equal(t, 1, rec.Count(render.OpFill))
	h := textOp(t, rec, "h")
	assert.True(t, h.Fragment.Style.Bold)
	assert.Greater(t, h.X, 100.0, "right aligned")
	tree := layout.Dump("document", e.Document())
	assert.Contains(t, tree, "table 2×2")
	assert.Contains(t, tree, "unordered list")
}

func TestBuild_Headings(t *testing.T) {
	rec, frame, _ := build(t, options.Options{}, nil, "<h1>Title</h1><p>body</p>")
	title := textOp(t, rec, "Title")
	assert.InDelta(t, 27, title.Fragment.Style.Size, 1e-9)
	assert.InDelta(t, 13.5+21.6, title.Y, 1e-9)
	body := textOp(t, rec, "body")
	assert.InDelta(t, 12, body.Fragment.Style.Size, 1e-9)
	assert.InDelta(t, 13.5+27+6.75+9.6, body.Y, 1e-9)
	assert.InDelta(t, 13.5+27+6.75+12, frame.Y, 1e-9)
}

func TestBuild_HeadingInCellIsText(t *testing.T) {
	rec, _, _ := build(t, options.Options{}, nil, "<table><tr><td>a<h2>B</h2>c</td></tr></table>")
	assert.Equal(t, []string{"a", "B", "c"}, rec.Texts())
	assert.InDelta(t, 24, textOp(t, rec, "B").Fragment.Style.Size, 1e-9)
	assert.InDelta(t, 12, textOp(t, rec, "c").Fragment.Style.Size, 1e-9)
}

func TestBuild_UnclosedHeadingEndsWithCell(t *testing.T) {
	rec, _, _ := build(t, options.Options{}, nil,
		"<table><tr><td><h2>Title</td><td>x</td></tr></table><p>body</p>")
	assert.Equal(t, []string{"Title", "x", "body"}, rec.Texts())
	assert.InDelta(t, 24, textOp(t, rec, "Title").Fragment.Style.Size, 1e-9)
	assert.InDelta(t, 12, textOp(t, rec, "x").Fragment.Style.Size, 1e-9)
	assert.InDelta(t, 12, textOp(t, rec, "body").Fragment.Style.Size, 1e-9)
}

func TestBuild_UnclosedHeadingEndsWithItem(t *testing.T) {
	rec, _, _ := build(t, options.Options{}, nil, "<ul><li><h3>Sub<li>plain</ul>after")
	assert.InDelta(t, 12*1.75, textOp(t, rec, "Sub").Fragment.Style.Size, 1e-9)
	assert.InDelta(t, 12, textOp(t, rec, "plain").Fragment.Style.Size, 1e-9)
	assert.InDelta(t, 12, textOp(t, rec, "after").Fragment.Style.Size, 1e-9)
}

func TestBuild_HorizontalRule(t *testing.T) {
	rec, _, _ := build(t, options.Options{}, nil, "a<hr>b")
	require.Equal(t, 1, rec.Count(render.OpLine))
	for _, op := range rec.Ops {
		if op.Kind == render.OpLine {
			assert.InDelta(t, 18, op.Y, 1e-9)
			assert.InDelta(t, 400, op.X2, 1e-9)
		}
	}
	assert.InDelta(t, 12+6+7.4+9.6, textOp(t, rec, "b").Y, 1e-9)
}

func TestBuild_RuleInListIsIgnored(t *testing.T) {
	rec, _, _ := build(t, options.Options{}, nil, "<ul><li>a<hr>b</li></ul>")
	assert.Zero(t, rec.Count(render.OpLine))
	assert.Equal(t, []string{"•", "ab"}, rec.Texts())
}

func TestBuild_ParagraphMargins(t *testing.T) {
	rec, frame, _ := build(t, options.Options{}, nil, "<p>one</p><p>two</p>")
	assert.InDelta(t, 12+2.4+9.6, textOp(t, rec, "two").Y, 1e-9)
	// the last margin is never applied
	assert.InDelta(t, 26.4, frame.Y, 1e-9)
}

func TestBuild_ParagraphsInCellBreakLines(t *testing.T) {
	rec, _, _ := build(t, options.Options{}, nil, "<table><tr><td><p>one</p><p>two</p></td></tr></table>")
	ops := rec.TextOps()
	require.Len(t, ops, 2)
	// one blank line between the paragraphs
	assert.InDelta(t, 24, ops[1].Y-ops[0].Y, 1e-9)
}

func TestBuild_InlineFormatting(t *testing.T) {
	rec, _, _ := build(t, options.Options{}, nil, `<p>a <b>bold</b> <i>it</i> <a href="x">link</a><br>next</p>`)
	assert.True(t, textOp(t, rec, "bold").Fragment.Style.Bold)
	assert.True(t, textOp(t, rec, "it").Fragment.Style.Italic)
	assert.Equal(t, "x", textOp(t, rec, "link").Fragment.Link)
	assert.InDelta(t, 12+9.6, textOp(t, rec, "next").Y, 1e-9)

	user := options.Options{}
	user.Text.InlineFormat = options.Bool(false)
	rec, _, _ = build(t, user, nil, "<p>a <b>bold</b></p>")
	assert.Equal(t, []string{"a bold"}, rec.Texts())
}

func TestBuild_WhitespaceCollapses(t *testing.T) {
	rec, _, _ := build(t, options.Options{}, nil, "<p>  a \n\t b  </p>")
	assert.Equal(t, []string{"a b"}, rec.Texts())
}

func pngDataURI(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestBuild_Images(t *testing.T) {
	src := pngDataURI(t, 100, 50)
	loader := images.NewImageCache(nil)

	rec, frame, _ := build(t, options.Options{}, loader, `<img src="`+src+`" style="width: 40pt">`)
	require.Equal(t, 1, rec.Count(render.OpImage))
	assert.InDelta(t, 40, rec.Ops[0].W, 1e-9)
	assert.InDelta(t, 20, rec.Ops[0].H, 1e-9)
	assert.InDelta(t, 20, frame.Y, 1e-9)

	rec, _, _ = build(t, options.Options{}, loader, `<table><tr><td><img src="`+src+`"></td></tr></table>`)
	require.Equal(t, 1, rec.Count(render.OpImage))
	assert.Equal(t, 1, rec.Count(render.OpRect))

	rec, _, _ = build(t, options.Options{}, loader, `<p>a <img src="data:image/png;base64,AAAA"></p>`)
	assert.Equal(t, []string{"a [unsupported image]"}, rec.Texts())

	rec, _, _ = build(t, options.Options{}, nil, `<img src="`+src+`">`)
	assert.Equal(t, []string{"[unsupported image]"}, rec.Texts())
}

func TestBuild_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := render.NewRecorder(text.FixedMetrics{})
	e := New(options.Options{}, images.NewImageCache(nil))
	err := e.Build(ctx, html.TokenizeString(`<img src="missing.png">`), render.NewFrame(rec, 0, 0, 400))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuild_ParagraphTooNarrow(t *testing.T) {
	rec := render.NewRecorder(text.FixedMetrics{})
	e := New(options.Options{}, nil)
	err := e.Build(context.Background(), html.TokenizeString("<p>abc</p>"), render.NewFrame(rec, 0, 0, 4))
	assert.ErrorIs(t, err, render.ErrCannotFit)
}

func TestBuild_Document(t *testing.T) {
	_, _, e := build(t, options.Options{}, nil, "<p>a</p><ul><li>b</li></ul><table><tr><td>c</td></tr></table>")
	doc := e.Document()
	require.Len(t, doc, 3)
	assert.IsType(t, &layout.TextNode{}, doc[0])
	assert.IsType(t, &layout.ListNode{}, doc[1])
	assert.IsType(t, &layout.TableNode{}, doc[2])
}

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer(options.Options{}, nil, nil)
	canvas, err := r.Render(context.Background(), html.TokenizeString("<h1>Hi</h1><p>text</p>"))
	require.NoError(t, err)
	b := canvas.Image().Bounds()
	assert.Equal(t, 595, b.Dx())
	assert.Greater(t, b.Dy(), 72)
	assert.Len(t, r.Engine().Document(), 2)

	r.Margin = 300
	_, err = r.Render(context.Background(), html.TokenizeString("x"))
	assert.Error(t, err)
}
