package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"docmark/pkg/html"
	"docmark/pkg/images"
	"docmark/pkg/layout"
	"docmark/pkg/options"
	"docmark/pkg/render"
	"docmark/pkg/text"
)

// tracer traces with key 'docmark.engine'.
func tracer() tracing.Trace {
	return tracing.Select("docmark.engine")
}

// Engine assembles markup events into paragraphs, headings, lists and
// tables and draws them into a frame. Options and the image loader are
// fixed at creation; everything else belongs to a single build.
//
// An Engine is not safe for concurrent use. Builds may be repeated and
// produce identical drawing for identical input.
type Engine struct {
	user   options.Options
	loader images.Loader

	ctx      context.Context
	res      *options.Resolver
	frame    *render.Frame
	stack    []*container
	runs     runBuffer
	heading  int     // level of the open heading, 0 if none
	hdepth   int     // stack depth at which the heading was opened
	margin   float64 // pending bottom margin
	document []layout.Node
	started  bool
}

// New creates an engine. loader may be nil, in which case every image is
// replaced by the image placeholder.
func New(opts options.Options, loader images.Loader) *Engine {
	return &Engine{user: opts, loader: loader}
}

// Build runs a whole document through the engine, drawing into f.
// A missing DocumentEnd event is implied.
func (e *Engine) Build(ctx context.Context, events []html.Event, f *render.Frame) error {
	e.Begin(ctx, f)
	for _, ev := range events {
		var err error
		switch ev.Kind {
		case html.StartEvent:
			err = e.OnStart(ev.Tag, ev.Attr)
		case html.EndEvent:
			err = e.OnEnd(ev.Tag)
		case html.TextEvent:
			e.OnText(ev.Data)
		case html.DocumentEndEvent:
			err = e.OnDocumentEnd()
		}
		if err != nil {
			return err
		}
		if !e.started {
			return nil
		}
	}
	return e.OnDocumentEnd()
}

// Begin resets all build state and starts a document in frame f.
func (e *Engine) Begin(ctx context.Context, f *render.Frame) {
	e.ctx = ctx
	e.frame = f
	e.res = options.NewResolver(e.user, f.Sink.Metrics())
	e.stack = e.stack[:0]
	e.runs.reset()
	e.heading = 0
	e.hdepth = 0
	e.margin = 0
	e.document = nil
	e.started = true
}

// Document returns the top-level units drawn by the last build, in order.
func (e *Engine) Document() []layout.Node {
	return e.document
}

// OnStart handles a start tag.
func (e *Engine) OnStart(tag string, attr map[string]string) error {
	el := html.Classify(tag)
	switch el.Kind {
	case html.Paragraph, html.Division:
		return e.textElement()
	case html.Heading:
		return e.startHeading(el.Level)
	case html.ListContainer:
		return e.startList(el.Ordered)
	case html.ListItem:
		return e.startItem()
	case html.TableContainer:
		return e.startTable()
	case html.Row:
		return e.startRow()
	case html.Cell:
		return e.startCell(el.Header, attr)
	case html.InlineBold:
		e.runs.bold++
	case html.InlineItalic:
		e.runs.italic++
	case html.InlineUnderline:
		e.runs.underline++
	case html.Link:
		e.runs.links = append(e.runs.links, attr["href"])
	case html.Image:
		return e.image(attr)
	case html.Rule:
		return e.rule()
	case html.LineBreak:
		e.runs.lineBreak()
	default:
		tracer().Debugf("ignoring <%s>", tag)
	}
	return nil
}

// OnText handles character data.
func (e *Engine) OnText(data string) {
	e.runs.text(data)
}

// OnEnd handles an end tag.
func (e *Engine) OnEnd(tag string) error {
	el := html.Classify(tag)
	switch el.Kind {
	case html.Paragraph:
		return e.endParagraph()
	case html.Division:
		return e.textElement()
	case html.Heading:
		return e.endHeading()
	case html.ListContainer:
		return e.closeInnermost(listContainer)
	case html.ListItem:
		return e.closeInnermost(itemContainer)
	case html.TableContainer:
		return e.closeInnermost(tableContainer)
	case html.Row:
		return e.endRow()
	case html.Cell:
		return e.closeInnermost(cellContainer)
	case html.InlineBold:
		e.runs.bold = decrement(e.runs.bold)
	case html.InlineItalic:
		e.runs.italic = decrement(e.runs.italic)
	case html.InlineUnderline:
		e.runs.underline = decrement(e.runs.underline)
	case html.Link:
		if n := len(e.runs.links); n > 0 {
			e.runs.links = e.runs.links[:n-1]
		}
	}
	return nil
}

// OnDocumentEnd closes all open contexts, innermost first, and flushes
// the remaining text as a final paragraph.
func (e *Engine) OnDocumentEnd() error {
	if !e.started {
		return nil
	}
	for len(e.stack) > 0 {
		if err := e.closeTop(); err != nil {
			return err
		}
	}
	if err := e.flush(); err != nil {
		return err
	}
	e.started = false
	return nil
}

func decrement(n int) int {
	if n > 0 {
		return n - 1
	}
	return 0
}

// --- Containers ------------------------------------------------------------

type containerKind int

const (
	tableContainer containerKind = iota
	cellContainer
	listContainer
	itemContainer
)

func (k containerKind) String() string {
	return [...]string{"table", "cell", "list", "item"}[k]
}

// container is an open table, cell, list or list item.
type container struct {
	kind  containerKind
	table *layout.Table
	cell  *layout.Cell
	list  *layout.List
	item  *layout.ListItem
}

func (e *Engine) top() *container {
	if len(e.stack) == 0 {
		return nil
	}
	return e.stack[len(e.stack)-1]
}

func (e *Engine) push(c *container) {
	e.stack = append(e.stack, c)
}

func (e *Engine) pop() *container {
	c := e.top()
	e.stack = e.stack[:len(e.stack)-1]
	return c
}

// innermost returns the stack index of the innermost open container of
// kind k, or -1.
func (e *Engine) innermost(k containerKind) int {
	for i := len(e.stack) - 1; i >= 0; i-- {
		if e.stack[i].kind == k {
			return i
		}
	}
	return -1
}

// closeInnermost closes the innermost container of kind k together with
// everything opened inside it. Without an open container of that kind it
// does nothing.
func (e *Engine) closeInnermost(k containerKind) error {
	i := e.innermost(k)
	if i < 0 {
		tracer().Debugf("no open %s to close", k)
		return nil
	}
	return e.closeDownTo(i)
}

// closeAbove closes every container above stack index i.
func (e *Engine) closeAbove(i int) error {
	for len(e.stack) > i+1 {
		if err := e.closeTop(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) closeDownTo(i int) error {
	if err := e.closeAbove(i); err != nil {
		return err
	}
	return e.closeTop()
}

// closeTop closes the innermost container. A heading opened inside it
// ends with it.
func (e *Engine) closeTop() error {
	err := e.closeContainer()
	if e.heading > 0 && len(e.stack) < e.hdepth {
		e.heading = 0
	}
	return err
}

func (e *Engine) closeContainer() error {
	switch e.top().kind {
	case tableContainer:
		return e.endTable()
	case cellContainer, itemContainer:
		if err := e.flush(); err != nil {
			return err
		}
		e.pop()
		return nil
	case listContainer:
		return e.endList()
	}
	return nil
}

// attach adds a completed node to the innermost open container. At top
// level it is drawn instead.
func (e *Engine) attach(node layout.Node) error {
	c := e.top()
	if c == nil {
		return e.drawTopLevel(node)
	}
	switch c.kind {
	case cellContainer:
		c.cell.Nodes = append(c.cell.Nodes, node)
	case itemContainer:
		c.item.Nodes = append(c.item.Nodes, node)
	case listContainer:
		l := c.list
		if len(l.Items) == 0 {
			l.AddItem()
		}
		item := l.Items[len(l.Items)-1]
		item.Nodes = append(item.Nodes, node)
	case tableContainer:
		cell := lastCell(c.table, e.res.Cell(false, nil))
		cell.Nodes = append(cell.Nodes, node)
	}
	return nil
}

func (e *Engine) drawTopLevel(node layout.Node) error {
	switch n := node.(type) {
	case *layout.TableNode:
		return e.drawTable(n)
	case *layout.ListNode:
		return e.drawList(n)
	case *layout.ImageNode:
		return e.drawImage(n)
	}
	return fmt.Errorf("cannot draw %T at top level", node)
}

// --- Text flow -------------------------------------------------------------

// style returns the style of text flushed at the current position.
func (e *Engine) style() text.Style {
	if e.heading > 0 {
		return e.res.Heading(e.heading).Style
	}
	c := e.top()
	if c == nil {
		return e.res.Text().Style
	}
	switch c.kind {
	case cellContainer:
		return c.cell.Options.Style
	case itemContainer:
		return e.stack[len(e.stack)-2].list.Style
	}
	return e.res.Text().Style
}

// flush moves the buffered run into the innermost cell or list item, or
// draws it as a paragraph at top level. Text buffered directly inside a
// list or table stays buffered until the next flush target.
func (e *Engine) flush() error {
	c := e.top()
	if c == nil {
		return e.paragraph()
	}
	var nodes *[]layout.Node
	switch c.kind {
	case cellContainer:
		nodes = &c.cell.Nodes
	case itemContainer:
		nodes = &c.item.Nodes
	default:
		return nil
	}
	run := e.runs.take(e.res.Text().InlineFormat)
	if run.IsEmpty() {
		return nil
	}
	*nodes = append(*nodes, &layout.TextNode{Run: run, Style: e.style()})
	return nil
}

// paragraph applies the pending margin and draws the buffered run at top
// level.
func (e *Engine) paragraph() error {
	e.applyMargin()
	run := e.runs.take(e.res.Text().InlineFormat)
	if run.IsEmpty() {
		return nil
	}
	return e.drawText(run, e.style())
}

func (e *Engine) drawText(run text.Run, st text.Style) error {
	if err := e.frame.Text(run, st); err != nil {
		if errors.Is(err, render.ErrCannotFit) {
			return fmt.Errorf("paragraph %q does not fit into %.1fpt: %w", abbreviate(run.String()), e.frame.Width, err)
		}
		return fmt.Errorf("drawing paragraph: %w", err)
	}
	e.document = append(e.document, &layout.TextNode{Run: run, Style: st})
	return nil
}

// placeholder draws a placeholder paragraph in the text style.
func (e *Engine) placeholder(s string) error {
	return e.drawText(text.Plain(s), e.res.Text().Style)
}

// put sets the margin applied before the next block drawn.
func (e *Engine) put(margin float64) {
	e.margin = margin
}

func (e *Engine) applyMargin() {
	if e.margin != 0 {
		e.frame.MoveDown(e.margin)
		e.margin = 0
	}
}

func (e *Engine) inContainer() bool {
	return len(e.stack) > 0
}

func abbreviate(s string) string {
	r := []rune(s)
	if len(r) > 24 {
		return string(r[:24]) + "…"
	}
	return s
}
