package engine

import (
	"fmt"

	"docmark/pkg/layout"
)

func (e *Engine) startList(ordered bool) error {
	if err := e.flush(); err != nil {
		return err
	}
	kind := layout.Unordered
	if ordered {
		kind = layout.Ordered
	}
	e.push(&container{
		kind: listContainer,
		list: layout.NewList(kind, e.res.List(), e.res.Text().Style),
	})
	return nil
}

// startItem opens an item of the innermost list. Items are only
// recognized directly inside a list; elsewhere the tag is ignored and its
// text joins the surrounding run.
func (e *Engine) startItem() error {
	c := e.top()
	if c != nil && c.kind == itemContainer {
		if err := e.closeTop(); err != nil {
			return err
		}
		c = e.top()
	}
	if c == nil || c.kind != listContainer {
		tracer().Debugf("ignoring list item outside of a list")
		return nil
	}
	e.push(&container{kind: itemContainer, item: c.list.AddItem()})
	return nil
}

// endList closes the list on top of the stack. Lists without renderable
// content are dropped.
func (e *Engine) endList() error {
	l := e.pop().list
	if l.IsEmpty() {
		tracer().Debugf("dropping empty %s list", l.Kind)
		return nil
	}
	return e.attach(&layout.ListNode{List: l})
}

// drawList draws a top-level list between vertical margins. A list that
// does not fit is replaced by its placeholder.
func (e *Engine) drawList(n *layout.ListNode) error {
	opts := n.List.Options
	e.applyMargin()
	e.frame.MoveDown(opts.VerticalMargin)
	res, err := layout.DrawList(e.frame, n.List)
	if err != nil {
		return fmt.Errorf("drawing list: %w", err)
	}
	if res.Outcome == layout.DoesNotFit {
		tracer().Infof("list does not fit into %.1fpt, using placeholder", e.frame.Width)
		if err := e.placeholder(opts.TooLarge); err != nil {
			return err
		}
	} else {
		e.document = append(e.document, n)
	}
	e.put(opts.VerticalMargin + e.res.Text().MarginBottom)
	return nil
}
